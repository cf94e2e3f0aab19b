// Package metrics defines and registers all custom Prometheus metrics for the
// storefront client. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// init via promauto and exposed on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Gate metrics ──────────────────────────────────────────────────────────────

// GateDecisionsTotal counts navigation guard decisions.
// Labels:
//   - gate: "authentication" or "authorization"
//   - outcome: "allow" or "deny"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of navigation guard decisions, by gate and outcome.",
	},
	[]string{"gate", "outcome"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionExchangesTotal counts login/register exchanges with the auth service.
// Labels:
//   - exchange: "login" or "register"
//   - result: "success" or the failure kind (e.g. "invalid_credentials", "transport_failure")
var SessionExchangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_exchanges_total",
		Help:      "Total number of login/register exchanges, by exchange and result.",
	},
	[]string{"exchange", "result"},
)

// SessionExchangeDuration measures the round trip to the auth service.
var SessionExchangeDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "session_exchange_duration_seconds",
		Help:      "Duration of login/register exchanges including persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"exchange"},
)

// SessionRestoresTotal counts process-start rehydration attempts.
// Label:
//   - result: "restored", "absent", "malformed" or "error"
var SessionRestoresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_restores_total",
		Help:      "Total number of session rehydrations from durable storage, by result.",
	},
	[]string{"result"},
)

// SessionActive is 1 while an identity is resident, 0 otherwise.
var SessionActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "session_active",
		Help:      "Whether an identity is currently signed in (1) or not (0).",
	},
)
