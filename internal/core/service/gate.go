package service

import (
	"github.com/99minutos/storefront/internal/pkg/metrics"
	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
)

// Outcome is the terminal state of a gate.
type Outcome int

const (
	Allow Outcome = iota
	Deny
)

func (o Outcome) String() string {
	if o == Allow {
		return "allow"
	}
	return "deny"
}

// Decision is what a gate answers for one navigation attempt. Redirect is
// set only when Outcome is Deny.
type Decision struct {
	Outcome  Outcome
	Redirect domain.View
}

func (d Decision) Allowed() bool { return d.Outcome == Allow }

func allow() Decision { return Decision{Outcome: Allow} }

func deny(to domain.View) Decision { return Decision{Outcome: Deny, Redirect: to} }

// AuthenticationGate admits navigation only while an identity is signed in.
type AuthenticationGate struct {
	session ports.SessionReader
	login   domain.View
}

func NewAuthenticationGate(session ports.SessionReader, login domain.View) *AuthenticationGate {
	return &AuthenticationGate{session: session, login: login}
}

func (g *AuthenticationGate) Check() Decision {
	d := allow()
	if g.session.Current() == nil {
		d = deny(g.login)
	}
	metrics.GateDecisionsTotal.WithLabelValues("authentication", d.Outcome.String()).Inc()
	return d
}

// AuthorizationGate admits navigation only when the signed-in identity has
// exactly the required role. Roles do not inherit from each other.
type AuthorizationGate struct {
	session  ports.SessionReader
	fallback domain.View
}

func NewAuthorizationGate(session ports.SessionReader, fallback domain.View) *AuthorizationGate {
	return &AuthorizationGate{session: session, fallback: fallback}
}

func (g *AuthorizationGate) Check(required domain.Role) Decision {
	d := deny(g.fallback)
	id := g.session.Current()
	if id != nil && id.Role != domain.RoleNone && id.Role == required {
		d = allow()
	}
	metrics.GateDecisionsTotal.WithLabelValues("authorization", d.Outcome.String()).Inc()
	return d
}
