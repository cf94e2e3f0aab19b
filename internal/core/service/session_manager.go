package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/pkg/metrics"
	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
)

const (
	exchangeLogin    = "login"
	exchangeRegister = "register"
)

// SessionManager performs the login and registration exchanges and keeps the
// SessionStore and the durable copy consistent with their outcome.
//
// Every logout starts a new generation. An exchange remembers the generation
// it started in and its response is discarded if a logout happened before it
// settled, so a logout is never undone by a login that was already in flight.
// Among exchanges that succeed, the last one to settle wins.
type SessionManager struct {
	store   *SessionStore
	auth    ports.AuthClient
	storage ports.SessionStorage
	log     zerolog.Logger

	mu         sync.Mutex
	generation uint64
}

func NewSessionManager(store *SessionStore, auth ports.AuthClient, storage ports.SessionStorage, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		store:   store,
		auth:    auth,
		storage: storage,
		log:     log,
	}
}

// Restore rehydrates the store from the durable copy. It is called once at
// process start and never fails: a missing, unreadable or malformed copy
// leaves the session signed out.
func (m *SessionManager) Restore(ctx context.Context) *domain.Identity {
	raw, found, err := m.storage.Read(ctx, domain.SessionKey)
	switch {
	case err != nil:
		m.log.Warn().Err(err).Msg("durable session unreadable, starting signed out")
		metrics.SessionRestoresTotal.WithLabelValues("error").Inc()
		m.store.set(nil)
		return nil
	case !found || domain.IsSignedOut(raw):
		metrics.SessionRestoresTotal.WithLabelValues("absent").Inc()
		m.store.set(nil)
		return nil
	}

	id, err := domain.DecodeIdentity(raw)
	if err != nil {
		m.log.Warn().Err(err).Msg("durable session malformed, starting signed out")
		metrics.SessionRestoresTotal.WithLabelValues("malformed").Inc()
		m.store.set(nil)
		return nil
	}

	m.store.set(id)
	metrics.SessionRestoresTotal.WithLabelValues("restored").Inc()
	m.log.Info().Str("username", id.Username).Str("role", id.Role.String()).Msg("session restored")
	return id
}

// Login exchanges credentials for an identity and signs it in.
func (m *SessionManager) Login(ctx context.Context, creds domain.Credentials) (*domain.Identity, error) {
	return m.exchange(ctx, exchangeLogin, creds.Username, func(ctx context.Context) (*domain.Identity, error) {
		return m.auth.Login(ctx, creds)
	})
}

// Register creates an account and signs it in. The password confirmation is
// expected to have been checked by the caller and is never sent.
func (m *SessionManager) Register(ctx context.Context, req domain.RegistrationRequest) (*domain.Identity, error) {
	signup := req.Signup()
	return m.exchange(ctx, exchangeRegister, signup.Username, func(ctx context.Context) (*domain.Identity, error) {
		return m.auth.Register(ctx, signup)
	})
}

// Logout signs out. It always succeeds and is idempotent. If the durable copy
// cannot be deleted it is overwritten with an empty session instead, so a
// restart does not bring the identity back.
func (m *SessionManager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.generation++
	prev := m.store.Current()
	m.store.set(nil)
	m.clearDurable(ctx)

	if prev != nil {
		m.log.Info().Str("username", prev.Username).Msg("logged out")
	}
}

func (m *SessionManager) clearDurable(ctx context.Context) {
	err := m.storage.Delete(ctx, domain.SessionKey)
	if err == nil {
		return
	}
	m.log.Warn().Err(err).Msg("failed to delete durable session, retrying")
	if err = m.storage.Delete(ctx, domain.SessionKey); err == nil {
		return
	}
	if werr := m.storage.Write(ctx, domain.SessionKey, domain.SignedOut); werr != nil {
		m.log.Error().Err(err).AnErr("overwrite_error", werr).
			Msg("durable session could not be cleared; it will be restored on restart")
		return
	}
	m.log.Warn().Err(err).Msg("durable session overwritten with an empty session")
}

func (m *SessionManager) exchange(
	ctx context.Context,
	kind, username string,
	call func(context.Context) (*domain.Identity, error),
) (*domain.Identity, error) {
	start := time.Now()
	defer func() {
		metrics.SessionExchangeDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}()

	gen := m.currentGeneration()

	id, err := call(ctx)
	if err != nil {
		m.fail(kind, username, err)
		return nil, err
	}
	if id == nil || id.Username == "" {
		err = domain.NewAuthError(domain.ErrTransportFailure,
			"The authentication service returned an unexpected response. Please try again.", nil)
		m.fail(kind, username, err)
		return nil, err
	}

	if err := m.commit(ctx, gen, id); err != nil {
		m.fail(kind, username, err)
		return nil, err
	}

	metrics.SessionExchangesTotal.WithLabelValues(kind, "success").Inc()
	m.log.Info().
		Str("exchange", kind).
		Str("username", id.Username).
		Str("role", id.Role.String()).
		Msg("session established")

	return cloneIdentity(id), nil
}

func (m *SessionManager) currentGeneration() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generation
}

// commit writes the durable copy then the store, both under the manager lock.
// Nothing changes when the generation is stale or the write fails.
func (m *SessionManager) commit(ctx context.Context, gen uint64, id *domain.Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.generation {
		return domain.NewAuthError(domain.ErrSessionSuperseded,
			"Your session changed while signing in. Please try again.", nil)
	}

	raw, err := domain.EncodeIdentity(id)
	if err != nil {
		return domain.NewAuthError(domain.ErrPersistence, "Your session could not be saved. Please try again.", err)
	}
	if err := m.storage.Write(ctx, domain.SessionKey, raw); err != nil {
		return domain.NewAuthError(domain.ErrPersistence, "Your session could not be saved. Please try again.", err)
	}

	m.store.set(id)
	return nil
}

func (m *SessionManager) fail(kind, username string, err error) {
	result := failureLabel(err)
	metrics.SessionExchangesTotal.WithLabelValues(kind, result).Inc()
	m.log.Warn().
		Err(err).
		Str("exchange", kind).
		Str("username", username).
		Str("reason", result).
		Msg("session exchange failed")
}

func failureLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrRegistrationRejected):
		return "registration_rejected"
	case errors.Is(err, domain.ErrTransportFailure):
		return "transport_failure"
	case errors.Is(err, domain.ErrSessionSuperseded):
		return "superseded"
	case errors.Is(err, domain.ErrPersistence):
		return "persistence"
	default:
		return "error"
	}
}
