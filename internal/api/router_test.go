package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/storefront/internal/authserver"
	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/core/service"
	"github.com/99minutos/storefront/internal/infrastructure/authclient"
	"github.com/99minutos/storefront/internal/infrastructure/db/memory"
)

type shell struct {
	e       *echo.Echo
	store   *service.SessionStore
	storage ports.SessionStorage
}

func newShell(t *testing.T, authURL string, storage ports.SessionStorage) *shell {
	t.Helper()
	auth := authclient.New(authURL, 5*time.Second)
	store := service.NewSessionStore()
	manager := service.NewSessionManager(store, auth, storage, zerolog.Nop())
	manager.Restore(context.Background())

	e := NewRouter(Deps{
		Store:    store,
		Sessions: manager,
		Storage:  storage,
		Auth:     auth,
		Log:      zerolog.Nop(),
	})
	return &shell{e: e, store: store, storage: storage}
}

func (s *shell) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func newAuthServer(t *testing.T) (*httptest.Server, *authserver.Service) {
	t.Helper()
	svc := authserver.NewService(authserver.NewMemoryRepository(), "secret", time.Hour)
	srv := httptest.NewServer(authserver.NewRouter(svc, zerolog.Nop()))
	t.Cleanup(srv.Close)
	return srv, svc
}

func provisionAdmin(t *testing.T, svc *authserver.Service, username, password string) {
	t.Helper()
	_, err := svc.Provision(context.Background(), domain.Signup{Username: username, Email: username + "@example.com", Password: password}, domain.RoleAdmin)
	require.NoError(t, err)
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, code int, to string) {
	t.Helper()
	assert.Equal(t, code, rec.Code)
	assert.Equal(t, to, rec.Header().Get(echo.HeaderLocation))
}

func TestShell_SignedOutVisitorIsSentToLogin(t *testing.T) {
	srv, _ := newAuthServer(t)
	s := newShell(t, srv.URL, memory.NewSessionStorage())

	assertRedirect(t, s.do(http.MethodGet, "/customer", ""), http.StatusFound, "/login")
	assertRedirect(t, s.do(http.MethodGet, "/admin", ""), http.StatusFound, "/login")
	assertRedirect(t, s.do(http.MethodGet, "/account", ""), http.StatusFound, "/login")

	for _, path := range []string{"/", "/login", "/register"} {
		assert.Equal(t, http.StatusOK, s.do(http.MethodGet, path, "").Code, path)
	}
}

func TestShell_CustomerCannotReachAdminArea(t *testing.T) {
	srv, _ := newAuthServer(t)
	s := newShell(t, srv.URL, memory.NewSessionStorage())

	rec := s.do(http.MethodPost, "/register",
		`{"username":"alice","email":"alice@example.com","password":"pw","password_confirmation":"pw","address":"1 Main St"}`)
	assertRedirect(t, rec, http.StatusSeeOther, "/customer")
	require.NotNil(t, s.store.Current())
	assert.Equal(t, domain.RoleCustomer, s.store.Current().Role)

	assertRedirect(t, s.do(http.MethodGet, "/admin", ""), http.StatusFound, "/")
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/customer", "").Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/account", "").Code)
}

func TestShell_AdminReachesAdminAreaOnly(t *testing.T) {
	srv, svc := newAuthServer(t)
	provisionAdmin(t, svc, "root", "hunter2")
	s := newShell(t, srv.URL, memory.NewSessionStorage())

	assertRedirect(t, s.do(http.MethodPost, "/login", `{"username":"root","password":"hunter2"}`), http.StatusSeeOther, "/admin")

	rec := s.do(http.MethodGet, "/admin", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var view struct {
		View string           `json:"view"`
		User *domain.Identity `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "/admin", view.View)
	assert.Equal(t, "root", view.User.Username)

	// Roles do not inherit: an admin is not a customer.
	assertRedirect(t, s.do(http.MethodGet, "/customer", ""), http.StatusFound, "/")
}

func TestShell_RestartRestoresSessionWithoutNetwork(t *testing.T) {
	srv, _ := newAuthServer(t)
	storage := memory.NewSessionStorage()
	first := newShell(t, srv.URL, storage)

	rec := first.do(http.MethodPost, "/register",
		`{"username":"bob","email":"bob@example.com","password":"pw","password_confirmation":"pw","address":"2 Side St"}`)
	assertRedirect(t, rec, http.StatusSeeOther, "/customer")

	// The auth service is gone; a restored session must not need it.
	srv.Close()
	second := newShell(t, srv.URL, storage)

	require.NotNil(t, second.store.Current())
	assert.Equal(t, "bob", second.store.Current().Username)
	assert.Equal(t, http.StatusOK, second.do(http.MethodGet, "/customer", "").Code)

	var sess struct {
		User *domain.Identity `json:"user"`
	}
	require.NoError(t, json.Unmarshal(second.do(http.MethodGet, "/session", "").Body.Bytes(), &sess))
	assert.Equal(t, &domain.Identity{Username: "bob", Email: "bob@example.com", Address: "2 Side St", Role: domain.RoleCustomer}, sess.User)
}

func TestShell_LogoutClearsSessionAndDurableCopy(t *testing.T) {
	srv, _ := newAuthServer(t)
	storage := memory.NewSessionStorage()
	s := newShell(t, srv.URL, storage)

	s.do(http.MethodPost, "/register",
		`{"username":"dan","email":"dan@example.com","password":"pw","password_confirmation":"pw","address":"x"}`)
	require.NotNil(t, s.store.Current())

	assertRedirect(t, s.do(http.MethodPost, "/logout", ""), http.StatusSeeOther, "/login")
	assert.Nil(t, s.store.Current())
	_, ok, err := storage.Read(context.Background(), domain.SessionKey)
	require.NoError(t, err)
	assert.False(t, ok)

	assertRedirect(t, s.do(http.MethodGet, "/customer", ""), http.StatusFound, "/login")
}

func TestShell_FailedLoginKeepsVisitorSignedOut(t *testing.T) {
	srv, _ := newAuthServer(t)
	s := newShell(t, srv.URL, memory.NewSessionStorage())

	rec := s.do(http.MethodPost, "/login", `{"username":"nobody","password":"pw"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid username or password")
	assert.Nil(t, s.store.Current())
}

func TestShell_Health(t *testing.T) {
	srv, _ := newAuthServer(t)
	s := newShell(t, srv.URL, memory.NewSessionStorage())

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health/ready", "").Code)

	srv.Close()
	rec := s.do(http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "auth_service")
}

func TestShell_UnknownRouteUsesErrorEnvelope(t *testing.T) {
	srv, _ := newAuthServer(t)
	s := newShell(t, srv.URL, memory.NewSessionStorage())

	rec := s.do(http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
}
