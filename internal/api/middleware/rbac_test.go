package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/service"
)

func TestAuthorize_Allows(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	gate := service.NewAuthorizationGate(fakeSession{id: &domain.Identity{Username: "a", Role: domain.RoleAdmin}}, domain.ViewHome)

	called := false
	handler := Authorize(gate, domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthorize_RedirectsHomeOnMismatch(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleNone} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/customer", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		gate := service.NewAuthorizationGate(fakeSession{id: &domain.Identity{Username: "a", Role: role}}, domain.ViewHome)
		handler := Authorize(gate, domain.RoleCustomer)(func(c echo.Context) error {
			t.Fatalf("should not reach next handler")
			return nil
		})

		_ = handler(c)
		if rec.Code != http.StatusFound {
			t.Fatalf("role %s: expected 302, got %d", role, rec.Code)
		}
		if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
			t.Fatalf("role %s: expected redirect to /, got %q", role, loc)
		}
	}
}

func TestForRoute(t *testing.T) {
	session := fakeSession{}
	authn := service.NewAuthenticationGate(session, domain.ViewLogin)
	authz := service.NewAuthorizationGate(session, domain.ViewHome)

	if n := len(ForRoute(service.Route{View: domain.ViewHome, Public: true}, authn, authz)); n != 0 {
		t.Fatalf("public route: expected no gates, got %d", n)
	}
	if n := len(ForRoute(service.Route{View: domain.ViewAccount}, authn, authz)); n != 1 {
		t.Fatalf("authenticated route: expected 1 gate, got %d", n)
	}
	if n := len(ForRoute(service.Route{View: domain.ViewAdminHome, RequiredRole: domain.RoleAdmin}, authn, authz)); n != 2 {
		t.Fatalf("role route: expected 2 gates, got %d", n)
	}
}
