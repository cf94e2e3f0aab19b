package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/service"
)

// Authorize runs the authorization gate for a view that requires role. It
// must be chained after Authenticate.
func Authorize(gate *service.AuthorizationGate, role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if d := gate.Check(role); !d.Allowed() {
				return c.Redirect(http.StatusFound, string(d.Redirect))
			}
			return next(c)
		}
	}
}

// ForRoute returns the gate chain a route needs: nothing for public routes,
// authentication for every other route, plus authorization when the route
// carries a role.
func ForRoute(route service.Route, authn *service.AuthenticationGate, authz *service.AuthorizationGate) []echo.MiddlewareFunc {
	if route.Public {
		return nil
	}
	chain := []echo.MiddlewareFunc{Authenticate(authn)}
	if route.RequiredRole != domain.RoleNone {
		chain = append(chain, Authorize(authz, route.RequiredRole))
	}
	return chain
}
