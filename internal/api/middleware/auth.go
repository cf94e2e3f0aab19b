package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront/internal/core/service"
)

// Authenticate runs the authentication gate before a protected view and
// redirects to the gate's target when nobody is signed in.
func Authenticate(gate *service.AuthenticationGate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if d := gate.Check(); !d.Allowed() {
				return c.Redirect(http.StatusFound, string(d.Redirect))
			}
			return next(c)
		}
	}
}
