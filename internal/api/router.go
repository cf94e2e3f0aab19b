package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/api/handler"
	"github.com/99minutos/storefront/internal/api/middleware"
	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/core/service"
)

// Deps are the collaborators the client shell is built from.
type Deps struct {
	Store    *service.SessionStore
	Sessions *service.SessionManager
	Storage  ports.SessionStorage
	Auth     ports.AuthClient
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all views and forms
// registered. Every view in service.Routes gets the gate chain its route
// configuration asks for.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))

	// --- Gates ---
	authn := service.NewAuthenticationGate(d.Store, domain.ViewLogin)
	authz := service.NewAuthorizationGate(d.Store, domain.ViewHome)

	// --- Views ---
	views := handler.NewViewHandler(d.Store)
	for _, route := range service.Routes {
		e.GET(string(route.View), views.Render(route.View), middleware.ForRoute(route, authn, authz)...)
	}
	e.GET("/session", views.Session)

	// --- Forms ---
	forms := handler.NewAuthHandler(d.Sessions)
	e.POST(string(domain.ViewLogin), forms.Login)
	e.POST(string(domain.ViewRegister), forms.Register)
	e.POST("/logout", forms.Logout)

	// --- Health probes and metrics (no gates) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(d.Storage, d.Auth).Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
