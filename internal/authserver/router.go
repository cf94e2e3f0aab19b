package authserver

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// NewRouter builds the Echo instance serving the auth API.
func NewRouter(service *Service, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())

	h := NewHandler(service, log)
	e.POST("/auth/register", h.Register)
	e.POST("/auth/login", h.Login)
	e.GET("/health", h.Liveness)

	return e
}
