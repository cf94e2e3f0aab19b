package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
)

// viewModel is what every view renders: which view it is and who is signed in.
type viewModel struct {
	View domain.View      `json:"view"`
	User *domain.Identity `json:"user"`
}

type sessionResponse struct {
	User *domain.Identity `json:"user"`
}

// ViewHandler renders the client's views. Access control happens in the gate
// middleware before these handlers run.
type ViewHandler struct {
	session ports.SessionReader
}

func NewViewHandler(session ports.SessionReader) *ViewHandler {
	return &ViewHandler{session: session}
}

// Render returns the handler for view.
func (h *ViewHandler) Render(view domain.View) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, viewModel{View: view, User: h.session.Current()})
	}
}

// Session handles GET /session for display surfaces.
func (h *ViewHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, sessionResponse{User: h.session.Current()})
}
