package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
)

// AuthHandler serves the login, registration and logout forms.
type AuthHandler struct {
	sessions ports.SessionService
}

func NewAuthHandler(sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type errorResponse struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

// Login submits the login form.
//
// @Summary      Sign in
// @Tags         session
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      domain.Credentials  true  "Login credentials"
// @Success      303   "Redirect to the role's home view"
// @Success      200   {object}  viewModel  "Signed in, role has no home view"
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var creds domain.Credentials
	if err := c.Bind(&creds); err != nil {
		return RenderFailure(c, invalidPayload())
	}
	if err := c.Validate(&creds); err != nil {
		return RenderFailure(c, err)
	}

	id, err := h.sessions.Login(c.Request().Context(), creds)
	if err != nil {
		return RenderFailure(c, err)
	}
	return dispatch(c, id, domain.ViewLogin)
}

// Register submits the registration form. Mismatched passwords are rejected
// here and never reach the session service.
//
// @Summary      Register and sign in
// @Tags         session
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      domain.RegistrationRequest  true  "Registration details"
// @Success      303   "Redirect to the role's home view"
// @Success      200   {object}  viewModel  "Registered, role has no home view"
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req domain.RegistrationRequest
	if err := c.Bind(&req); err != nil {
		return RenderFailure(c, invalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return RenderFailure(c, err)
	}

	id, err := h.sessions.Register(c.Request().Context(), req)
	if err != nil {
		return RenderFailure(c, err)
	}
	return dispatch(c, id, domain.ViewRegister)
}

// Logout signs out and returns to the login view.
//
// @Summary      Sign out
// @Tags         session
// @Success      303  "Redirect to /login"
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Logout(c.Request().Context())
	return c.Redirect(http.StatusSeeOther, string(domain.ViewLogin))
}

// dispatch sends the user to the home view of their role. Roles without a
// home view stay on the form they submitted.
func dispatch(c echo.Context, id *domain.Identity, current domain.View) error {
	if home, ok := domain.HomeFor(id.Role); ok {
		return c.Redirect(http.StatusSeeOther, string(home))
	}
	return c.JSON(http.StatusOK, viewModel{View: current, User: id})
}

func invalidPayload() error {
	return &domain.AuthError{Kind: domain.ErrValidation, Message: "invalid payload"}
}

// RenderFailure writes the JSON error envelope for a typed session failure.
// Any other error is returned unchanged for the HTTP error handler.
func RenderFailure(c echo.Context, err error) error {
	if !IsSessionFailure(err) {
		return err
	}
	status, body := failureResponse(err)
	return c.JSON(status, body)
}

// IsSessionFailure reports whether err is one of the typed session failures.
func IsSessionFailure(err error) bool {
	_, ok := domain.AsAuthError(err)
	return ok
}

func failureResponse(err error) (int, errorResponse) {
	ae, _ := domain.AsAuthError(err)
	body := errorResponse{Error: ae.Error(), Fields: ae.Fields}
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, body
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, body
	case errors.Is(err, domain.ErrRegistrationRejected):
		return http.StatusUnprocessableEntity, body
	case errors.Is(err, domain.ErrSessionSuperseded):
		return http.StatusConflict, body
	case errors.Is(err, domain.ErrTransportFailure):
		return http.StatusBadGateway, body
	case errors.Is(err, domain.ErrPersistence):
		return http.StatusServiceUnavailable, body
	default:
		return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
	}
}
