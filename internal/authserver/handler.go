package authserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/domain"
)

type Handler struct {
	service *Service
	log     zerolog.Logger
}

func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string           `json:"token,omitempty"`
	User  *domain.Identity `json:"user,omitempty"`
}

// Register creates a new account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/register [post]
func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	account, err := h.service.Register(c.Request().Context(), domain.Signup{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
	})
	if err != nil {
		status := http.StatusInternalServerError
		msg := "internal server error"
		switch {
		case errors.Is(err, domain.ErrUserExists):
			status, msg = http.StatusConflict, "user already exists"
		case errors.Is(err, domain.ErrInvalidCredentials):
			status, msg = http.StatusBadRequest, "username and password are required"
		default:
			h.log.Error().Err(err).Str("username", req.Username).Msg("register failed")
		}
		return c.JSON(status, map[string]string{"error": msg})
	}

	h.log.Info().Str("username", account.Username).Msg("account registered")
	return c.JSON(http.StatusCreated, authResponse{User: account.Identity()})
}

// Login authenticates an account and returns it with an access token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	token, account, err := h.service.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUserNotFound):
			// Unknown users and bad passwords look the same to the caller.
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid username or password"})
		default:
			h.log.Error().Err(err).Str("username", req.Username).Msg("login failed")
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, User: account.Identity()})
}

// Liveness handles GET /health.
func (h *Handler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
