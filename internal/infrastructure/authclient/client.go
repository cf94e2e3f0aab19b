// Package authclient talks to the remote authentication service over HTTP.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/99minutos/storefront/internal/core/domain"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20

	loginPath    = "/auth/login"
	registerPath = "/auth/register"
	healthPath   = "/health"

	transportMessage = "We could not reach the authentication service. Please try again."
)

// Client implements ports.AuthClient against the auth service HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for baseURL. A zero timeout uses defaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// authResponse is the success envelope. Token is issued for server-side
// calls and is not part of the client session.
type authResponse struct {
	Token string           `json:"token,omitempty"`
	User  *domain.Identity `json:"user"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// isRejection reports whether status is the service turning the request down.
// Other 4xx answers, such as 404 from a wrong base URL, are transport failures.
func isRejection(status int) bool {
	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden,
		http.StatusConflict, http.StatusUnprocessableEntity:
		return true
	}
	return false
}

// Login posts the credentials. A rejection is ErrInvalidCredentials carrying
// the service's message.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.Identity, error) {
	body := loginRequest{Username: creds.Username, Password: creds.Password}
	return c.exchange(ctx, loginPath, body, domain.ErrInvalidCredentials, "Invalid username or password.")
}

// Register posts the signup. A rejection is ErrRegistrationRejected carrying
// the service's message.
func (c *Client) Register(ctx context.Context, signup domain.Signup) (*domain.Identity, error) {
	return c.exchange(ctx, registerPath, signup, domain.ErrRegistrationRejected, "Registration was rejected.")
}

// Ping checks that the auth service answers its liveness probe.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return fmt.Errorf("auth ping: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("auth ping: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("auth ping: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) exchange(ctx context.Context, path string, payload any, rejectKind error, rejectFallback string) (*domain.Identity, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domain.NewAuthError(domain.ErrTransportFailure, transportMessage, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, domain.NewAuthError(domain.ErrTransportFailure, transportMessage, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var out authResponse
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, domain.NewAuthError(domain.ErrTransportFailure, transportMessage,
				fmt.Errorf("decode %s response: %w", path, err))
		}
		if out.User == nil || out.User.Username == "" {
			return nil, domain.NewAuthError(domain.ErrTransportFailure, transportMessage,
				errors.New("response carries no user"))
		}
		return out.User, nil

	case isRejection(resp.StatusCode):
		msg := rejectFallback
		var e errorResponse
		if json.Unmarshal(data, &e) == nil && strings.TrimSpace(e.Error) != "" {
			msg = e.Error
		}
		return nil, domain.NewAuthError(rejectKind, msg, fmt.Errorf("%s: status %d", path, resp.StatusCode))

	default:
		return nil, domain.NewAuthError(domain.ErrTransportFailure, transportMessage,
			fmt.Errorf("%s: status %d", path, resp.StatusCode))
	}
}
