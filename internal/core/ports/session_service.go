package ports

import (
	"context"

	"github.com/99minutos/storefront/internal/core/domain"
)

// SessionService is the write side of the client session used by the forms.
type SessionService interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.Identity, error)
	Register(ctx context.Context, req domain.RegistrationRequest) (*domain.Identity, error)
	Logout(ctx context.Context)
}
