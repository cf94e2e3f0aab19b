package ports

import (
	"context"

	"github.com/99minutos/storefront/internal/core/domain"
)

// AuthClient is the remote authentication collaborator. Failures are
// returned as *domain.AuthError values of kind ErrInvalidCredentials,
// ErrRegistrationRejected or ErrTransportFailure.
type AuthClient interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.Identity, error)
	Register(ctx context.Context, signup domain.Signup) (*domain.Identity, error)
	Ping(ctx context.Context) error
}
