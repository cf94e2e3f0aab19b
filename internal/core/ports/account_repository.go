package ports

import (
	"context"

	"github.com/99minutos/storefront/internal/core/domain"
)

// AccountRepository persists accounts for the reference auth service.
type AccountRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
}
