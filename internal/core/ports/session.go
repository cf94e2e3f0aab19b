package ports

import "github.com/99minutos/storefront/internal/core/domain"

// SessionReader is the read side of the session store used by gates and
// display surfaces.
type SessionReader interface {
	Current() *domain.Identity
}
