package authserver

import (
	"context"
	"strconv"
	"sync"

	"github.com/99minutos/storefront/internal/core/domain"
)

// MemoryRepository is a process-local AccountRepository for development
// runs without MongoDB.
type MemoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
	seq      int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{accounts: make(map[string]domain.Account)}
}

func (r *MemoryRepository) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.Username]; exists {
		return nil, domain.ErrUserExists
	}
	r.seq++
	stored := *account
	stored.ID = strconv.Itoa(r.seq)
	r.accounts[stored.Username] = stored

	out := stored
	return &out, nil
}

func (r *MemoryRepository) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &account, nil
}
