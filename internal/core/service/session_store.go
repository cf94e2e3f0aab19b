package service

import (
	"sync"

	"github.com/99minutos/storefront/internal/pkg/metrics"
	"github.com/99minutos/storefront/internal/core/domain"
)

// SessionStore holds the identity that is currently signed in, or nil.
// Readers always see the latest committed value; writes replace it whole.
// Only the SessionManager writes to it.
type SessionStore struct {
	mu        sync.RWMutex
	current   *domain.Identity
	listeners map[int]func(*domain.Identity)
	nextID    int
}

func NewSessionStore() *SessionStore {
	return &SessionStore{listeners: make(map[int]func(*domain.Identity))}
}

// Current returns a copy of the resident identity, or nil when signed out.
func (s *SessionStore) Current() *domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneIdentity(s.current)
}

// Subscribe registers fn to be called with every new value. The returned
// function removes the subscription.
func (s *SessionStore) Subscribe(fn func(*domain.Identity)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// set replaces the resident identity and notifies listeners outside the lock.
func (s *SessionStore) set(id *domain.Identity) {
	s.mu.Lock()
	s.current = cloneIdentity(id)
	fns := make([]func(*domain.Identity), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	if id != nil {
		metrics.SessionActive.Set(1)
	} else {
		metrics.SessionActive.Set(0)
	}
	for _, fn := range fns {
		fn(cloneIdentity(id))
	}
}

func cloneIdentity(id *domain.Identity) *domain.Identity {
	if id == nil {
		return nil
	}
	clone := *id
	return &clone
}
