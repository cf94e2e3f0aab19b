// Package memory provides a process-local SessionStorage. Sessions kept here
// do not survive a restart.
package memory

import (
	"context"
	"sync"
)

type SessionStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewSessionStorage() *SessionStorage {
	return &SessionStorage{data: make(map[string][]byte)}
}

func (s *SessionStorage) Read(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *SessionStorage) Write(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *SessionStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *SessionStorage) Ping(context.Context) error { return nil }
