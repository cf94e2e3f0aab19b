package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// SessionStorage keeps the durable session copy in Redis.
// Key format: <namespace>:<key>, or <key> when namespace is empty.
// Entries never expire; only logout removes them.
type SessionStorage struct {
	client    *redis.Client
	namespace string
}

// NewSessionStorage creates a SessionStorage wrapping the given Redis client.
func NewSessionStorage(client *redis.Client, namespace string) *SessionStorage {
	return &SessionStorage{client: client, namespace: namespace}
}

// Read returns the stored value. A missing key is reported as found=false.
func (s *SessionStorage) Read(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("session storage read: %w", err)
	}
	return val, true, nil
}

// Write overwrites the stored value.
func (s *SessionStorage) Write(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("session storage write: %w", err)
	}
	return nil
}

// Delete removes the key. Deleting a missing key is not an error.
func (s *SessionStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("session storage delete: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (s *SessionStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *SessionStorage) key(key string) string {
	if s.namespace == "" {
		return key
	}
	return s.namespace + ":" + key
}
