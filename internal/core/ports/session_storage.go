package ports

import "context"

// SessionStorage is the durable key-value store holding the serialized
// identity across restarts. Read reports found=false for a missing key.
type SessionStorage interface {
	Read(ctx context.Context, key string) (value []byte, found bool, err error)
	Write(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
