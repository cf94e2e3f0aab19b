package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T, namespace string) (*SessionStorage, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})
	return NewSessionStorage(rdb, namespace), mr
}

func TestSessionStorage_WriteReadDelete(t *testing.T) {
	storage, mr := newTestStorage(t, "storefront")
	ctx := context.Background()

	_, found, err := storage.Read(ctx, "currentUser")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, storage.Write(ctx, "currentUser", []byte(`{"username":"alice"}`)))
	assert.True(t, mr.Exists("storefront:currentUser"))
	assert.Equal(t, 0, int(mr.TTL("storefront:currentUser")))

	val, found, err := storage.Read(ctx, "currentUser")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"username":"alice"}`, string(val))

	require.NoError(t, storage.Delete(ctx, "currentUser"))
	require.NoError(t, storage.Delete(ctx, "currentUser"))
	assert.False(t, mr.Exists("storefront:currentUser"))
}

func TestSessionStorage_EmptyNamespaceUsesBareKey(t *testing.T) {
	storage, mr := newTestStorage(t, "")

	require.NoError(t, storage.Write(context.Background(), "currentUser", []byte("x")))
	assert.True(t, mr.Exists("currentUser"))
}

func TestSessionStorage_UnreachableRedis(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: time.Second})
	t.Cleanup(func() { _ = rdb.Close() })
	storage := NewSessionStorage(rdb, "storefront")

	_, _, err := storage.Read(context.Background(), "currentUser")
	assert.Error(t, err)
	assert.Error(t, storage.Ping(context.Background()))
}
