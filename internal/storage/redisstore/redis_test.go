package redisstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	t.Run("round-trips values under the prefix", func(t *testing.T) {
		mr := miniredis.RunT(t)
		ctx := context.Background()

		store, err := New(ctx, &redis.Options{Addr: mr.Addr()}, "amigo:")
		require.NoError(t, err)
		defer store.Close()

		require.NoError(t, store.Set(ctx, "ns_user_email", "x@y.com"))

		value, ok, err := store.Get(ctx, "ns_user_email")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "x@y.com", value)

		raw, err := mr.Get("amigo:ns_user_email")
		require.NoError(t, err)
		assert.Equal(t, "x@y.com", raw)
		assert.Zero(t, mr.TTL("amigo:ns_user_email"))
	})

	t.Run("missing key is absent, not an error", func(t *testing.T) {
		mr := miniredis.RunT(t)
		ctx := context.Background()

		store, err := New(ctx, &redis.Options{Addr: mr.Addr()}, "")
		require.NoError(t, err)
		defer store.Close()

		value, ok, err := store.Get(ctx, "ns_wishes")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, value)
	})

	t.Run("unreachable server fails New", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, err := New(context.Background(), &redis.Options{Addr: addr}, "")
		assert.Error(t, err)
	})

	t.Run("server failure surfaces from Get", func(t *testing.T) {
		mr := miniredis.RunT(t)
		ctx := context.Background()

		store, err := New(ctx, &redis.Options{Addr: mr.Addr(), MaxRetries: -1}, "")
		require.NoError(t, err)
		defer store.Close()

		mr.SetError("READONLY injected failure")
		_, _, err = store.Get(ctx, "ns_wishes")
		assert.Error(t, err)
	})
}
