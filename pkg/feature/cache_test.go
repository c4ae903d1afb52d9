package feature_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablekit/tablekit/pkg/feature"
)

func TestRedisCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	newCache := func(t *testing.T) (*miniredis.Miniredis, feature.Cache) {
		t.Helper()
		srv := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		return srv, feature.NewRedisCache(client)
	}

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		_, cache := newCache(t)

		want := feature.Defaults()
		want[feature.Orders] = true
		require.NoError(t, cache.Set(ctx, "t1", want, time.Minute))

		got, ok, err := cache.Get(ctx, "t1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("tenants do not collide", func(t *testing.T) {
		t.Parallel()

		_, cache := newCache(t)

		a := feature.Defaults()
		a[feature.Orders] = true
		require.NoError(t, cache.Set(ctx, "t1", a, time.Minute))
		require.NoError(t, cache.Set(ctx, "t2", feature.Defaults(), time.Minute))

		got, ok, err := cache.Get(ctx, "t2")
		require.NoError(t, err)
		require.True(t, ok)
		assert.False(t, got[feature.Orders])
	})

	t.Run("expiry", func(t *testing.T) {
		t.Parallel()

		srv, cache := newCache(t)

		require.NoError(t, cache.Set(ctx, "t1", feature.Defaults(), time.Minute))
		srv.FastForward(2 * time.Minute)

		_, ok, err := cache.Get(ctx, "t1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		_, cache := newCache(t)

		require.NoError(t, cache.Set(ctx, "t1", feature.Defaults(), time.Minute))
		require.NoError(t, cache.Delete(ctx, "t1"))

		_, ok, err := cache.Get(ctx, "t1")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestMemoryCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("returned sets are isolated copies", func(t *testing.T) {
		t.Parallel()

		cache := feature.NewMemoryCache()
		require.NoError(t, cache.Set(ctx, "t1", feature.Defaults(), time.Minute))

		got, ok, err := cache.Get(ctx, "t1")
		require.NoError(t, err)
		require.True(t, ok)
		got[feature.Orders] = true

		again, ok, err := cache.Get(ctx, "t1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.False(t, again[feature.Orders])
	})

	t.Run("expiry", func(t *testing.T) {
		t.Parallel()

		cache := feature.NewMemoryCache()
		require.NoError(t, cache.Set(ctx, "t1", feature.Defaults(), 10*time.Millisecond))
		time.Sleep(30 * time.Millisecond)

		_, ok, err := cache.Get(ctx, "t1")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
