package feature_test

import (
	"context"
	"errors"
	"maps"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablekit/tablekit/pkg/feature"
)

// memStore is an in-memory Store with call counting and failure injection.
type memStore struct {
	mu    sync.Mutex
	rows  map[string]map[string]bool // tenantID -> overrides
	err   error
	reads atomic.Int64
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[string]map[string]bool)}
}

func (s *memStore) Overrides(ctx context.Context, tenantID string) (map[string]bool, error) {
	s.reads.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return maps.Clone(s.rows[tenantID]), nil
}

func (s *memStore) Upsert(ctx context.Context, tenantID string, update map[string]bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if s.rows[tenantID] == nil {
		s.rows[tenantID] = make(map[string]bool)
	}
	maps.Copy(s.rows[tenantID], update)
	return nil
}

// failingFeatureCache simulates a cache-tier outage.
type failingFeatureCache struct{}

func (failingFeatureCache) Get(context.Context, string) (feature.Set, bool, error) {
	return nil, false, errors.New("cache down")
}

func (failingFeatureCache) Set(context.Context, string, feature.Set, time.Duration) error {
	return errors.New("cache down")
}

func (failingFeatureCache) Delete(context.Context, string) error {
	return errors.New("cache down")
}

func TestService_Get(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("tenant with no rows gets full defaults", func(t *testing.T) {
		t.Parallel()

		svc := feature.NewService(newMemStore())

		got, err := svc.Get(ctx, "t1")
		require.NoError(t, err)
		assert.Equal(t, feature.Defaults(), got)
	})

	t.Run("overrides merge onto defaults", func(t *testing.T) {
		t.Parallel()

		store := newMemStore()
		store.rows["t1"] = map[string]bool{feature.Orders: true}
		svc := feature.NewService(store)

		got, err := svc.Get(ctx, "t1")
		require.NoError(t, err)
		assert.True(t, got[feature.Orders])
		assert.True(t, got[feature.Menu])
		assert.False(t, got[feature.Loyalty])
		assert.Len(t, got, 5)
	})

	t.Run("second read is served from cache", func(t *testing.T) {
		t.Parallel()

		store := newMemStore()
		svc := feature.NewService(store)

		_, err := svc.Get(ctx, "t1")
		require.NoError(t, err)
		_, err = svc.Get(ctx, "t1")
		require.NoError(t, err)

		assert.EqualValues(t, 1, store.reads.Load())
	})

	t.Run("cache outage falls through to store", func(t *testing.T) {
		t.Parallel()

		store := newMemStore()
		store.rows["t1"] = map[string]bool{feature.Loyalty: true}
		svc := feature.NewService(store, feature.WithCache(failingFeatureCache{}))

		got, err := svc.Get(ctx, "t1")
		require.NoError(t, err)
		assert.True(t, got[feature.Loyalty])
	})

	t.Run("store outage does not degrade to defaults", func(t *testing.T) {
		t.Parallel()

		store := newMemStore()
		store.err = errors.New("connection refused")
		svc := feature.NewService(store)

		_, err := svc.Get(ctx, "t1")
		require.ErrorIs(t, err, feature.ErrStoreUnavailable)
	})

	t.Run("missing tenant id fails fast", func(t *testing.T) {
		t.Parallel()

		svc := feature.NewService(newMemStore())
		_, err := svc.Get(ctx, "")
		require.ErrorIs(t, err, feature.ErrMissingTenantID)
	})
}

func TestService_Update(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("applies valid update and returns merged set", func(t *testing.T) {
		t.Parallel()

		store := newMemStore()
		svc := feature.NewService(store)

		got, err := svc.Update(ctx, "t1", map[string]bool{feature.Orders: true, feature.Loyalty: true})
		require.NoError(t, err)
		assert.True(t, got[feature.Orders])
		assert.True(t, got[feature.Loyalty])
		assert.True(t, got[feature.Menu])
		assert.Len(t, got, 5)
	})

	t.Run("unknown key rejects the whole update", func(t *testing.T) {
		t.Parallel()

		store := newMemStore()
		svc := feature.NewService(store)

		_, err := svc.Update(ctx, "t1", map[string]bool{feature.Orders: true, "dark_mode": true})
		require.ErrorIs(t, err, feature.ErrInvalidUpdate)
		require.ErrorIs(t, err, feature.ErrUnknownFeature)

		// No partial apply: the valid half of the payload was not written.
		store.mu.Lock()
		defer store.mu.Unlock()
		assert.Empty(t, store.rows["t1"])
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		t.Parallel()

		svc := feature.NewService(newMemStore())
		_, err := svc.Update(ctx, "t1", nil)
		require.ErrorIs(t, err, feature.ErrInvalidUpdate)
		require.ErrorIs(t, err, feature.ErrEmptyUpdate)
	})

	t.Run("cache is overwritten with the authoritative merged set", func(t *testing.T) {
		t.Parallel()

		store := newMemStore()
		cache := feature.NewMemoryCache()
		svc := feature.NewService(store, feature.WithCache(cache))

		// Seed the cache via a read.
		_, err := svc.Get(ctx, "t1")
		require.NoError(t, err)

		_, err = svc.Update(ctx, "t1", map[string]bool{feature.Orders: true})
		require.NoError(t, err)

		// A read straight after the update sees the new value from cache.
		reads := store.reads.Load()
		got, err := svc.Get(ctx, "t1")
		require.NoError(t, err)
		assert.True(t, got[feature.Orders])
		assert.Equal(t, reads, store.reads.Load())
	})

	t.Run("store outage during upsert propagates", func(t *testing.T) {
		t.Parallel()

		store := newMemStore()
		store.err = errors.New("connection refused")
		svc := feature.NewService(store)

		_, err := svc.Update(ctx, "t1", map[string]bool{feature.Orders: true})
		require.ErrorIs(t, err, feature.ErrStoreUnavailable)
	})

	t.Run("missing tenant id fails fast", func(t *testing.T) {
		t.Parallel()

		svc := feature.NewService(newMemStore())
		_, err := svc.Update(ctx, "", map[string]bool{feature.Orders: true})
		require.ErrorIs(t, err, feature.ErrMissingTenantID)
	})
}

func TestService_Invalidate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	store := newMemStore()
	svc := feature.NewService(store)

	_, err := svc.Get(ctx, "t1")
	require.NoError(t, err)
	require.NoError(t, svc.Invalidate(ctx, "t1"))

	_, err = svc.Get(ctx, "t1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, store.reads.Load())
}
