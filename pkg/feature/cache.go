package feature

import (
	"context"
	"encoding/json"
	"errors"
	"maps"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache mirrors merged feature sets. Entries are always overwritten with a
// freshly merged authoritative value, never patched in place.
type Cache interface {
	Get(ctx context.Context, tenantID string) (Set, bool, error)
	Set(ctx context.Context, tenantID string, s Set, ttl time.Duration) error
	Delete(ctx context.Context, tenantID string) error
}

// Feature sets live under the tenant's cache namespace so bulk invalidation
// of a tenant sweeps them too.
func cacheKey(tenantID string) string {
	return "tenant:" + tenantID + ":features"
}

// redisCache shares the platform's Redis tier.
type redisCache struct {
	client redis.UniversalClient
}

// NewRedisCache wraps an existing Redis client as a feature cache.
func NewRedisCache(client redis.UniversalClient) Cache {
	return &redisCache{client: client}
}

func (c *redisCache) Get(ctx context.Context, tenantID string) (Set, bool, error) {
	raw, err := c.client.Get(ctx, cacheKey(tenantID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var s Set
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false, err
	}
	return s, true, nil
}

func (c *redisCache) Set(ctx context.Context, tenantID string, s Set, ttl time.Duration) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(tenantID), raw, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, tenantID string) error {
	return c.client.Del(ctx, cacheKey(tenantID)).Err()
}

// memoryCache is the in-process fallback when no shared tier is wired.
type memoryCache struct {
	mu    sync.RWMutex
	items map[string]memoryItem
}

type memoryItem struct {
	set       Set
	expiresAt time.Time
}

// NewMemoryCache creates an in-process feature cache.
func NewMemoryCache() Cache {
	return &memoryCache{items: make(map[string]memoryItem)}
}

func (c *memoryCache) Get(ctx context.Context, tenantID string) (Set, bool, error) {
	c.mu.RLock()
	item, ok := c.items[tenantID]
	c.mu.RUnlock()

	if !ok || time.Now().After(item.expiresAt) {
		return nil, false, nil
	}
	return maps.Clone(item.set), true, nil
}

func (c *memoryCache) Set(ctx context.Context, tenantID string, s Set, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[tenantID] = memoryItem{set: maps.Clone(s), expiresAt: time.Now().Add(ttl)}
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, tenantID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, tenantID)
	return nil
}
