package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisCache stores tenants as JSON in a shared Redis tier so resolution
// results survive process restarts and are visible to every instance.
type redisCache struct {
	client redis.UniversalClient
}

// NewRedisCache wraps an existing Redis client as a tenant cache. The client
// is shared infrastructure; Close on the returned cache is a no-op.
func NewRedisCache(client redis.UniversalClient) Cache {
	return &redisCache{client: client}
}

func (c *redisCache) Get(ctx context.Context, key string) (*Tenant, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, errors.Join(ErrCacheUnavailable, err)
	}

	var t Tenant
	if err := json.Unmarshal(raw, &t); err != nil {
		// A corrupt entry behaves like a miss; the store read will overwrite it.
		return nil, false, errors.Join(ErrCacheUnavailable, err)
	}
	return &t, true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, t *Tenant, ttl time.Duration) error {
	raw, err := json.Marshal(t)
	if err != nil {
		return errors.Join(ErrCacheUnavailable, err)
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return errors.Join(ErrCacheUnavailable, err)
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return errors.Join(ErrCacheUnavailable, err)
	}
	return nil
}

// DeletePrefix removes matching keys with SCAN+DEL. SCAN iterates in bounded
// batches, so bulk invalidation never blocks the Redis event loop the way
// KEYS would.
func (c *redisCache) DeletePrefix(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return errors.Join(ErrCacheUnavailable, err)
		}
	}
	if err := iter.Err(); err != nil {
		return errors.Join(ErrCacheUnavailable, err)
	}
	return nil
}

func (c *redisCache) Close() error {
	// The underlying client is owned by the caller.
	return nil
}
