package tenant

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Cache mirrors the registry store for fast repeat lookups. It is
// best-effort and eventually consistent: entries may lag the store by up to
// their TTL and are never authoritative on their own.
type Cache interface {
	// Get retrieves a tenant by key. The bool reports a hit; a non-nil
	// error marks a cache-tier failure the caller may recover from.
	Get(ctx context.Context, key string) (*Tenant, bool, error)

	// Set stores a tenant under key with the given TTL.
	Set(ctx context.Context, key string, t *Tenant, ttl time.Duration) error

	// Delete removes one entry.
	Delete(ctx context.Context, key string) error

	// DeletePrefix removes every entry whose key starts with prefix,
	// without blocking concurrent readers.
	DeletePrefix(ctx context.Context, prefix string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Cache key namespaces. Domain and subdomain keys are kept disjoint so a
// custom domain can never alias a subdomain lookup.
const (
	domainKeyPrefix    = "tenant:domain:"
	subdomainKeyPrefix = "tenant:subdomain:"
)

func domainKey(dom string) string      { return domainKeyPrefix + dom }
func subdomainKey(sub string) string   { return subdomainKeyPrefix + sub }
func tenantKeyPrefix(id string) string { return "tenant:" + id + ":" }

// DefaultCacheSize bounds the in-memory cache.
const DefaultCacheSize = 1000

// memoryCache is an LRU cache with per-entry TTL and a background sweep of
// expired entries. It is the default when no shared cache tier is wired.
type memoryCache struct {
	mu      sync.Mutex
	items   map[string]memoryItem
	lru     []string
	maxSize int
	stop    chan struct{}
	done    chan struct{}
	closed  bool
}

type memoryItem struct {
	tenant    *Tenant
	expiresAt time.Time
}

// NewMemoryCache creates an in-memory cache with the default size limit.
func NewMemoryCache() Cache {
	return NewMemoryCacheWithSize(DefaultCacheSize)
}

// NewMemoryCacheWithSize creates an in-memory cache bounded to maxSize entries.
func NewMemoryCacheWithSize(maxSize int) Cache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	c := &memoryCache{
		items:   make(map[string]memoryItem),
		lru:     make([]string, 0, maxSize),
		maxSize: maxSize,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go c.sweep()
	return c
}

func (c *memoryCache) Get(ctx context.Context, key string) (*Tenant, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[key]
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(item.expiresAt) {
		delete(c.items, key)
		c.removeLRU(key)
		return nil, false, nil
	}
	c.touchLRU(key)
	return item.tenant, true, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, t *Tenant, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxSize {
		if len(c.lru) > 0 {
			evict := c.lru[0]
			delete(c.items, evict)
			c.lru = c.lru[1:]
		}
	}
	c.items[key] = memoryItem{tenant: t, expiresAt: time.Now().Add(ttl)}
	c.touchLRU(key)
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	c.removeLRU(key)
	return nil
}

func (c *memoryCache) DeletePrefix(ctx context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
			c.removeLRU(key)
		}
	}
	return nil
}

func (c *memoryCache) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	defer close(c.done)

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stop:
			return
		}
	}
}

func (c *memoryCache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, key)
			c.removeLRU(key)
		}
	}
}

// touchLRU moves the key to the most-recently-used position.
func (c *memoryCache) touchLRU(key string) {
	c.removeLRU(key)
	c.lru = append(c.lru, key)
}

func (c *memoryCache) removeLRU(key string) {
	for i, k := range c.lru {
		if k == key {
			c.lru = append(c.lru[:i], c.lru[i+1:]...)
			return
		}
	}
}

func (c *memoryCache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	close(c.stop)
	<-c.done
	return nil
}

// noopCache disables caching; every read is a miss.
type noopCache struct{}

// NewNoopCache returns a cache that never stores anything. Useful in tests
// and for per-deployment cache opt-out.
func NewNoopCache() Cache { return noopCache{} }

func (noopCache) Get(context.Context, string) (*Tenant, bool, error) { return nil, false, nil }

func (noopCache) Set(context.Context, string, *Tenant, time.Duration) error { return nil }

func (noopCache) Delete(context.Context, string) error { return nil }

func (noopCache) DeletePrefix(context.Context, string) error { return nil }

func (noopCache) Close() error { return nil }
