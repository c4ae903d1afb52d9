package tenant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tablekit/tablekit/pkg/domain"
)

// Source identifies which tier satisfied a resolution.
type Source string

const (
	SourceCache Source = "cache"
	SourceStore Source = "store"
)

// Resolution is the outcome of one successful resolution attempt: the tenant,
// where it came from, the parsed host, and how long the lookup took.
type Resolution struct {
	Tenant  *Tenant
	Source  Source
	Host    domain.Info
	Elapsed time.Duration
}

// Resolver maps hostnames to tenants with a cache-aside lookup: parse, cache,
// store, best-effort cache fill. Concurrent misses for the same key are
// collapsed into a single store query.
type Resolver struct {
	store Store
	cache Cache
	cfg   domain.Config
	ttl   time.Duration
	log   *slog.Logger
	group singleflight.Group
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithCache sets the cache tier. Defaults to an in-process LRU cache.
func WithCache(cache Cache) ResolverOption {
	return func(r *Resolver) {
		if cache != nil {
			r.cache = cache
		}
	}
}

// WithCacheTTL sets how long resolved tenants stay cached.
func WithCacheTTL(ttl time.Duration) ResolverOption {
	return func(r *Resolver) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithLogger sets the logger used for cache-tier warnings.
func WithLogger(log *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// DefaultCacheTTL bounds how far cached tenants may lag the registry.
const DefaultCacheTTL = 5 * time.Minute

// NewResolver creates a resolver over the given registry store.
func NewResolver(store Store, cfg domain.Config, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		store: store,
		cfg:   cfg,
		ttl:   DefaultCacheTTL,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cache == nil {
		r.cache = NewMemoryCache()
	}
	return r
}

// ResolveOption adjusts a single Resolve call.
type ResolveOption func(*resolveOpts)

type resolveOpts struct {
	skipCache bool
}

// WithoutCache bypasses the cache for one call, forcing an authoritative
// store read. The result still refreshes the cache.
func WithoutCache() ResolveOption {
	return func(o *resolveOpts) { o.skipCache = true }
}

// Resolve maps a hostname to its tenant. The terminal states are exactly:
// cache hit, store hit (with best-effort cache fill), ErrTenantNotFound, or
// a parse failure that touches neither cache nor store. Store outages are
// reported as ErrStoreUnavailable, never as a missing tenant.
func (r *Resolver) Resolve(ctx context.Context, hostname string, opts ...ResolveOption) (*Resolution, error) {
	start := time.Now()

	var o resolveOpts
	for _, opt := range opts {
		opt(&o)
	}

	info, err := domain.Parse(hostname, r.cfg)
	if err != nil {
		return nil, err
	}

	var (
		cacheKey string
		lookup   func(context.Context, string) (*Tenant, error)
		key      string
	)
	switch {
	case info.Subdomain != "":
		key = info.Subdomain
		cacheKey = subdomainKey(key)
		lookup = r.store.GetBySubdomain
	case info.IsLocalhost:
		// Bare loopback carries no tenant label to look up.
		return nil, fmt.Errorf("%w: localhost host %q has no tenant label", ErrTenantNotFound, info.Host)
	default:
		key = info.Domain
		cacheKey = domainKey(key)
		lookup = r.store.GetByDomain
	}

	if !o.skipCache {
		if t, ok, err := r.cache.Get(ctx, cacheKey); err != nil {
			r.log.WarnContext(ctx, "tenant cache read failed, falling through to store",
				"key", cacheKey, "error", err)
		} else if ok {
			return &Resolution{Tenant: t, Source: SourceCache, Host: info, Elapsed: time.Since(start)}, nil
		}
	}

	// Collapse concurrent store lookups for the same key so a cold cache
	// under load produces one query, not a thundering herd.
	v, err, _ := r.group.Do(cacheKey, func() (any, error) {
		t, err := lookup(ctx, key)
		if err != nil {
			if errors.Is(err, ErrTenantNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrTenantNotFound, info.Host)
			}
			return nil, errors.Join(ErrStoreUnavailable, err)
		}
		if cerr := r.cache.Set(ctx, cacheKey, t, r.ttl); cerr != nil {
			r.log.WarnContext(ctx, "tenant cache write failed",
				"key", cacheKey, "error", cerr)
		}
		return t, nil
	})
	if err != nil {
		return nil, err
	}

	return &Resolution{
		Tenant:  v.(*Tenant),
		Source:  SourceStore,
		Host:    info,
		Elapsed: time.Since(start),
	}, nil
}

// Invalidate drops every cached entry for the tenant: its lookup keys and
// any per-tenant namespace entries such as feature sets. The next resolution
// re-reads the registry.
func (r *Resolver) Invalidate(ctx context.Context, t *Tenant) error {
	if t == nil {
		return nil
	}
	var errs []error
	if t.Domain != "" {
		errs = append(errs, r.cache.Delete(ctx, domainKey(t.Domain)))
	}
	if t.Subdomain != "" {
		errs = append(errs, r.cache.Delete(ctx, subdomainKey(t.Subdomain)))
	}
	errs = append(errs, r.cache.DeletePrefix(ctx, tenantKeyPrefix(t.ID.String())))
	return errors.Join(errs...)
}
