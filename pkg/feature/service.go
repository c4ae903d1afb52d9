package feature

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// DefaultCacheTTL bounds how far cached feature sets may lag the store.
const DefaultCacheTTL = 5 * time.Minute

// Service gates per-tenant functionality. Reads are cache-aside with the
// store as the source of truth; writes go store-first and then overwrite the
// cache with a fresh authoritative read.
type Service struct {
	store Store
	cache Cache
	ttl   time.Duration
	log   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCache sets the cache tier. Defaults to an in-process cache.
func WithCache(cache Cache) Option {
	return func(s *Service) {
		if cache != nil {
			s.cache = cache
		}
	}
}

// WithCacheTTL sets how long merged feature sets stay cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger sets the logger used for cache-tier warnings.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates a feature service over the given store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		ttl:   DefaultCacheTTL,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = NewMemoryCache()
	}
	return s
}

// Get returns the tenant's fully populated feature set: stored overrides
// merged onto defaults, so every known feature name is always present. A
// cache failure logs and falls through to the store; a store failure is
// returned as ErrStoreUnavailable rather than silently answering with
// defaults that may misrepresent the tenant's configuration.
func (s *Service) Get(ctx context.Context, tenantID string) (Set, error) {
	if tenantID == "" {
		return nil, ErrMissingTenantID
	}

	if cached, ok, err := s.cache.Get(ctx, tenantID); err != nil {
		s.log.WarnContext(ctx, "feature cache read failed, falling through to store",
			"tenant_id", tenantID, "error", err)
	} else if ok {
		return cached, nil
	}

	overrides, err := s.store.Overrides(ctx, tenantID)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	merged := merge(overrides)
	if err := s.cache.Set(ctx, tenantID, merged, s.ttl); err != nil {
		s.log.WarnContext(ctx, "feature cache write failed",
			"tenant_id", tenantID, "error", err)
	}
	return merged, nil
}

// Update applies a partial flag update. The whole payload is validated
// against the closed feature set first; a single unknown name rejects the
// update with no partial apply. After the upsert commits, the merged set is
// re-read from the store and the cache entry is overwritten with it, so a
// concurrent reader can never refill the cache with the pre-update value.
func (s *Service) Update(ctx context.Context, tenantID string, update map[string]bool) (Set, error) {
	if tenantID == "" {
		return nil, ErrMissingTenantID
	}
	if err := validate(update); err != nil {
		return nil, err
	}

	if err := s.store.Upsert(ctx, tenantID, update); err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	// Authoritative re-read, not an in-memory delta: concurrent updates
	// resolve to whatever the store actually holds.
	overrides, err := s.store.Overrides(ctx, tenantID)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	merged := merge(overrides)
	if err := s.cache.Set(ctx, tenantID, merged, s.ttl); err != nil {
		s.log.WarnContext(ctx, "feature cache overwrite failed",
			"tenant_id", tenantID, "error", err)
	}
	return merged, nil
}

// Invalidate drops the tenant's cached feature set.
func (s *Service) Invalidate(ctx context.Context, tenantID string) error {
	if tenantID == "" {
		return ErrMissingTenantID
	}
	return s.cache.Delete(ctx, tenantID)
}

func validate(update map[string]bool) error {
	if len(update) == 0 {
		return errors.Join(ErrInvalidUpdate, ErrEmptyUpdate)
	}
	for name := range update {
		if !Known(name) {
			return errors.Join(ErrInvalidUpdate, fmt.Errorf("%w: %q", ErrUnknownFeature, name))
		}
	}
	return nil
}
