package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when no tenant matches the lookup key.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrStoreUnavailable is returned when the registry store cannot be
	// reached. It is never collapsed into ErrTenantNotFound.
	ErrStoreUnavailable = errors.New("tenant store unavailable")

	// ErrCacheUnavailable marks a cache-tier failure. Resolution recovers
	// from it by falling through to the store.
	ErrCacheUnavailable = errors.New("tenant cache unavailable")

	// ErrInactiveTenant is returned when a resolved tenant is disabled.
	ErrInactiveTenant = errors.New("tenant is inactive")

	// ErrNoTenantInContext is returned when a tenant is required but none
	// is bound to the current context.
	ErrNoTenantInContext = errors.New("no tenant in context")
)
