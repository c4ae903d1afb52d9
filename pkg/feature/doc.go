// Package feature gates per-tenant functionality behind a small closed set
// of boolean flags.
//
// The flag vocabulary is fixed at compile time with hard-coded defaults.
// Stored overrides are merged onto the defaults, so a returned Set always
// contains every known feature name, even for a tenant with no stored rows.
//
//	svc := feature.NewService(feature.NewPGStore(exec),
//		feature.WithCache(feature.NewRedisCache(redisClient)),
//	)
//
//	flags, err := svc.Get(ctx, tenantID)
//	if flags.Enabled(feature.Loyalty) { ... }
//
// Updates are all-or-nothing: a payload containing a single unknown name is
// rejected with ErrInvalidUpdate before anything is written. After a write,
// the cache entry is overwritten with a fresh store read rather than deleted,
// which closes the window where a concurrent reader could refill the cache
// with the stale pre-update value.
package feature
