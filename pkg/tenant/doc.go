// Package tenant resolves request hostnames to tenants and propagates the
// resolved tenant through request-scoped context.
//
// Resolution is cache-aside: a hostname is parsed (pkg/domain), looked up in
// the cache under a domain- or subdomain-keyed namespace, and on a miss read
// from the registry store, which then refills the cache best-effort.
// Concurrent misses for one key collapse into a single store query.
//
//	store := tenant.NewPGStore(pool)
//	resolver := tenant.NewResolver(store, domainCfg,
//		tenant.WithCache(tenant.NewRedisCache(redisClient)),
//		tenant.WithCacheTTL(10*time.Minute),
//	)
//
//	router.Use(tenant.Middleware(resolver,
//		tenant.WithSkipPaths("/health"),
//	))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		t, ok := tenant.FromContext(r.Context())
//		...
//	}
//
// # Isolation
//
// The bound tenant lives in context.Context, never in a package-level
// variable. Each request derives its own context in the middleware (or via
// Bind), so two in-flight requests can never observe each other's tenant.
// Outside a binding, FromContext reports false.
//
// # Failure policy
//
// Cache-tier failures are recoverable: they are logged and the lookup falls
// through to the store. Store failures surface as ErrStoreUnavailable and
// are never masked as ErrTenantNotFound, so an outage cannot silently turn
// every tenant into a 404.
package tenant
