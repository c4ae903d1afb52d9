// Package pg bootstraps the shared PostgreSQL layer: a pgx/v5 connection
// pool with retrying startup, goose schema migrations, a health check, and
// error classifiers for the SQLSTATEs the platform cares about.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil { ... }
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil { ... }
//
// The pool is a process-wide singleton safely shared by concurrent request
// handling; per-tenant scoping happens per transaction in pkg/tenantdb, not
// per connection.
package pg
