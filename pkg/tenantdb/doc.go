// Package tenantdb executes tenant-scoped database statements.
//
// Every operation goes through one primitive: an explicit transaction that
// first sets the app.current_tenant_id session variable (transaction-local,
// parameterized) and then runs the caller's statements on the same
// connection. Row-level security policies in Postgres read that variable and
// enforce isolation in the store itself; nothing in application code builds
// tenant predicates into SQL text.
//
//	type order struct {
//		ID    uuid.UUID `db:"id"`
//		Total int64     `db:"total_cents"`
//	}
//
//	orders, err := tenantdb.Query(ctx, exec, tenantID,
//		`SELECT id, total_cents FROM orders WHERE status = $1`,
//		pgx.RowToStructByName[order], "open")
//
// An empty tenant ID fails fast with ErrMissingTenantID before a connection
// is acquired; there is no unscoped mode.
package tenantdb
