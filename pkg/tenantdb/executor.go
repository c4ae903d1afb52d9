package tenantdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// sessionVar is the transaction-scoped setting row-level security policies
// read. Migrations provision policies against the same name.
const sessionVar = "app.current_tenant_id"

// Pool is the subset of *pgxpool.Pool the executor needs. Begin checks a
// connection out of the pool for the transaction's lifetime and returns it
// on commit or rollback.
type Pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Executor runs every tenant-scoped statement inside an explicit transaction
// that first sets the tenant session variable. Row-level security in the
// store is the enforcement point; application code never rewrites SQL text
// to inject tenant filters. There is no unscoped variant.
type Executor struct {
	pool Pool
}

// New creates an executor over a connection pool.
func New(pool Pool) *Executor {
	return &Executor{pool: pool}
}

// Run executes fn inside a tenant-scoped transaction. The session variable
// is set on the same connection before fn runs, so every statement fn issues
// is filtered by the store's policies. Commit happens only when fn returns
// nil; every other exit path, including context cancellation, rolls back and
// releases the connection.
func (e *Executor) Run(ctx context.Context, tenantID string, fn func(ctx context.Context, tx pgx.Tx) error) error {
	if tenantID == "" {
		return ErrMissingTenantID
	}

	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		// No-op after a successful commit; guarantees release otherwise.
		_ = tx.Rollback(ctx)
	}()

	// set_config with is_local=true scopes the value to this transaction,
	// exactly like SET LOCAL, but parameterized.
	if _, err := tx.Exec(ctx, `SELECT set_config($1, $2, true)`, sessionVar, tenantID); err != nil {
		return err
	}

	if err := fn(ctx, tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Exec runs a single write statement under the tenant scope.
func (e *Executor) Exec(ctx context.Context, tenantID, sql string, args ...any) (pgconn.CommandTag, error) {
	var tag pgconn.CommandTag
	err := e.Run(ctx, tenantID, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		tag, err = tx.Exec(ctx, sql, args...)
		return err
	})
	return tag, err
}

// Query runs a statement under the tenant scope and collects every row with
// scan. Rows are consumed before the transaction commits.
func Query[T any](ctx context.Context, e *Executor, tenantID, sql string, scan pgx.RowToFunc[T], args ...any) ([]T, error) {
	var out []T
	err := e.Run(ctx, tenantID, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, scan)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// QueryRow runs a statement under the tenant scope and collects exactly one
// row. Returns ErrNoRows when the statement matches nothing.
func QueryRow[T any](ctx context.Context, e *Executor, tenantID, sql string, scan pgx.RowToFunc[T], args ...any) (T, error) {
	var out T
	err := e.Run(ctx, tenantID, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, scan)
		return err
	})
	if err != nil {
		var zero T
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, ErrNoRows
		}
		return zero, err
	}
	return out, nil
}
