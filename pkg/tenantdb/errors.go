package tenantdb

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

var (
	// ErrMissingTenantID is a programming error: a tenant-scoped query was
	// attempted without a tenant. It fails before any connection is acquired.
	ErrMissingTenantID = errors.New("missing tenant id for scoped query")

	// ErrNoRows is returned by QueryRow when the statement matches nothing.
	ErrNoRows = pgx.ErrNoRows
)

// IsNoRows reports whether err is the no-rows condition, after unwrapping.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
