package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrConnectionFailed     = errors.New("failed to open postgres connection")
	ErrParseConfig          = errors.New("failed to parse postgres config")
	ErrHealthcheckFailed    = errors.New("postgres healthcheck failed")
	ErrMigrationFailed      = errors.New("failed to apply migrations")
	ErrMigrationsDirMissing = errors.New("migrations directory not found")
	ErrMigrationsPathEmpty  = errors.New("migrations path not provided")
)

// IsNotFound detects pgx.ErrNoRows for uniform "not found" handling.
func IsNotFound(err error) bool {
	return err != nil && errors.Is(err, pgx.ErrNoRows)
}

// IsDuplicateKey detects unique constraint violations (SQLSTATE 23505),
// e.g. provisioning a tenant whose domain is already registered.
func IsDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsForeignKeyViolation detects referential integrity violations (SQLSTATE 23503).
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// IsInsufficientPrivilege detects SQLSTATE 42501, which is how a row-level
// security policy rejects a write outside the caller's tenant.
func IsInsufficientPrivilege(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42501"
}
