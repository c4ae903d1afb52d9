package tenant

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore reads the tenant registry from Postgres. The registry table is the
// one tenant-aware table deliberately outside row-level security: it is what
// the policies key off, and it is read before any tenant is known.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore creates a registry store over an existing connection pool.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

const tenantColumns = `id, domain, subdomain, name, email, phone, settings, features, active, created_at, updated_at`

// GetByDomain retrieves a tenant by its normalized custom domain.
func (s *PGStore) GetByDomain(ctx context.Context, dom string) (*Tenant, error) {
	return s.getBy(ctx, "domain", dom)
}

// GetBySubdomain retrieves a tenant by its platform subdomain.
func (s *PGStore) GetBySubdomain(ctx context.Context, subdomain string) (*Tenant, error) {
	return s.getBy(ctx, "subdomain", subdomain)
}

func (s *PGStore) getBy(ctx context.Context, column, value string) (*Tenant, error) {
	// column is one of two compile-time constants, never caller input.
	query := fmt.Sprintf(`SELECT %s FROM tenants WHERE %s = $1`, tenantColumns, column)

	rows, err := s.pool.Query(ctx, query, value)
	if err != nil {
		return nil, err
	}

	t, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[Tenant])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return t, nil
}
