package feature

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/tablekit/tablekit/pkg/tenantdb"
)

// Store persists per-tenant feature overrides. The store holds only
// overrides; merging onto defaults is the service's job.
type Store interface {
	// Overrides returns the tenant's stored flag rows. A tenant with no
	// rows returns an empty map, not an error.
	Overrides(ctx context.Context, tenantID string) (map[string]bool, error)

	// Upsert writes every entry of update in one atomic statement.
	Upsert(ctx context.Context, tenantID string, update map[string]bool) error
}

// PGStore keeps overrides in the tenant_features table. All access goes
// through the tenant-scoped executor, so row-level security confines reads
// and writes to the calling tenant.
type PGStore struct {
	exec *tenantdb.Executor
}

// NewPGStore creates a feature store over the tenant-scoped executor.
func NewPGStore(exec *tenantdb.Executor) *PGStore {
	return &PGStore{exec: exec}
}

type flagRow struct {
	Name    string `db:"feature_name"`
	Enabled bool   `db:"enabled"`
}

func (s *PGStore) Overrides(ctx context.Context, tenantID string) (map[string]bool, error) {
	// No tenant predicate in the statement: the RLS policy scopes the scan.
	rows, err := tenantdb.Query(ctx, s.exec, tenantID,
		`SELECT feature_name, enabled FROM tenant_features`,
		pgx.RowToStructByName[flagRow])
	if err != nil {
		return nil, err
	}

	overrides := make(map[string]bool, len(rows))
	for _, row := range rows {
		overrides[row.Name] = row.Enabled
	}
	return overrides, nil
}

// Upsert writes the whole update as a single unnest-based statement so a
// multi-flag change commits atomically.
func (s *PGStore) Upsert(ctx context.Context, tenantID string, update map[string]bool) error {
	names := make([]string, 0, len(update))
	states := make([]bool, 0, len(update))
	for name, enabled := range update {
		names = append(names, name)
		states = append(states, enabled)
	}

	_, err := s.exec.Exec(ctx, tenantID, `
		INSERT INTO tenant_features (tenant_id, feature_name, enabled)
		SELECT current_setting('app.current_tenant_id')::uuid, f.name, f.enabled
		FROM unnest($1::text[], $2::boolean[]) AS f(name, enabled)
		ON CONFLICT (tenant_id, feature_name)
		DO UPDATE SET enabled = EXCLUDED.enabled, updated_at = now()`,
		names, states)
	return err
}
