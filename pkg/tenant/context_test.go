package tenant_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablekit/tablekit/pkg/tenant"
)

func TestContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		want := testTenant("pizza-palace.com", "")
		ctx := tenant.WithTenant(context.Background(), want)

		got, ok := tenant.FromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, want.ID, got.ID)

		id, ok := tenant.IDFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, want.ID, id)
	})

	t.Run("empty context reports no tenant", func(t *testing.T) {
		t.Parallel()

		_, ok := tenant.FromContext(context.Background())
		assert.False(t, ok)

		_, ok = tenant.IDFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("nil tenant value reports no tenant", func(t *testing.T) {
		t.Parallel()

		ctx := tenant.WithTenant(context.Background(), nil)
		_, ok := tenant.FromContext(ctx)
		assert.False(t, ok)
	})

	t.Run("MustFromContext panics without binding", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			tenant.MustFromContext(context.Background())
		})
	})

	t.Run("resolution metadata travels with the context", func(t *testing.T) {
		t.Parallel()

		res := &tenant.Resolution{Tenant: testTenant("", "resto"), Source: tenant.SourceCache}
		ctx := tenant.WithResolution(context.Background(), res)

		got, ok := tenant.ResolutionFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, tenant.SourceCache, got.Source)
	})
}

func TestBind(t *testing.T) {
	t.Parallel()

	t.Run("binds tenant and resolution for the unit of work", func(t *testing.T) {
		t.Parallel()

		want := testTenant("pizza-palace.com", "")
		res := &tenant.Resolution{Tenant: want, Source: tenant.SourceStore}

		err := tenant.Bind(context.Background(), res, func(ctx context.Context) error {
			got, ok := tenant.FromContext(ctx)
			require.True(t, ok)
			assert.Equal(t, want.ID, got.ID)

			// Indirectly reached code sees the same binding.
			return deepCall(ctx, want)
		})
		require.NoError(t, err)
	})

	t.Run("binding does not leak outside the body", func(t *testing.T) {
		t.Parallel()

		base := context.Background()
		res := &tenant.Resolution{Tenant: testTenant("pizza-palace.com", "")}

		err := tenant.Bind(base, res, func(ctx context.Context) error { return nil })
		require.NoError(t, err)

		_, ok := tenant.FromContext(base)
		assert.False(t, ok)
	})

	t.Run("nil resolution runs body unbound", func(t *testing.T) {
		t.Parallel()

		err := tenant.Bind(context.Background(), nil, func(ctx context.Context) error {
			_, ok := tenant.FromContext(ctx)
			assert.False(t, ok)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("body error propagates", func(t *testing.T) {
		t.Parallel()

		res := &tenant.Resolution{Tenant: testTenant("pizza-palace.com", "")}
		wantErr := tenant.ErrNoTenantInContext
		err := tenant.Bind(context.Background(), res, func(ctx context.Context) error {
			return wantErr
		})
		assert.ErrorIs(t, err, wantErr)
	})
}

// deepCall stands in for business logic several layers below the handler,
// which retrieves the tenant without it being passed as a parameter.
func deepCall(ctx context.Context, want *tenant.Tenant) error {
	got, ok := tenant.FromContext(ctx)
	if !ok || got.ID != want.ID {
		return tenant.ErrNoTenantInContext
	}
	return nil
}
