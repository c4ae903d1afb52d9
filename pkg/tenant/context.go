package tenant

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Context keys are private struct types so no other package can collide with
// or forge them. Values travel with context.Context, which gives each request
// its own binding under concurrency; there is no shared mutable tenant state
// anywhere in the package.
type (
	tenantKey     struct{}
	resolutionKey struct{}
)

// WithTenant returns a context carrying the tenant.
func WithTenant(ctx context.Context, t *Tenant) context.Context {
	return context.WithValue(ctx, tenantKey{}, t)
}

// FromContext retrieves the tenant bound to the context.
// Reports false outside a binding; it never returns a stale or foreign value.
func FromContext(ctx context.Context) (*Tenant, bool) {
	t, ok := ctx.Value(tenantKey{}).(*Tenant)
	return t, ok && t != nil
}

// IDFromContext retrieves just the tenant ID from the context.
func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	t, ok := FromContext(ctx)
	if !ok {
		return uuid.UUID{}, false
	}
	return t.ID, true
}

// MustFromContext retrieves the tenant from the context and panics when none
// is bound. Use only in code paths that cannot run without a tenant.
func MustFromContext(ctx context.Context) *Tenant {
	t, ok := FromContext(ctx)
	if !ok {
		panic("tenant: no tenant in context")
	}
	return t
}

// WithResolution returns a context carrying the resolution outcome alongside
// the tenant, for diagnostics in downstream code.
func WithResolution(ctx context.Context, res *Resolution) context.Context {
	return context.WithValue(ctx, resolutionKey{}, res)
}

// ResolutionFromContext retrieves the resolution metadata bound to the context.
func ResolutionFromContext(ctx context.Context) (*Resolution, bool) {
	res, ok := ctx.Value(resolutionKey{}).(*Resolution)
	return res, ok && res != nil
}

// Bind runs fn as one request's unit of work with the resolution (and its
// tenant, if any) bound to the derived context. Nested calls see the binding
// through FromContext without the tenant being threaded explicitly;
// concurrent Bind calls for other requests are fully independent.
func Bind(ctx context.Context, res *Resolution, fn func(ctx context.Context) error) error {
	if res != nil {
		ctx = WithResolution(ctx, res)
		if res.Tenant != nil {
			ctx = WithTenant(ctx, res.Tenant)
		}
	}
	return fn(ctx)
}

// LoggerExtractor returns a context extractor that enriches log records with
// the bound tenant ID.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return slog.String("tenant_id", id.String()), true
		}
		return slog.Attr{}, false
	}
}
