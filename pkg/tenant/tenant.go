package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tenant is one organization served by the platform. Instances are created
// by the provisioning flow and are read-only to this package; the resolver
// only ever copies them into caches.
type Tenant struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	Domain    string         `json:"domain" db:"domain"`
	Subdomain string         `json:"subdomain,omitempty" db:"subdomain"`
	Name      string         `json:"name" db:"name"`
	Email     string         `json:"email,omitempty" db:"email"`
	Phone     string         `json:"phone,omitempty" db:"phone"`
	Settings  map[string]any `json:"settings,omitempty" db:"settings"`
	Features  []string       `json:"features,omitempty" db:"features"`
	Active    bool           `json:"active" db:"active"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// SubdomainMode reports whether the tenant is addressed via a subdomain of
// the platform domain rather than its own custom domain. The two modes are
// mutually exclusive per tenant.
func (t *Tenant) SubdomainMode() bool {
	return t.Subdomain != ""
}

// Store loads tenants from the authoritative registry. Implementations must
// return ErrTenantNotFound when no row matches; any other error is treated
// as a store outage by the resolver.
type Store interface {
	// GetByDomain retrieves a tenant by its normalized custom domain.
	GetByDomain(ctx context.Context, dom string) (*Tenant, error)

	// GetBySubdomain retrieves a tenant by its platform subdomain.
	GetBySubdomain(ctx context.Context, subdomain string) (*Tenant, error)
}
