package tenant

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tablekit/tablekit/pkg/domain"
)

// ErrorHandler maps tenant resolution failures to HTTP responses.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// middlewareConfig holds middleware configuration.
type middlewareConfig struct {
	errorHandler  ErrorHandler
	skipPaths     []string
	requireActive bool
	log           *slog.Logger
}

// MiddlewareOption configures the middleware.
type MiddlewareOption func(*middlewareConfig)

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(handler ErrorHandler) MiddlewareOption {
	return func(c *middlewareConfig) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

// WithSkipPaths sets path prefixes that bypass tenant resolution,
// typically health checks and platform-level endpoints.
func WithSkipPaths(paths ...string) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.skipPaths = append(c.skipPaths, paths...)
	}
}

// WithRequireActive rejects resolved but disabled tenants. Enabled by default.
func WithRequireActive(require bool) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.requireActive = require
	}
}

// WithMiddlewareLogger sets the logger for resolution failures.
func WithMiddlewareLogger(log *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// DefaultErrorHandler maps the resolution error taxonomy to status codes.
// Store outages become 503 so load balancers retry; they are never reported
// as a missing tenant.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrTenantNotFound):
		http.Error(w, "Tenant not found", http.StatusNotFound)
	case errors.Is(err, ErrInactiveTenant):
		http.Error(w, "Tenant is inactive", http.StatusForbidden)
	case errors.Is(err, ErrStoreUnavailable):
		http.Error(w, "Service temporarily unavailable", http.StatusServiceUnavailable)
	case errors.Is(err, domain.ErrLocalhostNotAllowed):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, domain.ErrInvalidDomainFormat),
		errors.Is(err, domain.ErrEmptyHostname),
		errors.Is(err, domain.ErrEmptySubdomain):
		http.Error(w, "Invalid host", http.StatusBadRequest)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// Middleware resolves the request's Host header to a tenant and binds the
// tenant and resolution metadata to the request context. Each request gets
// its own derived context, so concurrent requests never observe each other's
// tenant.
func Middleware(resolver *Resolver, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		errorHandler:  DefaultErrorHandler,
		requireActive: true,
		log:           slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			res, err := resolver.Resolve(r.Context(), r.Host)
			if err != nil {
				cfg.log.WarnContext(r.Context(), "tenant resolution failed",
					"host", r.Host, "error", err)
				cfg.errorHandler(w, r, err)
				return
			}

			if cfg.requireActive && !res.Tenant.Active {
				cfg.errorHandler(w, r, ErrInactiveTenant)
				return
			}

			ctx := WithResolution(r.Context(), res)
			ctx = WithTenant(ctx, res.Tenant)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireTenant guards routes that cannot run without a bound tenant.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = DefaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := FromContext(r.Context()); !ok {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
