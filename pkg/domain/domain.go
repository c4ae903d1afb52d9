package domain

import (
	"fmt"
	"strings"
)

// Config controls how hostnames are interpreted.
type Config struct {
	// PlatformDomain is the platform's own domain (e.g. "tablekit.app").
	// Hosts ending in this suffix are treated as subdomain-mode tenants.
	PlatformDomain string `env:"PLATFORM_DOMAIN,required"`

	// AllowLocalhost permits loopback hosts, intended for development only.
	AllowLocalhost bool `env:"ALLOW_LOCALHOST" envDefault:"false"`
}

// Info is the parsed view of one request's hostname. It is derived fresh per
// request and never persisted. All string fields are normalized (lowercase,
// trimmed) so equivalent hostnames always produce identical values; cache
// keys downstream depend on this equality.
type Info struct {
	// Host is the normalized hostname without scheme or port.
	Host string

	// Domain is the tenant-owned custom domain, or the platform domain for
	// subdomain-mode hosts.
	Domain string

	// Subdomain is the tenant's label under the platform domain. Empty for
	// custom-domain and localhost hosts.
	Subdomain string

	// Port is the literal port from the hostname, empty when absent.
	Port string

	IsCustomDomain bool
	IsLocalhost    bool
}

// loopback forms recognized as local development hosts
var loopbackHosts = map[string]struct{}{
	"localhost": {},
	"127.0.0.1": {},
	"0.0.0.0":   {},
	"::1":       {},
	"[::1]":     {},
}

// Parse turns a raw hostname into a structured Info. It is pure: no I/O, no
// allocation of shared state. Two calls with equivalent hostnames return
// identical results.
func Parse(hostname string, cfg Config) (Info, error) {
	host := normalize(hostname)
	if host == "" {
		return Info{}, ErrEmptyHostname
	}

	host, port := splitPort(host)
	if host == "" {
		return Info{}, ErrEmptyHostname
	}

	if isLoopback(host) {
		if !cfg.AllowLocalhost {
			return Info{}, fmt.Errorf("%w: %s", ErrLocalhostNotAllowed, host)
		}
		info := Info{Host: host, Port: port, IsLocalhost: true}
		// "demo.localhost" keeps its label so development setups can still
		// address a specific tenant by subdomain.
		if sub, ok := strings.CutSuffix(host, ".localhost"); ok {
			info.Domain = "localhost"
			info.Subdomain = sub
		}
		return info, nil
	}

	if strings.ContainsAny(host, "*?") {
		return Info{}, fmt.Errorf("%w: wildcard in %q", ErrInvalidDomainFormat, host)
	}

	labels := strings.Split(host, ".")
	for _, l := range labels {
		if l == "" {
			return Info{}, fmt.Errorf("%w: empty label in %q", ErrInvalidDomainFormat, host)
		}
	}
	if len(labels) < 2 {
		return Info{}, fmt.Errorf("%w: %q has too few labels", ErrInvalidDomainFormat, host)
	}

	platform := normalize(cfg.PlatformDomain)
	if platform != "" {
		if host == platform {
			// The platform apex addresses no tenant. Callers route it to the
			// marketing site, not through tenant resolution.
			return Info{}, fmt.Errorf("%w: platform apex %q is not a tenant host", ErrInvalidDomainFormat, host)
		}
		if sub, ok := trimPlatformSuffix(labels, strings.Split(platform, ".")); ok {
			if sub == "" {
				return Info{}, fmt.Errorf("%w: host %q", ErrEmptySubdomain, host)
			}
			if strings.ContainsAny(sub, "*?") {
				return Info{}, fmt.Errorf("%w: wildcard subdomain %q", ErrInvalidDomainFormat, sub)
			}
			return Info{
				Host:      host,
				Domain:    platform,
				Subdomain: sub,
				Port:      port,
			}, nil
		}
	}

	return Info{
		Host:           host,
		Domain:         host,
		Port:           port,
		IsCustomDomain: true,
	}, nil
}

// normalize lowercases, trims whitespace and surrounding dots, and strips an
// optional scheme prefix.
func normalize(hostname string) string {
	h := strings.ToLower(strings.TrimSpace(hostname))
	if i := strings.Index(h, "://"); i != -1 {
		h = h[i+3:]
	}
	// Drop any path fragment that slipped in with the host.
	if i := strings.IndexByte(h, '/'); i != -1 {
		h = h[:i]
	}
	return strings.Trim(h, ".")
}

// splitPort separates an optional trailing :port. Bracketed IPv6 literals
// keep their brackets so loopback matching stays exact.
func splitPort(host string) (string, string) {
	if strings.HasPrefix(host, "[") {
		if i := strings.LastIndex(host, "]:"); i != -1 {
			return host[:i+1], host[i+2:]
		}
		return host, ""
	}
	if i := strings.LastIndex(host, ":"); i != -1 && strings.Count(host, ":") == 1 {
		return host[:i], host[i+1:]
	}
	return host, ""
}

func isLoopback(host string) bool {
	if _, ok := loopbackHosts[host]; ok {
		return true
	}
	// name.localhost resolves to loopback on modern systems
	return strings.HasSuffix(host, ".localhost")
}

// trimPlatformSuffix reports whether the trailing labels of host exactly
// match the platform domain's labels, returning the joined leading labels.
func trimPlatformSuffix(hostLabels, platformLabels []string) (string, bool) {
	if len(hostLabels) <= len(platformLabels) {
		return "", false
	}
	offset := len(hostLabels) - len(platformLabels)
	for i, pl := range platformLabels {
		if hostLabels[offset+i] != pl {
			return "", false
		}
	}
	return strings.Join(hostLabels[:offset], "."), true
}
