package domain

import "errors"

var (
	// ErrInvalidDomainFormat is returned when a hostname cannot be parsed
	// into a tenant-addressable domain.
	ErrInvalidDomainFormat = errors.New("invalid domain format")

	// ErrEmptyHostname is returned when the hostname is empty after normalization.
	ErrEmptyHostname = errors.New("empty hostname")

	// ErrLocalhostNotAllowed is returned when a loopback host is used in an
	// environment that forbids it.
	ErrLocalhostNotAllowed = errors.New("localhost access forbidden in this environment")

	// ErrEmptySubdomain is returned when the platform-domain suffix matches
	// but no subdomain label remains.
	ErrEmptySubdomain = errors.New("empty subdomain")
)
