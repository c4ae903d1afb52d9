package feature

import "errors"

var (
	// ErrInvalidUpdate is returned when a feature update payload is rejected.
	// No part of a rejected update is applied.
	ErrInvalidUpdate = errors.New("invalid feature update")

	// ErrUnknownFeature marks an update key outside the closed feature set.
	ErrUnknownFeature = errors.New("unknown feature name")

	// ErrEmptyUpdate is returned when an update carries no entries.
	ErrEmptyUpdate = errors.New("empty feature update")

	// ErrStoreUnavailable is returned when the authoritative store cannot be
	// read or written. It is never papered over with default values.
	ErrStoreUnavailable = errors.New("feature store unavailable")

	// ErrMissingTenantID is a programming error: a feature call without a tenant.
	ErrMissingTenantID = errors.New("missing tenant id for feature lookup")
)
