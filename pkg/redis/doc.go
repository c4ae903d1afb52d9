// Package redis bootstraps the shared cache tier: a go-redis client with
// retrying startup and a health check. The client is a process-wide
// singleton; pkg/tenant and pkg/feature layer their cache semantics on top.
package redis
