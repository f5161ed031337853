// Package cache provides the ephemeral tier of the recommendation cache:
// a byte-oriented key/value store with per-entry TTLs. Two implementations
// exist: a Redis-backed client for deployments and an in-memory store for
// tests and single-node development.
//
// The cache is advisory. Callers must treat every failure as a miss or a
// no-op and fall through to the durable tier or to live computation;
// nothing in this package is a source of correctness.
package cache

import (
	"context"
	"time"
)

// Cache is a TTL-bounded ephemeral key/value store.
type Cache interface {
	// Get retrieves the value for key. The second return value reports
	// whether the key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key with the given TTL, replacing any
	// previous value.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache client.
	Close() error
}
