// Package cache bounds redundant provider fetches with a TTL store and
// single-flight deduplication. The store holds serialized payloads so the
// same code path works against the in-process store and Redis.
package cache

import (
	"context"
	"time"
)

// Store is a byte-oriented TTL key/value store. Entries expire after their
// TTL and are never mutated in place; a refresh replaces the entry
// wholesale.
type Store interface {
	// Get returns the stored value and whether it was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key if present.
	Delete(ctx context.Context, key string) error
	// Close releases store resources.
	Close() error
}
