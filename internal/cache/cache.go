// Package cache provides the content cache backing the CMS revalidation
// window. Fetched collection lists are held for a short TTL (about a minute)
// so repeated page renders do not pay a CMS round-trip per request.
package cache

import (
	"context"
	"time"
)

// Cache is the interface both backends implement. Values are raw bytes so
// the same interface serves the in-memory and the Redis backend.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the cached value, or ErrMiss when absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL. A zero TTL uses the default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Close releases any resources held by the cache.
	Close() error
}

// Error is the error type for cache operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrMiss indicates the key was not found or has expired.
	ErrMiss Error = "cache miss"

	// ErrClosed indicates the cache has been closed.
	ErrClosed Error = "cache closed"
)
