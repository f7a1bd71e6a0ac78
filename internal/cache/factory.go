package cache

import (
	"log/slog"
	"time"
)

// Options configures cache creation.
type Options struct {
	// RedisURL selects the Redis backend when non-empty.
	RedisURL string

	// Prefix is the Redis key prefix.
	Prefix string

	// DefaultTTL is the default expiry for entries; this is the content
	// revalidation window.
	DefaultTTL time.Duration

	// CleanupInterval is the sweep interval for the memory backend.
	CleanupInterval time.Duration
}

// New creates a cache from the options. When Redis is configured but
// unreachable it falls back to the memory backend with a warning, so a cache
// outage never takes down content delivery.
func New(opts Options) Cache {
	if opts.DefaultTTL == 0 {
		opts.DefaultTTL = time.Minute
	}
	if opts.CleanupInterval == 0 {
		opts.CleanupInterval = time.Minute
	}

	if opts.RedisURL != "" {
		c, err := NewRedis(opts.RedisURL, opts.Prefix, opts.DefaultTTL)
		if err == nil {
			slog.Info("cache initialized", "backend", "redis")
			return c
		}
		slog.Warn("redis unavailable, falling back to memory cache", "error", err)
	}

	slog.Info("cache initialized", "backend", "memory")
	return NewMemory(opts.DefaultTTL, opts.CleanupInterval)
}
