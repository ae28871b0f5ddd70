// Package cache defines the read-cache contract used by the user search
// path. Transfers never read through a cache.
package cache

import (
	"context"
	"time"
)

// Cache stores serialized query results under string keys.
type Cache interface {
	// Get returns the cached value, or (nil, nil) on a miss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// DeletePrefix evicts every key sharing the given prefix. Contact
	// mutations use it to invalidate all cached search pages at once.
	DeletePrefix(ctx context.Context, prefix string) error
}
