package cache

import (
	"context"
	"time"
)

// Cache stores JSON encoded values under string keys with a TTL.
// It backs the report and branding read paths.
type Cache interface {
	// Get decodes the value stored under key into dest. It reports false on a miss.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores value under key for ttl
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Delete removes the given keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error

	// Close releases the resources held by the cache
	Close() error
}
