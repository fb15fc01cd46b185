// Package cache stores fetched responses so repeated editor sessions do not
// refetch the image list.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry under the user cache directory
//   - [RedisCache]: a shared redis instance, for several editors on one host
//   - [NullCache]: stores nothing, used with --no-cache
//
// Keys are built with [HTTPKey] so that backends never see raw URLs.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiration.
type Cache interface {
	// Get returns the stored value and whether it was found and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}
