// Package cache stores rendered artifacts keyed by seed.
//
// Generation is deterministic, so a cached artifact never goes stale for
// correctness reasons; TTLs only bound storage growth. Three backends are
// provided:
//
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for the HTTP server and NATS workers
//   - [NullCache]: caching disabled
//
// Keys are produced by a [Keyer] so backends never see raw seeds.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry kind.
const (
	// TTLArtifact bounds rendered SVG, PNG, metadata and JSON artifacts.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLToken bounds token→seed lookups. Seeds never change once assigned.
	TTLToken = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value and true on a hit; (nil, false, nil) on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
