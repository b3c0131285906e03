// Package cache stores pipeline results keyed by content hashes.
//
// Three backends implement [Cache]:
//
//   - [FileCache] keeps entries as JSON files under a directory, for the CLI.
//   - [RedisCache] keeps entries in Redis, for servers sharing one cache.
//   - [NullCache] stores nothing, for --no-cache and tests.
//
// Keys come from a [Keyer]. The default keyer hashes the spec content and
// the options that affect the result, so an edited spec or a different
// zoom never hits a stale entry.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A missing or expired key is reported
	// as hit=false with a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default time-to-live per entry kind.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)
