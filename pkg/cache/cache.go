// Package cache stores rendered template artifacts.
//
// A [Cache] maps string keys to opaque byte slices with an optional TTL.
// Three backends are provided: [FileCache] for the CLI, [RedisCache] for the
// API server, and [NullCache] when caching is disabled. Keys come from a
// [Keyer] so every caller derives the same key for the same document and
// render options.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long a rendered artifact stays cached. Artifacts are a
// pure function of their key, so the TTL only bounds disk and memory use.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A ttl of zero on Set means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
