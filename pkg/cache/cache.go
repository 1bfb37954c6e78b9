// Package cache stores pipeline results between runs.
//
// Two stages are cached: the layout geometry (keyed by the content digests
// of the input images and every option that affects layout) and the encoded
// artifacts (keyed by the geometry digest and the output options). A repeated
// run with unchanged inputs therefore skips decoding, layout and rendering.
//
// [FileCache] keeps entries as JSON files under a directory, by default
// $XDG_CACHE_HOME/gridplot. [NullCache] disables caching.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the entry for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// Entry lifetimes.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
