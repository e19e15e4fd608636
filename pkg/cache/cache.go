// Package cache provides descriptor caching for imgsort.
//
// Extracting a descriptor means decoding and scanning a full image, which
// dwarfs every other per-item cost. Caching descriptors keyed by the file's
// identity (path, size, mtime) and the extractor configuration lets repeat
// runs over a mostly-unchanged directory skip almost all of that work.
//
// Backends: FileCache for local CLI use, RedisCache for sharing a cache across
// machines, and NullCache to disable caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with an optional TTL.
type Cache interface {
	// Get retrieves a value. The second result reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Keyer generates cache keys. Key layout is an implementation detail of the
// cache namespace; callers should treat keys as opaque.
type Keyer interface {
	// DescriptorKey identifies a descriptor by the source file's identity and
	// the extractor signature that produced it. Any change to the file or the
	// extractor configuration yields a different key.
	DescriptorKey(path string, size int64, modTime time.Time, signature string) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DescriptorKey implements Keyer.
func (k *DefaultKeyer) DescriptorKey(path string, size int64, modTime time.Time, signature string) string {
	return hashKey("desc", path, size, modTime.UnixNano(), signature)
}

// ScopedKeyer wraps a Keyer with a prefix so separate collections (or users of
// a shared Redis instance) get isolated namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every generated key.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// DescriptorKey implements Keyer.
func (k *ScopedKeyer) DescriptorKey(path string, size int64, modTime time.Time, signature string) string {
	return k.prefix + k.inner.DescriptorKey(path, size, modTime, signature)
}
