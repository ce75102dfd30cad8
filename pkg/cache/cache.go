// Package cache provides response caching for the formatting API.
//
// A formatting pass is a pure function of (engine configuration, dataset),
// so responses can be cached under a key derived from both hashes. The
// package offers several backends behind one interface: an in-memory map
// for single-process servers, a file cache for CLI usage, a Redis cache
// for shared deployments, and a null cache to disable caching.
//
// Engine configuration itself is never persisted here — only computed
// responses, keyed by content hash with a TTL.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys with an optional TTL.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for formatting results.
type Keyer interface {
	// ResultKey keys a formatting response by the engine config hash and
	// the dataset hash.
	ResultKey(configHash, datasetHash string) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ResultKey generates a key for a formatting response.
func (k *DefaultKeyer) ResultKey(configHash, datasetHash string) string {
	return hashKey("result", configHash, datasetHash)
}

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, e.g.
// one prefix per tenant when several charts share a Redis instance.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ResultKey generates a prefixed key for a formatting response.
func (k *ScopedKeyer) ResultKey(configHash, datasetHash string) string {
	return k.prefix + k.inner.ResultKey(configHash, datasetHash)
}
