// Package cache provides pluggable byte caches for pipeline results.
//
// Three backends are available:
//   - FileCache: local files for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: no-op, caching disabled
//
// A [Keyer] turns pipeline inputs (molecule document hashes, render
// options) into stable cache keys; [ScopedKeyer] prefixes keys for
// namespace isolation.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per cached stage. Encodings are cheap to redo but
// requested often; rendered artifacts are expensive and content-addressed,
// so they keep longer.
const (
	TTLEncode   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the interface all backends implement.
// Values are opaque byte slices; a zero TTL means no expiration.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given time-to-live.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// EncodeKeyOpts parameterizes SMILES encoding cache keys.
// Encoding is deterministic, so the document hash alone identifies the
// result; the struct exists so future options extend the key instead of
// silently aliasing old entries.
type EncodeKeyOpts struct {
	// Reserved for future encoding options.
}

// ArtifactKeyOpts parameterizes rendered-artifact cache keys.
type ArtifactKeyOpts struct {
	Format   string  // "dot", "svg", "png", "pdf"
	Detailed bool    // include atom indices in labels
	Scale    float64 // raster scale factor, 0 for vector formats
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// EncodeKey generates a key for a SMILES encoding of the document
	// identified by docHash.
	EncodeKey(docHash string, opts EncodeKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact of the document
	// identified by docHash.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes all key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// EncodeKey generates a key for a SMILES encoding.
func (k *DefaultKeyer) EncodeKey(docHash string, opts EncodeKeyOpts) string {
	return hashKey("smiles", docHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}
