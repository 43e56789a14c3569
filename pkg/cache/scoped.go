package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Useful when several users or libraries share one cache backend.
//
// Example usage:
//
//	// User-specific keys for private molecule libraries
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Global keys for shared documents
//	globalKeyer := NewDefaultKeyer()
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

// EncodeKey generates a prefixed key for a SMILES encoding.
func (k *ScopedKeyer) EncodeKey(docHash string, opts EncodeKeyOpts) string {
	return k.prefix + k.inner.EncodeKey(docHash, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(docHash, opts)
}
