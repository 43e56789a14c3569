package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a namespaced cache key: "smiles:<hash>" for notations,
// "artifact:<hash>" for rendered outputs. The hash covers the document
// hash together with the key options, so a detailed PNG at scale 3 never
// collides with the plain SVG of the same molecule. The full SHA-256 is
// kept; truncating would trade collision safety for nothing.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash returns the hex SHA-256 of data. The pipeline uses it as the
// document hash: the content identity of a molecule document, stable
// across runs and shared between cache keys and API responses.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
