package core

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Fingerprint computes the content hash of a configuration document. The
// document is serialized as compact JSON with keys sorted at every nesting
// level (encoding/json sorts map keys) and hashed with SHA-256, so two
// documents with equal content hash identically regardless of key order,
// and any content change produces a different digest.
//
// Serialization of a document built from parsed JSON cannot fail; a document
// containing unmarshalable values is a caller bug and yields the hash of an
// empty serialization.
func Fingerprint(doc Document) string {
	data, _ := json.Marshal(doc)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ShortHash returns the first 8 characters of a fingerprint for display,
// or the full string if it is shorter.
func ShortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
