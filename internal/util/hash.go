// Package util holds small helpers shared across the core and the
// adapters.
package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns the content digest recorded in manifests: a
// SHA-256 hex digest prefixed with the algorithm name, so the scheme
// can change without ambiguity in old manifests.
func Fingerprint(content []byte) string {
	sum := sha256.Sum256(content)
	return "sha256_" + hex.EncodeToString(sum[:])
}
