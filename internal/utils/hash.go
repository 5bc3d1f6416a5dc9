package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// hasherPool is a package-level pool of reusable SHA-256 hash instances.
var hasherPool = sync.Pool{
	New: func() any {
		return sha256.New()
	},
}

// ContentHash computes a SHA-256 digest over the given byte slice
// using a hasher pulled from the package hasher pool.
//
// Behavior:
//   - Retrieves a hash.Hash instance from sync.Pool
//   - Resets it, writes the data, computes the sum
//   - Resets again and returns it to the pool
//
// Parameters:
//
//	data - arbitrary byte slice to be hashed
//
// Returns:
//
//	[]byte - SHA-256 digest
//
// Example usage:
//
//	digest := utils.ContentHash([]byte("some data"))
func ContentHash(data []byte) []byte {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	hasherPool.Put(h)

	return sum
}

// ContentHashString computes a SHA-256 digest over the given string and
// returns the result as a hex-encoded string.
//
// Used for the plaintext integrity hash stored alongside encrypted
// notes and for reporting content fingerprints.
//
// Parameters:
//
//	data - string to be hashed
//
// Returns:
//
//	string - hex-encoded SHA-256 digest
//
// Example usage:
//
//	fingerprint := utils.ContentHashString("the note text")
func ContentHashString(data string) string {
	return hex.EncodeToString(ContentHash([]byte(data)))
}
