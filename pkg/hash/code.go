package hash

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// CodeHasher digests one-time codes for storage.
type CodeHasher interface {
	Hash(code string) string
	// Equal reports whether code hashes to hashed. It runs in constant time
	// with respect to the content of both digests.
	Equal(hashed string, code string) bool
}

// SHA256CodeHasher stores codes as lower-case hex SHA-256 digests.
// Changing the encoding invalidates every outstanding code.
type SHA256CodeHasher struct{}

func NewSHA256CodeHasher() *SHA256CodeHasher {
	return &SHA256CodeHasher{}
}

func (h *SHA256CodeHasher) Hash(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func (h *SHA256CodeHasher) Equal(hashed string, code string) bool {
	return subtle.ConstantTimeCompare([]byte(hashed), []byte(h.Hash(code))) == 1
}
