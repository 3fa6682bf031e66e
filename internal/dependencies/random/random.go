package random

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
)

// Random provides random token generation that can be mocked for testing
type Random interface {
	// Hex returns n random bytes encoded as 2n lowercase hex characters
	Hex(n int) string

	// Token returns n random bytes encoded as unpadded URL-safe base64
	Token(n int) string
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Hex returns n cryptographically random bytes as a hex string
func (r *CryptoRandom) Hex(n int) string {
	return hex.EncodeToString(r.bytes(n))
}

// Token returns n cryptographically random bytes as URL-safe base64
func (r *CryptoRandom) Token(n int) string {
	return base64.RawURLEncoding.EncodeToString(r.bytes(n))
}

func (r *CryptoRandom) bytes(n int) []byte {
	if n <= 0 {
		return nil
	}
	b := make([]byte, n)
	// crypto/rand.Read never returns an error on supported platforms
	_, _ = rand.Read(b)
	return b
}
