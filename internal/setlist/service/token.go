package service

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// DefaultTokenBytes is the amount of randomness behind each token.
const DefaultTokenBytes = 16

// minTokenBytes is the floor enforced regardless of configuration.
const minTokenBytes = 12

// TokenGenerator produces opaque session tokens.
type TokenGenerator interface {
	Generate() string
}

// RandomTokens draws from crypto/rand and encodes with unpadded URL-safe
// base64, so tokens can be placed in a query string as-is.
type RandomTokens struct {
	bytes int
}

func NewRandomTokens(n int) *RandomTokens {
	if n < minTokenBytes {
		n = minTokenBytes
	}
	return &RandomTokens{bytes: n}
}

// Generate panics if the system random source fails; the process cannot
// safely issue credentials without it.
func (r *RandomTokens) Generate() string {
	buf := make([]byte, r.bytes)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("token: random source unavailable: %v", err))
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
