package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// TokenBytes is the amount of entropy carried by a session token.
const TokenBytes = 32

// TokenGenerator issues opaque session tokens.
type TokenGenerator interface {
	NewToken() (string, error)
}

// RandomTokenGenerator reads tokens from a cryptographically secure source.
type RandomTokenGenerator struct {
	source io.Reader
}

// NewRandomTokenGenerator returns a generator backed by crypto/rand.
func NewRandomTokenGenerator() *RandomTokenGenerator {
	return &RandomTokenGenerator{source: rand.Reader}
}

// NewToken returns TokenBytes random bytes encoded as lowercase hex.
func (g *RandomTokenGenerator) NewToken() (string, error) {
	buf := make([]byte, TokenBytes)
	if _, err := io.ReadFull(g.source, buf); err != nil {
		return "", fmt.Errorf("read random token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
