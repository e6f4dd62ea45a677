// File: internal/auth/token.go
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// TokenBytes is the entropy of a session token: 256 bits.
const TokenBytes = 32

// TokenLength is the encoded length of a session token.
var TokenLength = base64.RawURLEncoding.EncodedLen(TokenBytes)

// NewSessionToken returns a URL-safe random token.
func NewSessionToken() (string, error) {
	buf := make([]byte, TokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// IsWellFormedToken reports whether s could have been produced by NewSessionToken.
func IsWellFormedToken(s string) bool {
	if len(s) != TokenLength {
		return false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(s)
	return err == nil && len(decoded) == TokenBytes
}
