// File: internal/auth/password.go
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost puts a single verification in the low hundreds of milliseconds.
const DefaultCost = 12

// ErrPasswordTooLong is returned for passwords bcrypt cannot represent.
var ErrPasswordTooLong = errors.New("password must be at most 72 bytes")

// PasswordHasher hashes and verifies passwords with bcrypt.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher using cost, clamped to bcrypt's range.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns a salted bcrypt hash. Each call uses a fresh salt.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if len(password) > 72 {
		return "", ErrPasswordTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether password matches hash. A malformed hash yields false.
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
