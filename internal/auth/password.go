package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher defines the one-way credential transform.
// Digests are opaque to callers; plaintext is never logged or stored.
type PasswordHasher interface {
	// Hash returns a salted digest of the plaintext.
	Hash(plaintext string) (string, error)

	// Verify reports whether the plaintext matches the digest.
	Verify(plaintext, digest string) bool
}

// BcryptHasher implements PasswordHasher using bcrypt. bcrypt is salted and
// deliberately expensive; it also caps input at 72 bytes, which is where the
// registration password maximum comes from.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given cost. Costs outside
// bcrypt's supported range fall back to the library default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns a salted bcrypt digest of the plaintext.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether the plaintext matches the digest.
func (h *BcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
