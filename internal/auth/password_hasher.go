package auth

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 10

// PasswordHasher wraps bcrypt hashing and verification of credentials.
type PasswordHasher struct{}

// NewPasswordHasher creates a password hasher.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{}
}

// Hash produces a salted bcrypt digest of the plaintext. The salt is random,
// so hashing the same input twice yields different digests.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether the plaintext matches the digest. A structurally
// invalid or empty digest yields false, never an error.
func (h *PasswordHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
