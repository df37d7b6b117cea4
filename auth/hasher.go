// Package auth handles the credential and session side of the game backend:
// password hashing, signup, signin with its three-way result code, and
// signout.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher derives and verifies salted password hashes. An interface so
// the service can be tested with a deterministic fake.
type PasswordHasher interface {
	// Hash derives a salted hash of the plaintext. Every call draws a fresh
	// random salt, so hashing the same password twice yields different
	// outputs that both verify.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches the hash. Malformed input of
	// any kind is a mismatch, never an error surfaced to the caller.
	Verify(plaintext, hash string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt. The produced hash is
// self-describing: salt and cost are embedded in the output string, so
// verification needs no side channel.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher with the given work factor.
func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &BcryptHasher{cost: cost}, nil
}

// Hash derives a salted bcrypt hash of the plaintext.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the hash. bcrypt recomputes with
// the embedded salt and cost and compares in constant time.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
