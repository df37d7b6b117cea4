// Package users owns the persistent User entity and its repository. No other
// package holds a writable reference to user records; services mutate them
// exclusively through the Repository interface.
package users

import (
	"time"

	"github.com/google/uuid"
)

// User represents a player account.
type User struct {
	// ID is the opaque identity assigned by the store at creation, immutable.
	ID uuid.UUID `json:"id"`
	// Username is unique and case-sensitive, immutable after creation.
	Username string `json:"username"`
	// PasswordHash is the salted bcrypt hash of the password. The plaintext
	// is never stored, and the hash is never serialized to clients.
	PasswordHash string `json:"-"`
	// Nickname is the display string shown to the opponent.
	Nickname string `json:"nickname"`
	// Score is nil until the first score write.
	Score     *int64     `json:"score,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	// UpdatedAt records the last score write.
	UpdatedAt *time.Time `json:"-"`
}

// CurrentScore returns the stored score, defaulting to 0 when no score has
// ever been written.
func (u *User) CurrentScore() int64 {
	if u.Score == nil {
		return 0
	}
	return *u.Score
}
