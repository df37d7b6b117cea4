// Package sessions implements the server-side session layer: an opaque token
// delivered to the client as a cookie, mapped to an authenticated snapshot of
// the user who signed in. Auth and score services never touch the backing
// store directly; they go through the Manager's narrow accessors.
package sessions

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"
)

// tokenBytes is the size of the random session identifier; 32 bytes encode to
// 64 hex characters.
const tokenBytes = 32

// ErrNotFound is returned by Store implementations when no session exists for
// a token.
var ErrNotFound = errors.New("session not found")

// Session is the server-side session record. UserID, Username and Nickname
// are denormalized copies of the User fields taken at sign-in time; they are
// deliberately never re-synced if the user record changes later.
type Session struct {
	IsAuthenticated bool
	UserID          string
	Username        string
	Nickname        string
	ExpiresAt       time.Time
	CreatedAt       time.Time
}

// IsExpired reports whether the session has passed its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Store is the opaque key-value backend holding session records, keyed by the
// session token. Implementations must make Delete idempotent: deleting an
// absent token is a success.
type Store interface {
	// Set stores or replaces the session for a token.
	Set(ctx context.Context, token string, session *Session) error

	// Get retrieves the session for a token. Returns ErrNotFound when no
	// record exists. Expiry is the Manager's concern, not the store's.
	Get(ctx context.Context, token string) (*Session, error)

	// Delete removes the session for a token.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes sessions past their expiry and returns how many
	// were removed. Called by the background reaper.
	DeleteExpired(ctx context.Context) (int64, error)
}

// newSessionToken generates the opaque session identifier from a CSPRNG.
func newSessionToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
