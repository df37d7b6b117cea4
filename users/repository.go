package users

import (
	"context"
	"errors"
)

// Sentinel errors returned by Repository implementations. Services translate
// these into apperror values; the repository itself stays transport-agnostic.
var (
	// ErrNotFound is returned when no user record matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateUsername is returned when an insert collides with an
	// existing username. The store's uniqueness constraint is the
	// authoritative signal; Insert performs no existence pre-check.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrInvalidID is returned when an identity is not a well-formed uuid.
	ErrInvalidID = errors.New("invalid user id")
)

// Repository provides CRUD over user records, keyed by unique username and by
// identity id. It is injected into the auth and score services at
// construction rather than reached through shared global state.
type Repository interface {
	// FindByUsername retrieves a user by exact username.
	// Returns ErrNotFound when absent.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByID retrieves a user by identity. Returns ErrInvalidID when id is
	// not a well-formed uuid and ErrNotFound when no record matches.
	FindByID(ctx context.Context, id string) (*User, error)

	// Insert creates a user record. Returns ErrDuplicateUsername when the
	// username is already taken at commit time.
	Insert(ctx context.Context, username, passwordHash, nickname string) (*User, error)

	// UpdateScore sets the score and refreshes the update timestamp in a
	// single store operation. The boolean reports whether a matching record
	// existed; a value-wise no-op update still counts as matched.
	UpdateScore(ctx context.Context, id string, score int64) (bool, error)
}
