package sessions

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/user/omok-go/apperror"
)

// Querier is the subset of pgxpool.Pool the store needs; pgxmock satisfies it
// in tests.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements Store against the sessions table. This is the
// default backend: sessions survive process restarts the same way the file
// store did for the service this replaces.
type PostgresStore struct {
	db Querier
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(db Querier) *PostgresStore {
	return &PostgresStore{db: db}
}

// Set stores or replaces the session for a token.
func (s *PostgresStore) Set(ctx context.Context, token string, session *Session) error {
	query := `INSERT INTO sessions (token, user_id, username, nickname, authenticated, expires_at, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)
              ON CONFLICT (token) DO UPDATE
              SET user_id = $2, username = $3, nickname = $4, authenticated = $5, expires_at = $6`

	_, err := s.db.Exec(ctx, query,
		token,
		session.UserID,
		session.Username,
		session.Nickname,
		session.IsAuthenticated,
		session.ExpiresAt,
		session.CreatedAt,
	)
	if err != nil {
		return apperror.NewDatabaseError("failed to store session", err)
	}
	return nil
}

// Get retrieves the session for a token.
func (s *PostgresStore) Get(ctx context.Context, token string) (*Session, error) {
	query := `SELECT user_id, username, nickname, authenticated, expires_at, created_at
              FROM sessions WHERE token = $1`

	var session Session
	err := s.db.QueryRow(ctx, query, token).Scan(
		&session.UserID,
		&session.Username,
		&session.Nickname,
		&session.IsAuthenticated,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, apperror.NewDatabaseError("failed to get session", err)
	}
	return &session, nil
}

// Delete removes the session for a token. Deleting an absent token succeeds.
func (s *PostgresStore) Delete(ctx context.Context, token string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete session", err)
	}
	return nil
}

// DeleteExpired removes sessions past their expiry.
func (s *PostgresStore) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, apperror.NewDatabaseError("failed to delete expired sessions", err)
	}
	return tag.RowsAffected(), nil
}
