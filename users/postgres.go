package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/user/omok-go/apperror"
)

// Querier is the subset of pgxpool.Pool the repository needs. Narrowing the
// dependency lets tests substitute a pgxmock pool.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository implements Repository against the users table.
type PostgresRepository struct {
	db Querier
}

// NewPostgresRepository creates a new PostgresRepository.
func NewPostgresRepository(db Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, username, password_hash, nickname, score, created_at, updated_at`

// FindByUsername retrieves a user by exact, case-sensitive username.
func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, apperror.NewDatabaseError("failed to get user by username", err)
	}
	return user, nil
}

// FindByID retrieves a user by identity.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*User, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, parsed))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, apperror.NewDatabaseError("failed to get user by id", err)
	}
	return user, nil
}

// Insert creates a user record, relying on the users_username_key constraint
// for uniqueness. A unique violation at insert time is reported as
// ErrDuplicateUsername regardless of what any earlier existence check saw.
func (r *PostgresRepository) Insert(ctx context.Context, username, passwordHash, nickname string) (*User, error) {
	query := `INSERT INTO users (username, password_hash, nickname)
              VALUES ($1, $2, $3)
              RETURNING id, created_at`

	user := &User{
		Username:     username,
		PasswordHash: passwordHash,
		Nickname:     nickname,
	}
	err := r.db.QueryRow(ctx, query, username, passwordHash, nickname).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrDuplicateUsername
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}
	return user, nil
}

// UpdateScore sets the score and refreshes updated_at in one atomic UPDATE.
// Concurrent writes for the same user serialize in the store; last write wins.
func (r *PostgresRepository) UpdateScore(ctx context.Context, id string, score int64) (bool, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	query := `UPDATE users SET score = $2, updated_at = now() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, parsed, score)
	if err != nil {
		return false, apperror.NewDatabaseError("failed to update score", err)
	}
	return tag.RowsAffected() > 0, nil
}

// scanUser scans one full user row.
func scanUser(row pgx.Row) (*User, error) {
	var user User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Nickname,
		&user.Score,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
