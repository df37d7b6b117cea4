// This file contains the business logic for score reads and writes. Both
// operations authorize against the session snapshot before touching the user
// repository.
package score

import (
	"context"
	"errors"
	"strconv"

	"github.com/user/omok-go/apperror"
	"github.com/user/omok-go/sessions"
	"github.com/user/omok-go/users"
)

// Service provides score operations over an injected user repository.
type Service struct {
	users users.Repository
}

// NewService creates a new score Service.
func NewService(repo users.Repository) *Service {
	return &Service{users: repo}
}

// AddScore validates the submitted score and persists it for the session's
// user. Validation happens before any store access. The score is keyed by the
// userId snapshotted into the session at sign-in; if that user has since been
// deleted the update matches nothing and NotFound is returned.
func (s *Service) AddScore(ctx context.Context, sess *sessions.Session, input ScoreInput) error {
	if sess == nil || !sess.IsAuthenticated {
		return apperror.NewUnauthorizedError("sign in required", nil)
	}

	raw := string(input)
	if raw == "" {
		return apperror.NewValidationError("a valid score is required", nil)
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return apperror.NewValidationError("a valid score is required", err)
	}

	matched, err := s.users.UpdateScore(ctx, sess.UserID, value)
	if err != nil {
		if errors.Is(err, users.ErrInvalidID) {
			// A session should never carry a malformed id, but if it does the
			// user record is unreachable, which callers see as not found.
			return apperror.NewNotFoundError("user not found", err)
		}
		if _, ok := apperror.FromError(err); ok {
			return err
		}
		return apperror.NewDatabaseError("failed to update score", err)
	}
	if !matched {
		return apperror.NewNotFoundError("user not found", nil)
	}
	return nil
}

// GetScore fetches the score view for the session's user. The identity comes
// from the session snapshot; username and nickname in the response come from
// the current user record.
func (s *Service) GetScore(ctx context.Context, sess *sessions.Session) (*ScoreResponse, error) {
	if sess == nil || !sess.IsAuthenticated {
		return nil, apperror.NewUnauthorizedError("sign in required", nil)
	}

	user, err := s.users.FindByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) || errors.Is(err, users.ErrInvalidID) {
			return nil, apperror.NewNotFoundError("user not found", err)
		}
		if _, ok := apperror.FromError(err); ok {
			return nil, err
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	return &ScoreResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Nickname: user.Nickname,
		Score:    user.CurrentScore(),
	}, nil
}
