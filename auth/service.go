// This file contains the business logic for signup and signin. The service is
// transport-free: it never sees cookies or response writers. Session creation
// happens in the handler layer once the service reports Success.
package auth

import (
	"context"
	"errors"

	"github.com/user/omok-go/apperror"
	"github.com/user/omok-go/users"
)

// Service provides authentication operations over an injected user repository
// and password hasher.
type Service struct {
	users  users.Repository
	hasher PasswordHasher
}

// NewService creates a new auth Service.
func NewService(repo users.Repository, hasher PasswordHasher) *Service {
	return &Service{
		users:  repo,
		hasher: hasher,
	}
}

// SigninResult is the tagged outcome of a signin attempt. User is non-nil
// only when Code is Success; the transport layer uses it to create the
// session and maps Code to the flat {"result": n} JSON shape.
type SigninResult struct {
	Code SigninCode
	User *users.User
}

// Signup creates a new user account. The password is hashed before the
// repository is touched; the plaintext never goes near the store.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*users.User, error) {
	if req.Username == "" || req.Password == "" || req.Nickname == "" {
		return nil, apperror.NewValidationError("username, password, and nickname are required", nil)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	user, err := s.users.Insert(ctx, req.Username, hash, req.Nickname)
	if err != nil {
		if errors.Is(err, users.ErrDuplicateUsername) {
			return nil, apperror.NewConflictError("username already exists", err)
		}
		if _, ok := apperror.FromError(err); ok {
			return nil, err
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}
	return user, nil
}

// Signin verifies credentials and reports one of the three outcomes. An
// unknown username and a wrong password are business results, not errors:
// callers receive a SigninResult with the matching code and a nil error.
func (s *Service) Signin(ctx context.Context, req SigninRequest) (SigninResult, error) {
	if req.Username == "" || req.Password == "" {
		return SigninResult{}, apperror.NewValidationError("username and password are required", nil)
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return SigninResult{Code: InvalidUsername}, nil
		}
		if _, ok := apperror.FromError(err); ok {
			return SigninResult{}, err
		}
		return SigninResult{}, apperror.NewDatabaseError("failed to get user", err)
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return SigninResult{Code: InvalidPassword}, nil
	}

	return SigninResult{Code: Success, User: user}, nil
}
