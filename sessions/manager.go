package sessions

import (
	"context"
	"net/http"
	"time"

	"github.com/user/omok-go/apperror"
	"github.com/user/omok-go/config"
	"github.com/user/omok-go/users"
)

// Manager binds sessions to client cookies. It owns the full session
// lifecycle: creation at sign-in, lookup on authenticated requests, and
// destruction at sign-out.
type Manager struct {
	store Store
	cfg   config.SessionConfig
}

// NewManager creates a Manager over the given store.
func NewManager(store Store, cfg config.SessionConfig) *Manager {
	return &Manager{store: store, cfg: cfg}
}

// Create establishes an authenticated session for the user and sets the
// session cookie on the response. The session snapshots the user's identity,
// username and nickname as they are at sign-in.
func (m *Manager) Create(ctx context.Context, w http.ResponseWriter, user *users.User) (*Session, error) {
	token, err := newSessionToken()
	if err != nil {
		return nil, apperror.NewInternalError("failed to generate session token", err)
	}

	now := time.Now()
	session := &Session{
		IsAuthenticated: true,
		UserID:          user.ID.String(),
		Username:        user.Username,
		Nickname:        user.Nickname,
		ExpiresAt:       now.Add(m.cfg.TTL),
		CreatedAt:       now,
	}
	if err := m.store.Set(ctx, token, session); err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	return session, nil
}

// Current resolves the request's session cookie to a session. The boolean is
// true only for an authenticated, unexpired session; callers treat false as
// not signed in without distinguishing why.
func (m *Manager) Current(ctx context.Context, r *http.Request) (*Session, bool) {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}

	session, err := m.store.Get(ctx, cookie.Value)
	if err != nil {
		return nil, false
	}
	if session.IsExpired() || !session.IsAuthenticated {
		return nil, false
	}
	return session, true
}

// Destroy invalidates the request's session. The cookie is cleared even when
// the store delete fails, but the failure is still reported so the caller can
// surface a server error instead of silently succeeding.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cookie, cookieErr := r.Cookie(m.cfg.CookieName)

	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	if cookieErr != nil || cookie.Value == "" {
		// No session to destroy; signing out while signed out succeeds.
		return nil
	}
	if err := m.store.Delete(ctx, cookie.Value); err != nil {
		return err
	}
	return nil
}
