package sessions

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store with an in-process map. It backs local
// development (SESSION_STORE=memory) and the handler tests; sessions are lost
// on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
	}
}

// Set stores or replaces the session for a token.
func (s *MemoryStore) Set(_ context.Context, token string, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Stored by value so later mutation of the caller's struct cannot bypass
	// the store.
	s.sessions[token] = *session
	return nil
}

// Get retrieves the session for a token.
func (s *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}
	copied := session
	return &copied, nil
}

// Delete removes the session for a token. Deleting an absent token succeeds.
func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// DeleteExpired removes sessions past their expiry.
func (s *MemoryStore) DeleteExpired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	var removed int64
	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed, nil
}
