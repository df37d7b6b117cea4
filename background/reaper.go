// Package background contains services that run independently of the HTTP
// request-response cycle. The only one the game backend needs is the session
// reaper: expired session rows are dead weight the store never returns, and
// something has to delete them eventually.
package background

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/user/omok-go/sessions"
)

const (
	// reapInterval is how often expired sessions are swept. One hour matches
	// the reap cadence of the session file store this backend replaced.
	reapInterval = 1 * time.Hour

	// reapTimeout bounds a single sweep so a hung store call cannot pile up
	// overlapping sweeps.
	reapTimeout = 30 * time.Second
)

// StartSessionReaper launches the background sweep of expired sessions. It
// returns immediately; the sweep runs on its own goroutine until stopChan is
// closed, and the returned WaitGroup reaches zero once the reaper has fully
// stopped.
func StartSessionReaper(store sessions.Store, stopChan <-chan struct{}) *sync.WaitGroup {
	log.Println("Session reaper starting...")

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		defer log.Println("Session reaper stopped.")

		ticker := time.NewTicker(reapInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				reapOnce(store)
			case <-stopChan:
				return
			}
		}
	}()

	return &wg
}

// reapOnce performs a single sweep. Failures are logged and retried on the
// next tick; a missed sweep only delays cleanup.
func reapOnce(store sessions.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), reapTimeout)
	defer cancel()

	removed, err := store.DeleteExpired(ctx)
	if err != nil {
		log.Printf("Session reaper: sweep failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("Session reaper: removed %d expired session(s)", removed)
	}
}
