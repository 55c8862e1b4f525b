package api

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
)

// SessionCookieName identifies the conversation session across requests.
const SessionCookieName = "diavoice_session"

// sessionID returns the session identifier from the request cookie, issuing
// a fresh one on first contact.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// sessionLock is one session's mutex plus the count of goroutines holding or
// waiting on it. The count keeps the registry entry alive until the last
// waiter has gone through the mutex; dropping the entry any earlier would
// hand a later acquirer a fresh mutex while the old one is still held.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// sessionLocks serializes turn processing per session. State mutation
// (index advance, queue pop) is not safe under interleaving, so concurrent
// turns for the same session must queue; different sessions proceed in
// parallel. Entries are removed once no goroutine holds or waits on them.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sessionLock)}
}

// acquire locks the named session and returns its unlock function. The entry
// is reference-counted and dropped from the registry when the last holder or
// waiter unlocks.
func (l *sessionLocks) acquire(sessionID string) func() {
	l.mu.Lock()
	entry, ok := l.locks[sessionID]
	if !ok {
		entry = &sessionLock{}
		l.locks[sessionID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, sessionID)
		}
		l.mu.Unlock()
	}
}
