// Package store provides session persistence backends for DiaVoice.
//
// It includes an in-memory store for tests and development, plus SQLite and
// PostgreSQL backends for persistent deployments. Within a single serialized
// session, saves are last-write-wins.
package store

import (
	"sync"

	"github.com/diavoice/DiaVoice/internal/models"
)

// Store persists conversation state keyed by session ID. GetSession returns
// (nil, nil) when the session has no stored state.
type Store interface {
	GetSession(sessionID string) (*models.SessionState, error)
	SaveSession(state models.SessionState) error
	DeleteSession(sessionID string) error
	Close() error
}

// InMemoryStore keeps session state in a mutex-guarded map.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]models.SessionState
}

// NewInMemoryStore creates an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]models.SessionState)}
}

// GetSession returns a copy of the stored state, or nil when absent.
func (s *InMemoryStore) GetSession(sessionID string) (*models.SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

// SaveSession stores the state, replacing any previous value.
func (s *InMemoryStore) SaveSession(state models.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[state.SessionID] = state
	return nil
}

// DeleteSession removes any stored state for the session.
func (s *InMemoryStore) DeleteSession(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error {
	return nil
}
