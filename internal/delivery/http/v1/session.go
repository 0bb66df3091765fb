package v1

import (
	"sync"

	"go-jobtracker-backend/internal/domain"
	"go-jobtracker-backend/internal/usecase"
)

// GridSession bundles one user's SyncState: their sync engine and the delta
// buffer feeding their grid. Created lazily on the first authenticated call
// after sign-in, dropped on sign-out.
type GridSession struct {
	Engine domain.SyncEngine
	Buffer *gridBuffer
}

// SessionStore owns the per-user GridSessions.
type SessionStore struct {
	store domain.RowStore

	mu       sync.Mutex
	sessions map[string]*GridSession
}

func NewSessionStore(store domain.RowStore) *SessionStore {
	return &SessionStore{
		store:    store,
		sessions: make(map[string]*GridSession),
	}
}

// Get returns the user's session, creating it with the presented credential
// when none exists yet.
func (s *SessionStore) Get(userID, credential string) *GridSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[userID]; ok {
		return sess
	}

	buffer := newGridBuffer()
	sess := &GridSession{
		Engine: usecase.NewSyncEngine(s.store, buffer, userID, credential),
		Buffer: buffer,
	}
	s.sessions[userID] = sess
	return sess
}

// Clear drops the user's SyncState. Reports whether a session existed.
func (s *SessionStore) Clear(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[userID]
	delete(s.sessions, userID)
	return ok
}
