package session

import (
	"context"
	"sync"
)

// Store persists session records keyed by user id. Implementations must
// be safe for concurrent use; the Manager serializes mutation per user
// but reads (admin status, debug) may arrive from any goroutine.
type Store interface {
	// Get returns the session for userID or ErrNotFound.
	Get(ctx context.Context, userID string) (Session, error)

	// Save inserts or replaces the session for sess.UserID.
	Save(ctx context.Context, sess Session) error

	// Delete removes the session for userID. Deleting a missing record
	// is not an error.
	Delete(ctx context.Context, userID string) error

	// All returns a snapshot of every stored session.
	All(ctx context.Context) ([]Session, error)
}

// MemoryStore is a process-local Store backed by a map. There is no
// background eviction; stale records are removed lazily by the Manager
// when next touched.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (s *MemoryStore) Get(_ context.Context, userID string) (Session, error) {
	if userID == "" {
		return Session{}, ErrEmptyUserID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return Session{}, ErrNotFound
	}
	return sess, nil
}

func (s *MemoryStore) Save(_ context.Context, sess Session) error {
	if sess.UserID == "" {
		return ErrEmptyUserID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.UserID] = sess
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID string) error {
	if userID == "" {
		return ErrEmptyUserID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

func (s *MemoryStore) All(_ context.Context) ([]Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	return out, nil
}

// Len reports the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
