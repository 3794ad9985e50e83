package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultIdleTimeout closes sessions with no activity for this long.
const DefaultIdleTimeout = 30 * time.Minute

// Manager drives the session lifecycle. All mutation of a user's record
// goes through OnRequest, which holds that user's lock for the whole
// read-decide-write cycle.
type Manager struct {
	store       Store
	start       PhraseSet
	end         PhraseSet
	idleTimeout time.Duration
	now         func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Option configures a Manager.
type Option func(*Manager)

// WithStore swaps the backing store. Defaults to a fresh MemoryStore.
func WithStore(store Store) Option {
	return func(m *Manager) {
		if store != nil {
			m.store = store
		}
	}
}

// WithStartPhrases sets the phrases that open a session.
func WithStartPhrases(phrases ...string) Option {
	return func(m *Manager) { m.start = NewPhraseSet(phrases...) }
}

// WithEndPhrases sets the phrases that close a session.
func WithEndPhrases(phrases ...string) Option {
	return func(m *Manager) { m.end = NewPhraseSet(phrases...) }
}

// WithIdleTimeout sets the inactivity window after which a session is
// considered expired. Zero or negative disables idle expiry.
func WithIdleTimeout(d time.Duration) Option {
	return func(m *Manager) { m.idleTimeout = d }
}

// WithClock injects a time source for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a Manager with the given options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		store:       NewMemoryStore(),
		idleTimeout: DefaultIdleTimeout,
		now:         time.Now,
		locks:       make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// lock returns the mutex for userID, creating it on first use. Locks
// are never evicted; the map is bounded by the number of distinct users
// seen by the process.
func (m *Manager) lock(userID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		m.locks[userID] = l
	}
	return l
}

// OnRequest applies one incoming message to the user's session state
// and reports what happened. Lifecycle transitions require an
// authenticated identity; unauthenticated requests never start, extend
// or end a session (a guest claiming another user's id must not be able
// to close that user's session). Expiry is evaluated here lazily: an
// idle session is closed on its next touch, and if the touching message
// is itself a start phrase the close is folded into a fresh start.
func (m *Manager) OnRequest(ctx context.Context, userID string, authenticated bool, role, message string) (Result, error) {
	if userID == "" {
		return Result{Event: EventNone}, ErrEmptyUserID
	}

	l := m.lock(userID)
	l.Lock()
	defer l.Unlock()

	now := m.now()
	isStart := authenticated && m.start.Match(message)
	isEnd := authenticated && m.end.Match(message)

	current, err := m.store.Get(ctx, userID)
	switch {
	case errors.Is(err, ErrNotFound):
		if isStart {
			return m.begin(ctx, userID, role, now)
		}
		return Result{Event: EventNone}, nil
	case err != nil:
		return Result{Event: EventNone}, fmt.Errorf("session: load: %w", err)
	}

	if current.expired(m.idleTimeout, now) {
		if err := m.store.Delete(ctx, userID); err != nil {
			return Result{Event: EventNone}, fmt.Errorf("session: delete expired: %w", err)
		}
		if isStart {
			// The same message both buries the stale session and opens
			// a new one; only the start is reported.
			return m.begin(ctx, userID, role, now)
		}
		current.Active = false
		return Result{
			Event:    EventEnded,
			Session:  current,
			Duration: current.Duration(now),
			Expired:  true,
		}, nil
	}

	switch {
	case isEnd:
		if err := m.store.Delete(ctx, userID); err != nil {
			return Result{Event: EventNone}, fmt.Errorf("session: delete: %w", err)
		}
		current.Active = false
		return Result{
			Event:    EventEnded,
			Session:  current,
			Duration: current.Duration(now),
		}, nil
	case isStart:
		// Restart: the old record is replaced wholesale.
		return m.begin(ctx, userID, role, now)
	case authenticated:
		current.MessageCount++
		current.LastActivityAt = now
		if err := m.store.Save(ctx, current); err != nil {
			return Result{Event: EventNone}, fmt.Errorf("session: save: %w", err)
		}
		return Result{Event: EventContinued, Session: current}, nil
	default:
		return Result{Event: EventNone}, nil
	}
}

func (m *Manager) begin(ctx context.Context, userID, role string, now time.Time) (Result, error) {
	sess := Session{
		ID:             uuid.New(),
		UserID:         userID,
		Role:           role,
		StartedAt:      now,
		LastActivityAt: now,
		Active:         true,
	}
	if err := m.store.Save(ctx, sess); err != nil {
		return Result{Event: EventNone}, fmt.Errorf("session: save: %w", err)
	}
	return Result{Event: EventStarted, Session: sess}, nil
}

// Peek returns the user's current session without mutating it. Expired
// sessions are reported as not found but left in place for OnRequest to
// close properly.
func (m *Manager) Peek(ctx context.Context, userID string) (Session, bool) {
	sess, err := m.store.Get(ctx, userID)
	if err != nil {
		return Session{}, false
	}
	if sess.expired(m.idleTimeout, m.now()) {
		return Session{}, false
	}
	return sess, true
}

// Active returns a snapshot of every non-expired session, for status
// reporting.
func (m *Manager) Active(ctx context.Context) []Session {
	all, err := m.store.All(ctx)
	if err != nil {
		return nil
	}
	now := m.now()
	out := make([]Session, 0, len(all))
	for _, sess := range all {
		if sess.Active && !sess.expired(m.idleTimeout, now) {
			out = append(out, sess)
		}
	}
	return out
}

// IdleTimeout reports the configured inactivity window.
func (m *Manager) IdleTimeout() time.Duration { return m.idleTimeout }
