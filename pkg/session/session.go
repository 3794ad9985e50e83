package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is one user's active conversational session. A user has at
// most one session at a time; ending and restarting produces a new
// record with a new ID and a zeroed message count.
type Session struct {
	ID             uuid.UUID
	UserID         string
	Role           string
	StartedAt      time.Time
	LastActivityAt time.Time
	MessageCount   int
	Active         bool
}

// Duration reports how long the session has been running as of now.
func (s Session) Duration(now time.Time) time.Duration {
	if s.StartedAt.IsZero() {
		return 0
	}
	return now.Sub(s.StartedAt)
}

// IdleFor reports how long the session has been without activity.
func (s Session) IdleFor(now time.Time) time.Duration {
	if s.LastActivityAt.IsZero() {
		return 0
	}
	return now.Sub(s.LastActivityAt)
}

// expired reports whether the session has outlived the idle timeout.
// A non-positive timeout disables idle expiry.
func (s Session) expired(timeout time.Duration, now time.Time) bool {
	if timeout <= 0 {
		return false
	}
	return s.IdleFor(now) > timeout
}
