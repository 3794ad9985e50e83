package assistant

import (
	"sync"
	"time"

	"github.com/dmitrymomot/voicegate/pkg/authn"
)

// auditCapacity bounds the in-memory attempt log. Older entries are
// overwritten once the ring wraps.
const auditCapacity = 1000

// AuditEntry records one authentication decision.
type AuditEntry struct {
	Time          time.Time    `json:"time"`
	UserID        string       `json:"user_id"`
	Role          authn.Role   `json:"role"`
	Method        authn.Method `json:"method"`
	Authenticated bool         `json:"authenticated"`
	DeviceID      string       `json:"device_id,omitempty"`
	Path          string       `json:"path,omitempty"`
}

// AuditLog is a fixed-capacity ring of authentication attempts. Safe
// for concurrent use.
type AuditLog struct {
	mu      sync.RWMutex
	entries []AuditEntry
	next    int
	full    bool

	// counters survive ring wraparound
	total     int
	succeeded int
	failed    int
	master    int

	lastMasterAuth time.Time
}

// NewAuditLog returns an empty log holding up to auditCapacity entries.
func NewAuditLog() *AuditLog {
	return &AuditLog{entries: make([]AuditEntry, auditCapacity)}
}

// Record appends an entry, evicting the oldest once capacity is reached.
func (l *AuditLog) Record(e AuditEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries[l.next] = e
	l.next++
	if l.next == len(l.entries) {
		l.next = 0
		l.full = true
	}

	l.total++
	if e.Authenticated {
		l.succeeded++
		if e.Role == authn.RoleMaster {
			l.master++
			l.lastMasterAuth = e.Time
		}
	} else {
		l.failed++
	}
}

// Recent returns up to n entries, newest first.
func (l *AuditLog) Recent(n int) []AuditEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	size := l.next
	if l.full {
		size = len(l.entries)
	}
	if n <= 0 || n > size {
		n = size
	}

	out := make([]AuditEntry, 0, n)
	for i := 1; i <= n; i++ {
		idx := (l.next - i + len(l.entries)) % len(l.entries)
		out = append(out, l.entries[idx])
	}
	return out
}

// Stats summarizes the log for status reporting.
type AuditStats struct {
	Total          int       `json:"total_attempts"`
	Succeeded      int       `json:"successful"`
	Failed         int       `json:"failed"`
	MasterAuths    int       `json:"master_authentications"`
	LastMasterAuth time.Time `json:"last_master_auth,omitzero"`
}

// Stats returns lifetime counters, unaffected by ring eviction.
func (l *AuditLog) Stats() AuditStats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return AuditStats{
		Total:          l.total,
		Succeeded:      l.succeeded,
		Failed:         l.failed,
		MasterAuths:    l.master,
		LastMasterAuth: l.lastMasterAuth,
	}
}

// Reset clears recorded entries but keeps lifetime counters.
func (l *AuditLog) Reset() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	cleared := l.next
	if l.full {
		cleared = len(l.entries)
	}
	l.entries = make([]AuditEntry, auditCapacity)
	l.next = 0
	l.full = false
	return cleared
}
