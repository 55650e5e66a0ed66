// Package activity keeps a bounded, most-recent-first audit trail of
// security-relevant admin actions. The trail lives in memory only, owned by
// one admin session, and is dropped when the session ends.
package activity

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/propertychain/propertychain-admin/internal/uniuri"
)

// UnknownAdminID is recorded when no principal is associated with an action.
const UnknownAdminID = "unknown"

// DefaultCap bounds the trail when no explicit cap is configured.
const DefaultCap = 100

// Entry is one immutable record of a security-relevant action.
type Entry struct {
	ID        string
	AdminID   string
	Action    string
	Details   map[string]any
	IPAddress string
	UserAgent string
	Timestamp time.Time
	Risk      RiskLevel
}

// Log is a bounded most-recent-first sequence of entries. Safe for use from
// multiple request goroutines.
type Log struct {
	mu      sync.Mutex
	cap     int
	entries []Entry
}

// NewLog creates an empty activity log bounded to cap entries.
func NewLog(cap int) *Log {
	if cap <= 0 {
		cap = DefaultCap
	}

	return &Log{cap: cap}
}

// Record derives the entry's id, timestamp and risk level, prepends it to
// the trail and truncates the oldest entries beyond the cap. A caller may
// force the level with a "risk" detail; otherwise it is derived from the
// action label. The completed entry is also emitted as a structured log
// event, the stand-in for a real telemetry sink.
func (l *Log) Record(e Entry) Entry {
	e.ID = uniuri.New()
	e.Timestamp = time.Now()
	e.Risk = riskFor(e)

	if e.AdminID == "" {
		e.AdminID = UnknownAdminID
	}

	l.mu.Lock()
	l.entries = append([]Entry{e}, l.entries...)
	if len(l.entries) > l.cap {
		l.entries = l.entries[:l.cap]
	}
	l.mu.Unlock()

	log.Info().
		Str("admin_id", e.AdminID).
		Str("action", e.Action).
		Str("risk", string(e.Risk)).
		Str("ip", e.IPAddress).
		Msg("admin activity")

	return e
}

// Entries returns a copy of the trail, most recent first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)

	return out
}

// Len returns the number of recorded entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}
