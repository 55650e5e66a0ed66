// Package sessionguard tracks admin inactivity and enforces a warn-then-expire
// timeout. One guard instance belongs to one admin session. Both deadlines
// (warn-at, expire-at) are owned by a single timer and are always cancelled
// and rescheduled together, so a stale expiry can never fire after activity
// dismissed the warning.
package sessionguard

import (
	"sync"
	"time"
)

// State is the inactivity state of a guarded session.
type State int

const (
	// Active means qualifying activity was seen recently.
	Active State = iota
	// Warned means the session expiring notice has been raised.
	Warned
	// Expired is terminal for this guard instance; a fresh login starts a
	// fresh guard.
	Expired
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Warned:
		return "warned"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// Guard owns the two inactivity deadlines of one session.
type Guard struct {
	mu sync.Mutex

	warnAfter   time.Duration
	expireAfter time.Duration

	onWarn   func()
	onExpire func()

	timer    *time.Timer
	state    State
	warnAt   time.Time
	expireAt time.Time
	stopped  bool
}

// New starts a guard in the Active state with both deadlines scheduled.
// onWarn fires once per warning, onExpire fires exactly once when the
// session expires; both run on the timer goroutine without the guard lock
// held, so they may call back into the guard.
func New(warnAfter, expireAfter time.Duration, onWarn, onExpire func()) *Guard {
	g := &Guard{
		warnAfter:   warnAfter,
		expireAfter: expireAfter,
		onWarn:      onWarn,
		onExpire:    onExpire,
		state:       Active,
	}

	now := time.Now()
	g.warnAt = now.Add(warnAfter)
	g.expireAt = now.Add(expireAfter)
	g.timer = time.AfterFunc(warnAfter, g.fire)

	return g
}

// fire handles the shared timer: first pass raises the warning and re-arms
// for the expiry deadline, second pass expires the session.
func (g *Guard) fire() {
	g.mu.Lock()

	if g.stopped || g.state == Expired {
		g.mu.Unlock()
		return
	}

	var cb func()

	now := time.Now()

	switch {
	case !now.Before(g.expireAt):
		g.state = Expired
		cb = g.onExpire
	case g.state == Active && !now.Before(g.warnAt):
		g.state = Warned
		g.timer.Reset(g.expireAt.Sub(now))
		cb = g.onWarn
	default:
		// the timer raced with a reset; re-arm for the pending deadline
		next := g.warnAt
		if g.state == Warned {
			next = g.expireAt
		}

		g.timer.Reset(time.Until(next))
	}

	g.mu.Unlock()

	if cb != nil {
		cb()
	}
}

// ResetOnActivity reschedules both deadlines from now and returns the guard
// to Active, dismissing a pending warning. Once Expired it is a no-op.
func (g *Guard) ResetOnActivity() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stopped || g.state == Expired {
		return
	}

	now := time.Now()
	g.state = Active
	g.warnAt = now.Add(g.warnAfter)
	g.expireAt = now.Add(g.expireAfter)
	g.timer.Reset(g.warnAfter)
}

// State returns the current inactivity state.
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state
}

// Deadlines returns the current warn-at and expire-at times.
func (g *Guard) Deadlines() (warnAt, expireAt time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.warnAt, g.expireAt
}

// Stop releases the timer. It must be called on every exit path of the
// owning session so no callback fires against a disposed session.
func (g *Guard) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.stopped = true
	g.timer.Stop()
}
