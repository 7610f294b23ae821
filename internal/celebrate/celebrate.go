// Package celebrate holds the post-check-in celebration state. It is a
// two-state machine (idle, celebrating) with a deadline instead of a
// timer: Trigger arms it, and State collapses back to idle once the
// injected clock passes the deadline. No goroutines run behind it.
package celebrate

import "time"

// DefaultTTL is how long a celebration stays visible.
const DefaultTTL = 3 * time.Second

// State of the celebration machine.
type State int

const (
	Idle State = iota
	Celebrating
)

func (s State) String() string {
	if s == Celebrating {
		return "celebrating"
	}
	return "idle"
}

// Store owns the celebration state. Not safe for concurrent use; it has
// a single owner (the root UI model) and is only touched from the update
// loop.
type Store struct {
	state    State
	deadline time.Time
	ttl      time.Duration
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithTTL overrides the celebration duration.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithClock injects a clock. Tests use this to step time explicitly.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore returns an idle store with the default TTL and wall clock.
func NewStore(opts ...Option) *Store {
	s := &Store{
		ttl: DefaultTTL,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Trigger starts (or restarts) a celebration. Re-triggering while one is
// running extends the deadline from now.
func (s *Store) Trigger() {
	s.state = Celebrating
	s.deadline = s.now().Add(s.ttl)
}

// State reports the current state, collapsing an expired celebration
// back to idle on read.
func (s *Store) State() State {
	if s.state == Celebrating && !s.now().Before(s.deadline) {
		s.state = Idle
	}
	return s.state
}

// Remaining reports how much celebration time is left. Zero when idle
// or expired.
func (s *Store) Remaining() time.Duration {
	if s.State() != Celebrating {
		return 0
	}
	return s.deadline.Sub(s.now())
}

// Reset forces the store back to idle regardless of the deadline.
func (s *Store) Reset() {
	s.state = Idle
	s.deadline = time.Time{}
}
