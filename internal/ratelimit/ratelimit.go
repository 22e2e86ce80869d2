package ratelimit

import (
	"time"
)

// Decision is the outcome of a rate-limit check
type Decision int

const (
	// Admit allows the redirect to proceed
	Admit Decision = iota
	// Reject means the owner's budget for this link is exhausted
	Reject
)

func (d Decision) String() string {
	if d == Admit {
		return "admit"
	}
	return "reject"
}

// Policy is a user's redirect budget. A zero MaxRequests or WindowMs disables limiting.
type Policy struct {
	MaxRequests int64
	WindowMs    int64
}

// Enabled reports whether the policy limits anything at all
func (p Policy) Enabled() bool {
	return p.MaxRequests > 0 && p.WindowMs > 0
}

// State is the rate-limit bookkeeping carried on a link
type State struct {
	Counter     int64
	WindowStart *time.Time // nil until the first redirect is recorded
}

// Evaluate applies the fixed-window policy to a link's current state and
// returns the next state along with the decision. Pure function; callers are
// responsible for loading and persisting state atomically.
//
// Not quite an exact accounting: all requests before an elapsed window are
// disregarded once it expires, so bursts straddling a window boundary are
// undercounted. Known limitation of the fixed-window approach.
func Evaluate(s State, p Policy, now time.Time) (State, Decision) {
	if s.WindowStart == nil {
		// first redirect ever
		return State{Counter: 1, WindowStart: &now}, Admit
	}

	if now.Sub(*s.WindowStart).Milliseconds() > p.WindowMs {
		// expired window
		return State{Counter: 1, WindowStart: &now}, Admit
	}

	// current window
	if s.Counter >= p.MaxRequests {
		// rejected requests do not inflate the counter
		return s, Reject
	}
	s.Counter++
	return s, Admit
}
