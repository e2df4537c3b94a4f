// Package examwindow decides whether an exam (or any grace-limited edit
// action) is currently open, from its configured schedule and the current
// instant. All decisions are pure functions of time.
package examwindow

import (
	"time"
)

// State enumerates the possible window states of a scheduled exam.
type State string

const (
	StateScheduled State = "SCHEDULED"
	StateOpen      State = "OPEN"
	StateClosed    State = "CLOSED"
)

const labelTimeFormat = "02 Jan 2006 15:04"

// Window is the evaluated open interval of an exam with a display label.
type Window struct {
	State State
	Label string
	// OpensAt / ClosesAt are zero when the corresponding bound is absent.
	OpensAt  time.Time
	ClosesAt time.Time
}

// Evaluate computes the window state for a schedule at the given instant.
// The effective end is the explicit end when configured, otherwise
// start + duration. A schedule with no start opens immediately but still
// honors an explicit end; a started schedule with neither end nor duration
// never closes.
func Evaluate(start, end *time.Time, duration time.Duration, now time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = time.UTC
	}
	if start == nil {
		if end == nil {
			return Window{State: StateOpen, Label: "open"}
		}
		closes := end.In(loc)
		w := Window{ClosesAt: closes}
		if now.After(closes) {
			w.State = StateClosed
			w.Label = "closed at " + closes.Format(labelTimeFormat)
		} else {
			w.State = StateOpen
			w.Label = "closes " + closes.Format(labelTimeFormat)
		}
		return w
	}

	opens := start.In(loc)
	var closes time.Time
	switch {
	case end != nil:
		closes = end.In(loc)
	case duration > 0:
		closes = opens.Add(duration)
	}

	w := Window{OpensAt: opens, ClosesAt: closes}

	if now.Before(opens) {
		w.State = StateScheduled
		w.Label = "opens " + opens.Format(labelTimeFormat)
		return w
	}
	if !closes.IsZero() && now.After(closes) {
		w.State = StateClosed
		w.Label = "closed at " + closes.Format(labelTimeFormat)
		return w
	}

	w.State = StateOpen
	if closes.IsZero() {
		w.Label = "open"
	} else {
		w.Label = "closes " + closes.Format(labelTimeFormat)
	}
	return w
}

// EditLock gates edits after an activation instant, allowing them for a
// fixed grace period. The same primitive backs attendance-style day locks
// and the post-publish exam edit window.
type EditLock struct {
	ActivatedAt time.Time
	Grace       time.Duration
}

// Open reports whether edits are still permitted at the given instant.
func (l EditLock) Open(now time.Time) bool {
	return !now.After(l.ActivatedAt.Add(l.Grace))
}

// ClosesAt returns the instant after which edits are rejected.
func (l EditLock) ClosesAt() time.Time {
	return l.ActivatedAt.Add(l.Grace)
}
