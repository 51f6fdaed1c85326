// Package schedule runs delayed callbacks on the simulation clock.
//
// It plays the role of an engine's "invoke after delay": gameplay code asks
// for a callback some time in the future and the tick loop advances the
// clock. Everything runs on the tick goroutine; nothing here is safe for
// concurrent use.
package schedule

import (
	"sort"
	"time"
)

// Timer is the handle for one scheduled callback.
type Timer struct {
	due     time.Duration
	seq     uint64
	fn      func()
	fired   bool
	stopped bool
}

// Due returns the clock time at which the callback runs.
func (t *Timer) Due() time.Duration {
	return t.due
}

// Cancel prevents the callback from running. It returns false if the timer
// already fired or was cancelled before.
func (t *Timer) Cancel() bool {
	if t == nil || t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Stopped reports whether the timer was cancelled.
func (t *Timer) Stopped() bool {
	return t != nil && t.stopped
}

// Fired reports whether the callback has run.
func (t *Timer) Fired() bool {
	return t != nil && t.fired
}

// Scheduler owns a simulation clock and the timers waiting on it.
type Scheduler struct {
	now     time.Duration
	seq     uint64
	pending []*Timer
}

// New creates a scheduler with its clock at zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the current simulation time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once the clock has advanced by delay.
// A non-positive delay fires on the next Advance.
func (s *Scheduler) After(delay time.Duration, fn func()) *Timer {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	t := &Timer{due: s.now + delay, seq: s.seq, fn: fn}
	s.pending = append(s.pending, t)
	return t
}

// Pending returns the number of timers that have neither fired nor been cancelled.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.pending {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by dt and runs every timer that came due,
// earliest first and in scheduling order for equal due times. Timers created
// by a callback wait for the next Advance even if already due.
func (s *Scheduler) Advance(dt time.Duration) {
	s.now += dt

	due := make([]*Timer, 0, len(s.pending))
	keep := s.pending[:0]
	for _, t := range s.pending {
		switch {
		case t.stopped:
			// drop
		case t.due <= s.now:
			due = append(due, t)
		default:
			keep = append(keep, t)
		}
	}
	s.pending = keep

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].seq < due[j].seq
	})

	for _, t := range due {
		// A callback earlier in this batch may have cancelled it.
		if t.stopped {
			continue
		}
		t.fired = true
		if t.fn != nil {
			t.fn()
		}
	}
}

// Reset cancels every pending timer. The clock keeps running.
func (s *Scheduler) Reset() {
	for _, t := range s.pending {
		t.Cancel()
	}
	s.pending = s.pending[:0]
}
