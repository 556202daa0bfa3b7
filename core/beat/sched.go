package beat

import (
	"time"
)

// Handle identifies a repeating registration. The zero Handle is never
// issued and cancelling it is a no-op.
type Handle uint64

// Scheduler is the host timer abstraction engines depend on.
type Scheduler interface {
	// Every registers fn to run once per interval, starting one interval
	// from now. Non-positive intervals are rejected with the zero Handle.
	Every(interval time.Duration, fn func()) Handle
	// Cancel removes a registration. Unknown handles are ignored.
	Cancel(h Handle)
}

type timer struct {
	id       Handle
	due      time.Time
	interval time.Duration
	fn       func()
}

// Clock is a single-threaded Scheduler. Nothing fires until Poll (or
// Advance) is called, so all callbacks run on the caller's goroutine.
// A Clock must not be shared between goroutines; use Loop for that.
type Clock struct {
	now    func() time.Time
	timers map[Handle]*timer
	last   Handle

	manual    bool
	manualNow time.Time
}

// NewClock returns a Clock driven by the wall clock.
func NewClock() *Clock {
	return &Clock{
		now:    time.Now,
		timers: map[Handle]*timer{},
	}
}

// NewManualClock returns a Clock whose time only moves through Advance.
func NewManualClock(start time.Time) *Clock {
	c := &Clock{timers: map[Handle]*timer{}, manual: true, manualNow: start}
	c.now = func() time.Time { return c.manualNow }
	return c
}

func (c *Clock) Now() time.Time { return c.now() }

func (c *Clock) Every(interval time.Duration, fn func()) Handle {
	if interval <= 0 || fn == nil {
		return 0
	}
	c.last++
	c.timers[c.last] = &timer{
		id:       c.last,
		due:      c.now().Add(interval),
		interval: interval,
		fn:       fn,
	}
	return c.last
}

func (c *Clock) Cancel(h Handle) {
	delete(c.timers, h)
}

// Pending returns the number of live registrations.
func (c *Clock) Pending() int { return len(c.timers) }

// Poll fires every callback that is due at the current time and returns how
// many fired. Each repeat is anchored to its previous due time, never to the
// poll time, so polling jitter does not accumulate. A timer that has fallen
// more than one interval behind (the host stalled or slept) fires once and
// skips ahead to its next boundary after now instead of replaying every
// missed period.
func (c *Clock) Poll() int {
	return c.runUntil(c.now(), nil)
}

// runUntil fires due timers up to target, earliest first and in
// registration order on ties. step, when set, is told each due time before
// the callback runs and every missed period is replayed; without it stalled
// timers are coalesced.
func (c *Clock) runUntil(target time.Time, step func(time.Time)) int {
	fired := 0
	for {
		t := c.nextDue(target)
		if t == nil {
			return fired
		}
		if step != nil {
			step(t.due)
		}
		if behind := target.Sub(t.due); step == nil && behind > t.interval {
			t.due = t.due.Add(t.interval * (behind/t.interval + 1))
		} else {
			t.due = t.due.Add(t.interval)
		}
		t.fn()
		fired++
	}
}

func (c *Clock) nextDue(target time.Time) *timer {
	var best *timer
	for _, t := range c.timers {
		if t.due.After(target) {
			continue
		}
		if best == nil || t.due.Before(best.due) || (t.due.Equal(best.due) && t.id < best.id) {
			best = t
		}
	}
	return best
}
