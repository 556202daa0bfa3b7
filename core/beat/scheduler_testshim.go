package beat

import "time"

// SetNowFunc replaces the clock's time source. Tests use it to drive a
// wall-clock Clock deterministically; pending timers keep their due times.
func (c *Clock) SetNowFunc(f func() time.Time) {
	c.manual = false
	c.now = f
}

// Advance moves a manual clock forward by d, firing callbacks at their exact
// due times so that work scheduled from inside a callback stays phase
// aligned. On a wall-clock Clock it is equivalent to Poll.
func (c *Clock) Advance(d time.Duration) int {
	if !c.manual {
		return c.Poll()
	}
	target := c.manualNow.Add(d)
	n := c.runUntil(target, func(at time.Time) { c.manualNow = at })
	c.manualNow = target
	return n
}
