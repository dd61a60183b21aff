package game

import "time"

// Clock supplies the wall-clock time used for growth gating.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real time.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// SimClock only moves when advanced. Headless runs step it by one frame
// per tick so growth follows simulated time.
type SimClock struct {
	now time.Time
}

// NewSimClock creates a clock starting at start.
func NewSimClock(start time.Time) *SimClock {
	return &SimClock{now: start}
}

// Now returns the current simulated time.
func (c *SimClock) Now() time.Time { return c.now }

// Advance moves the clock forward.
func (c *SimClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
