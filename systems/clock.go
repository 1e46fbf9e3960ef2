package systems

import "math"

// MatchClock counts fixed ticks against the match duration.
// Time is derived from the tick count so it never drifts.
type MatchClock struct {
	tick  int
	limit int
	dt    float64
}

// NewMatchClock creates a clock that expires after limit ticks of dt seconds.
func NewMatchClock(limit int, dt float64) *MatchClock {
	return &MatchClock{limit: limit, dt: dt}
}

// Advance moves the clock forward one tick.
func (c *MatchClock) Advance() {
	c.tick++
}

// Tick returns the number of ticks elapsed.
func (c *MatchClock) Tick() int {
	return c.tick
}

// Elapsed returns simulation seconds since the match started.
func (c *MatchClock) Elapsed() float64 {
	return float64(c.tick) * c.dt
}

// Remaining returns the seconds left, never negative.
func (c *MatchClock) Remaining() float64 {
	return math.Max(0, float64(c.limit-c.tick)*c.dt)
}

// Expired reports whether the full duration has elapsed.
func (c *MatchClock) Expired() bool {
	return c.tick >= c.limit
}
