// Package clock provides the logical clock that orders engine events.
package clock

import "sync/atomic"

// Logical is a monotonic tick counter. Every admit and touch advances it by one,
// which gives a total order for reuse distances regardless of wall-clock skew
// between concurrent callers.
type Logical struct {
	ticks atomic.Uint64
}

// Now returns the current tick without advancing.
func (c *Logical) Now() uint64 { return c.ticks.Load() }

// Tick advances the clock and returns the new value.
func (c *Logical) Tick() uint64 { return c.ticks.Add(1) }

// Since returns the ticks elapsed between t and now, 0 if t is after now.
func Since(now, t uint64) uint64 {
	if now > t {
		return now - t
	}
	return 0
}
