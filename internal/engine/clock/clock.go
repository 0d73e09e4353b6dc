// Package clock measures frame time.
package clock

import "time"

// Clock reports the time elapsed between consecutive ticks.
type Clock struct {
	now      func() time.Time
	last     time.Time
	maxDelta time.Duration
	frames   uint64
}

// New creates a clock whose deltas never exceed maxDelta.
// A non-positive maxDelta disables clamping.
func New(maxDelta time.Duration) *Clock {
	return NewWithSource(maxDelta, time.Now)
}

// NewWithSource creates a clock reading time from now.
func NewWithSource(maxDelta time.Duration, now func() time.Time) *Clock {
	return &Clock{
		now:      now,
		last:     now(),
		maxDelta: maxDelta,
	}
}

// Tick returns seconds since the previous tick (or since creation).
func (c *Clock) Tick() float64 {
	t := c.now()
	d := t.Sub(c.last)
	c.last = t
	c.frames++

	if d < 0 {
		d = 0
	}
	if c.maxDelta > 0 && d > c.maxDelta {
		d = c.maxDelta
	}
	return d.Seconds()
}

// Frames returns how many times Tick has been called.
func (c *Clock) Frames() uint64 {
	return c.frames
}
