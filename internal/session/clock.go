package session

import "sync/atomic"

// Clock stamps executed commands with strictly increasing seq numbers.
type Clock interface {
	Next() int64
	Current() int64
}

// LogicalClock is a monotonic counter; it never reads wall time, so replaying
// the same commands produces the same seq values.
//
// Thread-safety: LogicalClock is safe for concurrent use (atomic operations).
type LogicalClock struct {
	seq atomic.Int64
}

// NewClock creates a clock whose first Next returns 1.
func NewClock() *LogicalClock {
	return &LogicalClock{}
}

// NewClockAt creates a clock positioned at start, so that the next seq is
// start+1. Used when resuming a stored session.
func NewClockAt(start int64) *LogicalClock {
	c := &LogicalClock{}
	c.seq.Store(start)
	return c
}

// Next increments the clock and returns the new seq.
func (c *LogicalClock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last seq handed out, or the start position.
func (c *LogicalClock) Current() int64 {
	return c.seq.Load()
}
