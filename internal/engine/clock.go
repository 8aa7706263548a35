package engine

import "sync/atomic"

// Clock is a monotonic logical clock stamping trace steps.
//
// Steps are ordered by a strictly increasing seq number, never by wall
// time: replaying the same run must reproduce the identical sequence.
//
// Thread-safety: safe for concurrent use, though the Solver's
// single-goroutine design means only one caller in practice.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
