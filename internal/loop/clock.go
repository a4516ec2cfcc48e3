package loop

import "sync/atomic"

// Clock is a monotonic logical clock.
//
// Cart mutations are stamped with a strictly increasing seq number from this
// clock at issue time. A response is applied only if its seq is still the
// highest issued for its line key, which keeps application in issue order
// regardless of network completion order.
//
// Thread-safety: safe for concurrent use (atomic operations), though the
// loop's single-writer design means only the loop goroutine normally calls
// Next().
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number and increments the clock.
// Each call returns a unique, increasing value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
