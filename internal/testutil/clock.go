// Package testutil provides deterministic clock and id helpers for
// reproducible tests and golden snapshots.
package testutil

import "sync"

// DeterministicClock returns strictly increasing epoch-millisecond
// timestamps with a fixed step. Running the same scenario twice stamps
// entities with identical createdAt/timestamp values.
//
// Thread-safety: all methods are safe for concurrent use via internal
// mutex.
type DeterministicClock struct {
	mu   sync.Mutex
	now  int64
	step int64
}

// NewDeterministicClock creates a clock starting at start millis and
// advancing by step millis per reading.
func NewDeterministicClock(start, step int64) *DeterministicClock {
	return &DeterministicClock{now: start, step: step}
}

// NowMillis returns the current timestamp and advances the clock.
func (c *DeterministicClock) NowMillis() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now += c.step
	return t
}

// Reset rewinds the clock to a new start, for test reuse.
func (c *DeterministicClock) Reset(start int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = start
}
