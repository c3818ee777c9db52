package testutil

import (
	"sync"
	"time"
)

// FixedClock is a thread-safe deterministic clock for tests.
//
// Each call to Now returns the base time advanced by one more step than the
// previous call, so records created in sequence get distinct, ordered
// timestamps regardless of wall time.
type FixedClock struct {
	mu   sync.Mutex
	base time.Time
	step time.Duration
	n    int64
}

// NewFixedClock creates a clock starting at base, advancing by step per
// Now() call.
func NewFixedClock(base time.Time, step time.Duration) *FixedClock {
	return &FixedClock{base: base, step: step}
}

// Now returns the next deterministic timestamp.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.base.Add(time.Duration(c.n) * c.step)
	c.n++
	return t
}

// Reset rewinds the clock so the next Now() returns base again.
func (c *FixedClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n = 0
}
