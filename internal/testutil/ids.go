package testutil

import (
	"fmt"
	"sync"
)

// CountingIDGenerator produces predictable ids of the form
// "<prefix>-<n>" with a per-prefix counter ("u-1", "p-1", "p-2", ...).
//
// This enables deterministic test execution and golden snapshot
// comparison: a scenario creates the same ids on every run.
//
// Thread-safety: safe for concurrent use via internal mutex.
type CountingIDGenerator struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewCountingIDGenerator creates a generator with all counters at zero.
func NewCountingIDGenerator() *CountingIDGenerator {
	return &CountingIDGenerator{counts: make(map[string]int)}
}

// NewID returns the next id for the given entity prefix.
func (g *CountingIDGenerator) NewID(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counts[prefix]++
	return fmt.Sprintf("%s-%d", prefix, g.counts[prefix])
}
