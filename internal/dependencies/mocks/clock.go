package mocks

import (
	"sync"
	"time"

	"github.com/mcoot/folio/internal/dependencies/clock"
)

// MockClock is a frozen clock that only moves when a test advances it.
// Session expiry and PDF creation dates read from it.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

var _ clock.Clock = (*MockClock)(nil)

// NewMockClock returns a clock frozen at start
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{now: start}
}

// Now reports the frozen time with the same precision RealClock gives, so
// values compare equal after a round trip through a SQL store.
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return clock.Normalize(c.now)
}

// Advance moves the clock forward, e.g. past a session TTL
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
