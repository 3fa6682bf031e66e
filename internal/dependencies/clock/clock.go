package clock

import "time"

// Clock provides time operations that can be mocked for testing
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time, normalized for storage
func (c *RealClock) Now() time.Time {
	return Normalize(time.Now())
}

// Normalize converts t to UTC at microsecond precision and drops the
// monotonic reading, so a timestamp read back from postgres or sqlite
// compares equal to the one written.
func Normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond).Round(0)
}
