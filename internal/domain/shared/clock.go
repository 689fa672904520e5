package shared

import "time"

// Clock is the time source for status derivation and the billing sweeps.
// Injecting it keeps "today" controllable in tests.
type Clock interface {
	Now() time.Time
	// Today returns the current date truncated to midnight in local time.
	Today() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

// Now returns the current time
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Today returns the current date at midnight
func (SystemClock) Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// FixedClock always reports the same instant
type FixedClock struct {
	Instant time.Time
}

// Now returns the fixed instant
func (c FixedClock) Now() time.Time {
	return c.Instant
}

// Today returns the fixed instant's date at midnight
func (c FixedClock) Today() time.Time {
	t := c.Instant
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
