package service

import "time"

// Clock supplies the current instant. The engine derives the instructor's
// local "today" from it, so tests can pin guardrail behaviour to a fixed
// moment instead of a live timezone service.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall-clock implementation.
func SystemClock() Clock { return systemClock{} }

// FixedClock always reports the given instant.
type FixedClock struct {
	Instant time.Time
}

// Now implements Clock.
func (c FixedClock) Now() time.Time { return c.Instant }

// localToday truncates the clock's instant to a calendar date in loc. The
// returned value is midnight UTC of that calendar date, comparable with
// parsed wire dates.
func localToday(clock Clock, loc *time.Location) time.Time {
	now := clock.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
