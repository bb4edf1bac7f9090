package services

import (
	"fmt"
	"time"
)

// Default liveness anchor: posts roll over at 09:00 New York time, not
// midnight and not UTC. Discovery, per-user listings and tests all go
// through the same Clock so the window can never disagree with itself.
const (
	DefaultBoundaryHour = 9
	DefaultTimezone     = "America/New_York"
)

// Clock defines the rolling one-day content-liveness window, anchored at a
// fixed local wall-clock instant. The zero Clock is not usable; construct
// with NewClock.
type Clock struct {
	hour int
	loc  *time.Location
}

// NewClock builds a Clock anchored at the given hour in the named timezone.
func NewClock(hour int, timezone string) (Clock, error) {
	if hour < 0 || hour > 23 {
		return Clock{}, fmt.Errorf("boundary hour %d out of range", hour)
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Clock{}, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	return Clock{hour: hour, loc: loc}, nil
}

// DefaultClock returns the production clock. It panics only if the timezone
// database is missing, which is a deployment error.
func DefaultClock() Clock {
	c, err := NewClock(DefaultBoundaryHour, DefaultTimezone)
	if err != nil {
		panic(err)
	}
	return c
}

// LastBoundary returns today's anchor instant if now is at or after it,
// otherwise yesterday's.
func (c Clock) LastBoundary(now time.Time) time.Time {
	local := now.In(c.loc)
	anchor := time.Date(local.Year(), local.Month(), local.Day(), c.hour, 0, 0, 0, c.loc)
	if local.Before(anchor) {
		anchor = anchor.AddDate(0, 0, -1)
	}
	return anchor
}

// NextBoundary returns the anchor instant following LastBoundary(now).
func (c Clock) NextBoundary(now time.Time) time.Time {
	return c.LastBoundary(now).AddDate(0, 0, 1)
}

// IsActive reports whether a post created at createdAt is still discoverable
// at now. Strictly after the boundary: a post created on the boundary
// instant itself has expired.
func (c Clock) IsActive(createdAt, now time.Time) bool {
	return createdAt.After(c.LastBoundary(now))
}
