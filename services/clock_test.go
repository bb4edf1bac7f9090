package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustClock(t *testing.T) Clock {
	t.Helper()
	c, err := NewClock(DefaultBoundaryHour, DefaultTimezone)
	require.NoError(t, err)
	return c
}

func TestNewClockRejectsBadInput(t *testing.T) {
	_, err := NewClock(24, DefaultTimezone)
	assert.Error(t, err)

	_, err = NewClock(-1, DefaultTimezone)
	assert.Error(t, err)

	_, err = NewClock(9, "Not/AZone")
	assert.Error(t, err)
}

func TestLastBoundary(t *testing.T) {
	clock := mustClock(t)
	loc, err := time.LoadLocation(DefaultTimezone)
	require.NoError(t, err)

	t.Run("after today's anchor", func(t *testing.T) {
		now := time.Date(2025, 6, 10, 15, 0, 0, 0, loc)
		want := time.Date(2025, 6, 10, 9, 0, 0, 0, loc)
		assert.True(t, clock.LastBoundary(now).Equal(want))
	})

	t.Run("before today's anchor", func(t *testing.T) {
		now := time.Date(2025, 6, 10, 8, 59, 59, 0, loc)
		want := time.Date(2025, 6, 9, 9, 0, 0, 0, loc)
		assert.True(t, clock.LastBoundary(now).Equal(want))
	})

	t.Run("exactly on the anchor", func(t *testing.T) {
		now := time.Date(2025, 6, 10, 9, 0, 0, 0, loc)
		want := now
		assert.True(t, clock.LastBoundary(now).Equal(want))
	})

	t.Run("UTC input resolves through the anchor timezone", func(t *testing.T) {
		// 12:00 UTC in June is 08:00 New York, still before the anchor.
		now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
		want := time.Date(2025, 6, 9, 9, 0, 0, 0, loc)
		assert.True(t, clock.LastBoundary(now).Equal(want))
	})
}

func TestNextBoundaryFollowsLast(t *testing.T) {
	clock := mustClock(t)
	loc, _ := time.LoadLocation(DefaultTimezone)

	now := time.Date(2025, 6, 10, 15, 0, 0, 0, loc)
	last := clock.LastBoundary(now)
	next := clock.NextBoundary(now)
	assert.True(t, next.Equal(last.AddDate(0, 0, 1)))
	assert.True(t, next.After(now))
}

func TestLastBoundaryMonotonic(t *testing.T) {
	clock := mustClock(t)

	start := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)
	prev := clock.LastBoundary(start)
	// Walk across several days in 17 minute steps, through a DST change.
	for step := time.Duration(0); step < 96*time.Hour; step += 17 * time.Minute {
		boundary := clock.LastBoundary(start.Add(step))
		assert.False(t, boundary.Before(prev), "boundary moved backwards at step %v", step)
		prev = boundary
	}
}

func TestIsActiveAroundBoundary(t *testing.T) {
	clock := mustClock(t)
	loc, _ := time.LoadLocation(DefaultTimezone)

	now := time.Date(2025, 6, 10, 15, 0, 0, 0, loc)
	boundary := clock.LastBoundary(now)

	assert.True(t, clock.IsActive(boundary.Add(time.Nanosecond), now), "post created just after the boundary must be active")
	assert.False(t, clock.IsActive(boundary.Add(-time.Nanosecond), now), "post created just before the boundary must be inactive")
	assert.False(t, clock.IsActive(boundary, now), "post created exactly on the boundary has expired")
}
