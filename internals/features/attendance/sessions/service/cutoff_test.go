package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chicago(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	return loc
}

func TestEndOfWeekCutoff(t *testing.T) {
	loc := chicago(t)

	// Saturday Jan 10 2026 -> Sunday Jan 11 23:59:59.
	sat := time.Date(2026, 1, 10, 9, 0, 0, 0, loc)
	got := EndOfWeekCutoff(sat, loc)
	assert.Equal(t, time.Date(2026, 1, 11, 23, 59, 59, 0, loc), got)

	// A Sunday is its own cutoff day.
	sun := time.Date(2026, 1, 11, 8, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 1, 11, 23, 59, 59, 0, loc), EndOfWeekCutoff(sun, loc))

	// Monday starts a new week.
	mon := time.Date(2026, 1, 12, 0, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 1, 18, 23, 59, 59, 0, loc), EndOfWeekCutoff(mon, loc))
}

func TestClosable(t *testing.T) {
	loc := chicago(t)
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, loc) // Saturday

	assert.True(t, Closable(time.Date(2026, 1, 10, 0, 0, 0, 0, loc), now, loc), "same day")
	assert.True(t, Closable(time.Date(2026, 1, 11, 0, 0, 0, 0, loc), now, loc), "sunday of this week")
	assert.True(t, Closable(time.Date(2026, 1, 3, 0, 0, 0, 0, loc), now, loc), "last week")
	assert.False(t, Closable(time.Date(2026, 1, 12, 0, 0, 0, 0, loc), now, loc), "next monday")
}

func TestCutoffPassed(t *testing.T) {
	loc := chicago(t)
	sessionDate := time.Date(2026, 1, 10, 0, 0, 0, 0, loc) // Saturday, cutoff Sun 11th 23:59:59

	assert.False(t, CutoffPassed(sessionDate, time.Date(2026, 1, 11, 23, 59, 59, 0, loc), loc))
	assert.True(t, CutoffPassed(sessionDate, time.Date(2026, 1, 12, 0, 0, 0, 0, loc), loc))
}

func TestCutoffRespectsTimezone(t *testing.T) {
	loc := chicago(t)
	sessionDate := time.Date(2026, 1, 10, 0, 0, 0, 0, loc)

	// Midnight Monday UTC is still Sunday evening in Chicago.
	utcMondayEarly := time.Date(2026, 1, 12, 3, 0, 0, 0, time.UTC)
	assert.False(t, CutoffPassed(sessionDate, utcMondayEarly, loc))

	utcMondayLater := time.Date(2026, 1, 12, 6, 30, 0, 0, time.UTC)
	assert.True(t, CutoffPassed(sessionDate, utcMondayLater, loc))
}
