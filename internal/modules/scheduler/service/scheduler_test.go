package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func mustLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestParseClock(t *testing.T) {
	hour, minute, err := ParseClock("16:05")
	require.NoError(t, err)
	require.Equal(t, 16, hour)
	require.Equal(t, 5, minute)

	for _, bad := range []string{"", "16", "16:", "25:00", "16:60", "aa:bb"} {
		_, _, err := ParseClock(bad)
		require.Error(t, err, "clock %q", bad)
	}
}

func TestNextRunSameDay(t *testing.T) {
	ny := mustLoc(t, "America/New_York")

	// среда 10:00 -> среда 16:05
	now := time.Date(2024, time.March, 6, 10, 0, 0, 0, ny)
	next := NextRun(now, 16, 5, ny)
	require.Equal(t, time.Date(2024, time.March, 6, 16, 5, 0, 0, ny), next)
}

func TestNextRunAfterTriggerTime(t *testing.T) {
	ny := mustLoc(t, "America/New_York")

	// среда 16:05 ровно -> четверг, текущая минута уже не считается
	now := time.Date(2024, time.March, 6, 16, 5, 0, 0, ny)
	next := NextRun(now, 16, 5, ny)
	require.Equal(t, time.Date(2024, time.March, 7, 16, 5, 0, 0, ny), next)
}

func TestNextRunSkipsWeekend(t *testing.T) {
	ny := mustLoc(t, "America/New_York")

	// пятница вечером -> понедельник
	now := time.Date(2024, time.March, 8, 17, 0, 0, 0, ny)
	next := NextRun(now, 16, 5, ny)
	require.Equal(t, time.Date(2024, time.March, 11, 16, 5, 0, 0, ny), next)
	require.Equal(t, time.Monday, next.Weekday())

	// суббота в любое время -> понедельник
	now = time.Date(2024, time.March, 9, 9, 0, 0, 0, ny)
	require.Equal(t, time.Date(2024, time.March, 11, 16, 5, 0, 0, ny), NextRun(now, 16, 5, ny))
}

func TestNextRunConvertsCallerZone(t *testing.T) {
	ny := mustLoc(t, "America/New_York")

	// 21:00 UTC в марте (EST->EDT уже переключились: UTC-4) = 17:00 в Нью-Йорке,
	// дневное окно 16:05 прошло -> следующий будний день
	now := time.Date(2024, time.March, 13, 21, 0, 0, 0, time.UTC)
	next := NextRun(now, 16, 5, ny)
	require.Equal(t, time.Date(2024, time.March, 14, 16, 5, 0, 0, ny), next)
}
