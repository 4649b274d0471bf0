//go:build unit

package scheduler_test

import (
	"testing"
	"time"

	"kuponbot/internal/usecase/scheduler"

	"github.com/stretchr/testify/assert"
)

var tz = time.FixedZone("Asia/Tashkent", 5*60*60)

func TestTrailing(t *testing.T) {
	now := time.Date(2026, time.March, 4, 10, 0, 0, 0, tz)
	w := scheduler.Trailing(now, 72*time.Hour, time.Hour)

	cases := []struct {
		name    string
		created time.Time
		want    bool
	}{
		{name: "exactly at threshold", created: now.Add(-72 * time.Hour), want: true},
		{name: "inside the bracket", created: now.Add(-72*time.Hour - 30*time.Minute), want: true},
		{name: "lower bound is excluded", created: now.Add(-73 * time.Hour), want: false},
		{name: "too young", created: now.Add(-71 * time.Hour), want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, w.Contains(tc.created))
		})
	}

	next := scheduler.Trailing(now.Add(time.Hour), 72*time.Hour, time.Hour)
	assert.Equal(t, w.UpTo, next.After, "consecutive runs tile without gaps")

	late := scheduler.Trailing(now.Add(time.Hour+2*time.Second), 72*time.Hour, time.Hour)
	assert.True(t, late.After.After(w.UpTo), "a late tick with a width equal to the interval opens a gap")

	wide := scheduler.Trailing(now.Add(time.Hour+2*time.Second), 72*time.Hour, 2*time.Hour)
	assert.False(t, wide.After.After(w.UpTo))
}

func TestDayWindows(t *testing.T) {
	now := time.Date(2026, time.September, 1, 9, 0, 0, 0, tz)

	day := scheduler.Day(now)
	assert.True(t, day.Contains(time.Date(2026, time.September, 1, 0, 0, 0, 0, tz)))
	assert.True(t, day.Contains(time.Date(2026, time.September, 1, 23, 59, 59, 0, tz)))
	assert.False(t, day.Contains(time.Date(2026, time.September, 2, 0, 0, 0, 0, tz)))

	ago := scheduler.MonthsAgo(now, 6)
	assert.True(t, ago.Contains(time.Date(2026, time.March, 1, 15, 30, 0, 0, tz)))
	assert.False(t, ago.Contains(time.Date(2026, time.March, 2, 0, 0, 0, 0, tz)))

	assert.Equal(t, "2026", scheduler.YearKey(now))
	assert.Equal(t, "2026-09-01", scheduler.DayKey(now))
}
