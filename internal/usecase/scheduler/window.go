package scheduler

import (
	"strconv"
	"time"

	"kuponbot/internal/pkg/clock"
)

// Window is the half-open bracket (After, UpTo].
type Window struct {
	After time.Time
	UpTo  time.Time
}

func (w Window) Contains(t time.Time) bool {
	return t.After(w.After) && !t.After(w.UpTo)
}

// Trailing brackets records that crossed age threshold during the last
// width of time. Runs spaced by at most width leave no instant uncovered.
func Trailing(now time.Time, threshold, width time.Duration) Window {
	upTo := now.Add(-threshold)
	return Window{After: upTo.Add(-width), UpTo: upTo}
}

// Day brackets the calendar day containing t in t's location.
func Day(t time.Time) Window {
	start := clock.StartOfDay(t)
	return Window{After: start.Add(-time.Microsecond), UpTo: start.AddDate(0, 0, 1).Add(-time.Microsecond)}
}

// MonthsAgo brackets the calendar day n months before t.
func MonthsAgo(t time.Time, n int) Window {
	return Day(clock.StartOfDay(t).AddDate(0, -n, 0))
}

func YearKey(t time.Time) string {
	return strconv.Itoa(t.Year())
}

func DayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}
