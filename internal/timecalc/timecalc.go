package timecalc

import (
	"fmt"
	"time"
)

// DateLayout is the layout accepted for date flags.
const DateLayout = "2006-01-02"

// DaysAgo returns t shifted back by n whole days of 24 hours.
func DaysAgo(t time.Time, n int) time.Time {
	return t.Add(-time.Duration(n) * 24 * time.Hour)
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	// Go's weekday: Sunday=0, Monday=1, …, Saturday=6
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // treat Sunday as 7 (ISO)
	}
	monday := StartOfDay(t.AddDate(0, 0, -(wd - 1)))
	sunday := EndOfDay(monday.AddDate(0, 0, 6))
	return monday, sunday
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of the same day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-1), t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ParseDate parses a YYYY-MM-DD value as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

// WithTimeOf returns day's calendar date combined with the clock time of clock.
func WithTimeOf(day, clock time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, day.Location())
}

// RelativeLabel describes t relative to now: "Today", "Yesterday", "3 days ago",
// or the date itself once it is more than a week old.
func RelativeLabel(t, now time.Time) string {
	t = t.In(now.Location())
	if SameDay(t, now) {
		return "Today"
	}
	days := int(StartOfDay(now).Sub(StartOfDay(t)).Round(time.Hour).Hours() / 24)
	switch {
	case days == 1:
		return "Yesterday"
	case days > 1 && days < 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("Mon, Jan 2 2006")
	}
}
