// Package dates works with calendar days stored as "YYYY-MM-DD" strings.
package dates

import (
	"fmt"
	"time"
)

// Layout is the storage format of every date field.
const Layout = "2006-01-02"

// Parse reads a stored date. Full RFC 3339 timestamps are accepted and
// reduced to their calendar day.
func Parse(s string) (time.Time, error) {
	if t, err := time.Parse(Layout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return Day(t), nil
}

// Day drops the time of day and location, keeping the wall-clock calendar
// day of t.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Format renders the calendar day of t in storage format.
func Format(t time.Time) string {
	return Day(t).Format(Layout)
}

// DaysBetween returns the whole number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}
