// Package calendar lays Schedule events out on a Sunday-first month grid.
package calendar

import (
	"fmt"
	"time"

	"github.com/JustJay7/lawdesk/internal/database"
	"github.com/JustJay7/lawdesk/internal/dates"
)

const monthLayout = "2006-01"

type Day struct {
	Date    string              `json:"date"`
	InMonth bool                `json:"in_month"`
	IsToday bool                `json:"is_today"`
	Events  []database.Schedule `json:"events"`
}

type Week [7]Day

// Month is the grid for one calendar month, padded to whole weeks.
type Month struct {
	Month string `json:"month"`
	Prev  string `json:"prev"`
	Next  string `json:"next"`
	Weeks []Week `json:"weeks"`
}

// MonthGrid builds the grid for the month containing anchor. Weeks run
// Sunday to Saturday, from the week holding the 1st to the week holding the
// last day. Each day lists the events dated on it in input order; events
// with an unreadable date are left out.
func MonthGrid(anchor time.Time, events []database.Schedule, today time.Time) Month {
	first := firstOfMonth(anchor)
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, 6-int(last.Weekday()))

	byDay := make(map[string][]database.Schedule)
	for _, ev := range events {
		d, err := dates.Parse(ev.Date)
		if err != nil {
			continue
		}
		key := dates.Format(d)
		byDay[key] = append(byDay[key], ev)
	}

	todayKey := dates.Format(today)
	m := Month{
		Month: first.Format(monthLayout),
		Prev:  Prev(first).Format(monthLayout),
		Next:  Next(first).Format(monthLayout),
	}

	var week Week
	for day, i := start, 0; !day.After(end); day, i = day.AddDate(0, 0, 1), i+1 {
		key := dates.Format(day)
		evs := byDay[key]
		if evs == nil {
			evs = []database.Schedule{}
		}
		week[i%7] = Day{
			Date:    key,
			InMonth: day.Month() == first.Month(),
			IsToday: key == todayKey,
			Events:  evs,
		}
		if i%7 == 6 {
			m.Weeks = append(m.Weeks, week)
			week = Week{}
		}
	}
	return m
}

// Next returns the first day of the month after t.
func Next(t time.Time) time.Time {
	return firstOfMonth(t).AddDate(0, 1, 0)
}

// Prev returns the first day of the month before t.
func Prev(t time.Time) time.Time {
	return firstOfMonth(t).AddDate(0, -1, 0)
}

// ParseMonth reads "YYYY-MM". An empty string yields the month of fallback.
func ParseMonth(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return firstOfMonth(fallback), nil
	}
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM", s)
	}
	return t, nil
}

func firstOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}
