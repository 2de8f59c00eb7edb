// Package dashboard computes the summary figures shown on the landing page.
package dashboard

import (
	"time"

	"github.com/JustJay7/lawdesk/internal/database"
	"github.com/JustJay7/lawdesk/internal/dates"
	"github.com/JustJay7/lawdesk/internal/payroll"
)

// DefaultUpcomingLimit is how many upcoming events the dashboard lists.
const DefaultUpcomingLimit = 5

type Stats struct {
	ActiveCases    int     `json:"active_cases"`
	UrgentCases    int     `json:"urgent_cases"`
	TotalCaseValue float64 `json:"total_case_value"`
	TotalEmployees int     `json:"total_employees"`
	EventsThisWeek int     `json:"events_this_week"`
}

// CaseStats counts active and urgent cases, sums case values and counts
// events dated in the seven days starting today. An urgent case is one with
// urgent priority that is not closed.
func CaseStats(cases []database.Case, employees []database.Employee, events []database.Schedule, today time.Time) Stats {
	s := Stats{TotalEmployees: len(employees)}

	for _, c := range cases {
		if c.Status == database.CaseActive {
			s.ActiveCases++
		}
		if c.Priority == database.PriorityUrgent && c.Status != database.CaseClosed {
			s.UrgentCases++
		}
		if c.CaseValue != nil {
			s.TotalCaseValue += *c.CaseValue
		}
	}
	s.TotalCaseValue = payroll.RoundCents(s.TotalCaseValue)

	for _, ev := range events {
		d, err := dates.Parse(ev.Date)
		if err != nil {
			continue
		}
		if n := dates.DaysBetween(today, d); n >= 0 && n < 7 {
			s.EventsThisWeek++
		}
	}
	return s
}

// Upcoming returns up to limit events dated today or later, in input order.
func Upcoming(events []database.Schedule, today time.Time, limit int) []database.Schedule {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}

	out := make([]database.Schedule, 0, limit)
	for _, ev := range events {
		if len(out) == limit {
			break
		}
		d, err := dates.Parse(ev.Date)
		if err != nil {
			continue
		}
		if dates.DaysBetween(today, d) >= 0 {
			out = append(out, ev)
		}
	}
	return out
}

type PayrollStats struct {
	TotalPaid     float64 `json:"total_paid"`
	Payments      int     `json:"payments"`
	EmployeesPaid int     `json:"employees_paid"`
}

// PayrollWindow summarises records paid after the same day one month
// before now.
func PayrollWindow(records []database.PayrollRecord, now time.Time) PayrollStats {
	cutoff := dates.Day(now.AddDate(0, -1, 0))

	var s PayrollStats
	paid := make(map[string]struct{})
	for _, r := range records {
		d, err := dates.Parse(r.PayDate)
		if err != nil || !d.After(cutoff) {
			continue
		}
		s.TotalPaid += r.NetPay
		s.Payments++
		paid[r.EmployeeID] = struct{}{}
	}
	s.TotalPaid = payroll.RoundCents(s.TotalPaid)
	s.EmployeesPaid = len(paid)
	return s
}

type MonthSummary struct {
	Month    string  `json:"month"`
	Total    float64 `json:"total"`
	Average  float64 `json:"average"`
	Payments int     `json:"payments"`
}

// PayrollMonth totals the records paid in the calendar month of now.
func PayrollMonth(records []database.PayrollRecord, now time.Time) MonthSummary {
	year, month, _ := now.Date()
	s := MonthSummary{Month: now.Format("2006-01")}

	for _, r := range records {
		d, err := dates.Parse(r.PayDate)
		if err != nil {
			continue
		}
		if y, m, _ := d.Date(); y == year && m == month {
			s.Total += r.NetPay
			s.Payments++
		}
	}

	s.Total = payroll.RoundCents(s.Total)
	if s.Payments > 0 {
		s.Average = payroll.RoundCents(s.Total / float64(s.Payments))
	}
	return s
}
