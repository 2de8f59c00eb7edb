package deadline

import (
	"time"

	"github.com/JustJay7/lawdesk/internal/database"
	"github.com/JustJay7/lawdesk/internal/dates"
)

// Urgency is a display classification; it is never stored.
type Urgency string

const (
	UrgencyCompleted Urgency = "completed"
	UrgencyOverdue   Urgency = "overdue"
	UrgencyUrgent    Urgency = "urgent"
	UrgencySoon      Urgency = "soon"
	UrgencyUpcoming  Urgency = "upcoming"
	UrgencyFuture    Urgency = "future"
)

// Classify buckets d relative to today by whole calendar days until due.
// A deadline due today or tomorrow is urgent. A due date that does not parse
// classifies as future.
func Classify(today time.Time, d database.CaseDeadline) Urgency {
	if d.Status == database.DeadlineCompleted {
		return UrgencyCompleted
	}

	due, err := dates.Parse(d.DueDate)
	if err != nil {
		return UrgencyFuture
	}

	days := dates.DaysBetween(today, due)
	switch {
	case days < 0:
		return UrgencyOverdue
	case days <= 1:
		return UrgencyUrgent
	case days <= 3:
		return UrgencySoon
	case days <= 7:
		return UrgencyUpcoming
	default:
		return UrgencyFuture
	}
}

// View is a deadline annotated for display.
type View struct {
	database.CaseDeadline
	Urgency Urgency `json:"urgency"`
}

// Annotate classifies each deadline, keeping input order.
func Annotate(today time.Time, deadlines []database.CaseDeadline) []View {
	out := make([]View, len(deadlines))
	for i, d := range deadlines {
		out[i] = View{CaseDeadline: d, Urgency: Classify(today, d)}
	}
	return out
}
