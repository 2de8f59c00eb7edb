// Package deadline keeps every CaseDeadline and its mirrored Schedule event
// consistent, and classifies deadlines by urgency.
package deadline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JustJay7/lawdesk/internal/database"
	"github.com/JustJay7/lawdesk/internal/entity"
)

// EndOfDay is the start/end time of a mirror whose deadline has no due time.
const EndOfDay = "23:59"

const titlePrefix = "DEADLINE: "

// ErrMirrorOwned is returned when something other than the synchronizer
// tries to edit a mirror event.
var ErrMirrorOwned = errors.New("schedule event is a case deadline mirror and can only change through its deadline")

// MirrorError reports a deadline that was saved but whose Schedule mirror
// could not be written or linked. The deadline exists; Reconcile repairs the
// mirror.
type MirrorError struct {
	DeadlineID string
	Err        error
}

func (e *MirrorError) Error() string {
	return fmt.Sprintf("deadline %s saved without schedule mirror: %v", e.DeadlineID, e.Err)
}

func (e *MirrorError) Unwrap() error {
	return e.Err
}

// MirrorStatus maps a deadline status onto the schedule status of its
// mirror. Only a completed deadline completes the event.
func MirrorStatus(s database.DeadlineStatus) database.ScheduleStatus {
	switch s {
	case database.DeadlineCompleted:
		return database.ScheduleCompleted
	case database.DeadlinePending, database.DeadlineInProgress, database.DeadlineMissed:
		return database.ScheduleScheduled
	}
	return database.ScheduleScheduled
}

// MirrorFor computes the Schedule event that mirrors d.
func MirrorFor(d database.CaseDeadline) database.Schedule {
	at := d.DueTime
	if at == "" {
		at = EndOfDay
	}
	id := d.ID
	return database.Schedule{
		Title:            titlePrefix + d.Title,
		EventType:        database.EventTypeDeadline,
		Date:             d.DueDate,
		StartTime:        at,
		EndTime:          at,
		CaseNumber:       d.CaseNumber,
		AssignedAttorney: d.AssignedAttorney,
		Description:      strings.TrimSpace(fmt.Sprintf("Case deadline for %s. %s", d.CaseName, d.Notes)),
		Priority:         d.Priority,
		Status:           MirrorStatus(d.Status),
		DeadlineID:       &id,
	}
}

// mirrorFields is the full set of mirrored columns; writing it replaces
// every mirrored value on the event.
func mirrorFields(s database.Schedule) entity.Fields {
	return entity.Fields{
		"title":             s.Title,
		"event_type":        s.EventType,
		"date":              s.Date,
		"start_time":        s.StartTime,
		"end_time":          s.EndTime,
		"case_number":       s.CaseNumber,
		"assigned_attorney": s.AssignedAttorney,
		"description":       s.Description,
		"priority":          string(s.Priority),
		"status":            string(s.Status),
		"deadline_id":       *s.DeadlineID,
	}
}

// mirrorMatches reports whether got already carries every mirrored value
// of want.
func mirrorMatches(got, want database.Schedule) bool {
	return got.Title == want.Title &&
		got.EventType == want.EventType &&
		got.Date == want.Date &&
		got.StartTime == want.StartTime &&
		got.EndTime == want.EndTime &&
		got.CaseNumber == want.CaseNumber &&
		got.AssignedAttorney == want.AssignedAttorney &&
		got.Description == want.Description &&
		got.Priority == want.Priority &&
		got.Status == want.Status &&
		got.IsMirror() && *got.DeadlineID == *want.DeadlineID
}

// GuardScheduleEdit rejects direct edits of mirror events.
func GuardScheduleEdit(s database.Schedule) error {
	if s.IsMirror() {
		return ErrMirrorOwned
	}
	return nil
}

func hasMirror(d *database.CaseDeadline) bool {
	return d.ScheduleID != nil && *d.ScheduleID != ""
}
