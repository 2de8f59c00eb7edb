package deadline

import (
	"github.com/JustJay7/lawdesk/internal/database"
	"github.com/JustJay7/lawdesk/internal/entity"
)

// Input is what the deadline form submits. Case linkage is supplied by the
// caller, never by the form.
type Input struct {
	Title            string                  `json:"title"`
	DeadlineType     string                  `json:"deadline_type"`
	DueDate          string                  `json:"due_date"`
	DueTime          string                  `json:"due_time"`
	AssignedAttorney string                  `json:"assigned_attorney"`
	Priority         database.Priority       `json:"priority"`
	Status           database.DeadlineStatus `json:"status"`
	Notes            string                  `json:"notes"`
	ReminderDays     *int                    `json:"reminder_days"`
}

// withDefaults fills the values a blank deadline form starts with.
func (in Input) withDefaults() Input {
	if in.DeadlineType == "" {
		in.DeadlineType = "filing"
	}
	if in.Priority == "" {
		in.Priority = database.PriorityMedium
	}
	if in.Status == "" {
		in.Status = database.DeadlinePending
	}
	if in.ReminderDays == nil {
		days := 7
		in.ReminderDays = &days
	}
	return in
}

func (in Input) apply(d *database.CaseDeadline) {
	d.Title = in.Title
	d.DeadlineType = in.DeadlineType
	d.DueDate = in.DueDate
	d.DueTime = in.DueTime
	d.AssignedAttorney = in.AssignedAttorney
	d.Priority = in.Priority
	d.Status = in.Status
	d.Notes = in.Notes
	if in.ReminderDays != nil {
		d.ReminderDays = *in.ReminderDays
	}
}

// Changes is a partial deadline edit. Nil fields keep their stored value.
type Changes struct {
	Title            *string                  `json:"title"`
	DeadlineType     *string                  `json:"deadline_type"`
	DueDate          *string                  `json:"due_date"`
	DueTime          *string                  `json:"due_time"`
	AssignedAttorney *string                  `json:"assigned_attorney"`
	Priority         *database.Priority       `json:"priority"`
	Status           *database.DeadlineStatus `json:"status"`
	Notes            *string                  `json:"notes"`
	ReminderDays     *int                     `json:"reminder_days"`
}

// Changes turns a filled-in form into an edit. Blank fields are left out,
// so a form cannot clear a value it did not show.
func (in Input) Changes() Changes {
	var ch Changes
	setString(&ch.Title, in.Title)
	setString(&ch.DeadlineType, in.DeadlineType)
	setString(&ch.DueDate, in.DueDate)
	setString(&ch.DueTime, in.DueTime)
	setString(&ch.AssignedAttorney, in.AssignedAttorney)
	setString(&ch.Notes, in.Notes)
	if in.Priority != "" {
		p := in.Priority
		ch.Priority = &p
	}
	if in.Status != "" {
		st := in.Status
		ch.Status = &st
	}
	ch.ReminderDays = in.ReminderDays
	return ch
}

func setString(dst **string, v string) {
	if v != "" {
		*dst = &v
	}
}

func (ch Changes) apply(d *database.CaseDeadline) {
	if ch.Title != nil {
		d.Title = *ch.Title
	}
	if ch.DeadlineType != nil {
		d.DeadlineType = *ch.DeadlineType
	}
	if ch.DueDate != nil {
		d.DueDate = *ch.DueDate
	}
	if ch.DueTime != nil {
		d.DueTime = *ch.DueTime
	}
	if ch.AssignedAttorney != nil {
		d.AssignedAttorney = *ch.AssignedAttorney
	}
	if ch.Priority != nil {
		d.Priority = *ch.Priority
	}
	if ch.Status != nil {
		d.Status = *ch.Status
	}
	if ch.Notes != nil {
		d.Notes = *ch.Notes
	}
	if ch.ReminderDays != nil {
		d.ReminderDays = *ch.ReminderDays
	}
}

// snapshot copies the parent's identifying fields onto the deadline.
func snapshot(d *database.CaseDeadline, c *database.Case) {
	d.CaseID = c.ID
	d.CaseNumber = c.CaseNumber
	d.CaseName = c.CaseName
}

// deadlineFields lists every column the form and snapshot own.
func deadlineFields(d database.CaseDeadline) entity.Fields {
	return entity.Fields{
		"case_id":           d.CaseID,
		"case_number":       d.CaseNumber,
		"case_name":         d.CaseName,
		"title":             d.Title,
		"deadline_type":     d.DeadlineType,
		"due_date":          d.DueDate,
		"due_time":          d.DueTime,
		"assigned_attorney": d.AssignedAttorney,
		"priority":          string(d.Priority),
		"status":            string(d.Status),
		"notes":             d.Notes,
		"reminder_days":     d.ReminderDays,
	}
}
