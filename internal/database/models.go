package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the identity and bookkeeping columns every record shares.
// Column names follow the entity API field names so that filters and
// partial updates can address them directly.
type Base struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedDate time.Time `json:"created_date" gorm:"autoCreateTime;index"`
	UpdatedDate time.Time `json:"updated_date" gorm:"autoUpdateTime"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// GetID returns the record identifier.
func (b Base) GetID() string {
	return b.ID
}

type CaseStatus string

const (
	CaseActive   CaseStatus = "active"
	CasePending  CaseStatus = "pending"
	CaseClosed   CaseStatus = "closed"
	CaseOnAppeal CaseStatus = "on_appeal"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// DeadlineStatus is the lifecycle of a CaseDeadline.
type DeadlineStatus string

const (
	DeadlinePending    DeadlineStatus = "pending"
	DeadlineInProgress DeadlineStatus = "in_progress"
	DeadlineCompleted  DeadlineStatus = "completed"
	DeadlineMissed     DeadlineStatus = "missed"
)

// Valid reports whether s is one of the four deadline statuses.
func (s DeadlineStatus) Valid() bool {
	switch s {
	case DeadlinePending, DeadlineInProgress, DeadlineCompleted, DeadlineMissed:
		return true
	}
	return false
}

// ScheduleStatus is the lifecycle of a Schedule event. It has no notion of
// in-progress or missed.
type ScheduleStatus string

const (
	ScheduleScheduled ScheduleStatus = "scheduled"
	ScheduleCompleted ScheduleStatus = "completed"
)

func (s ScheduleStatus) Valid() bool {
	return s == ScheduleScheduled || s == ScheduleCompleted
}

const EventTypeDeadline = "deadline"

// Case is a matter handled by the firm.
type Case struct {
	Base
	CaseNumber       string     `json:"case_number" gorm:"uniqueIndex;not null" validate:"required" yaml:"case_number"`
	CaseName         string     `json:"case_name" gorm:"not null" validate:"required" yaml:"case_name"`
	ClientName       string     `json:"client_name" validate:"required" yaml:"client_name"`
	OpposingParty    string     `json:"opposing_party" yaml:"opposing_party"`
	AssignedAttorney string     `json:"assigned_attorney" validate:"required" yaml:"assigned_attorney"`
	Status           CaseStatus `json:"status" gorm:"index" validate:"required,oneof=active pending closed on_appeal" yaml:"status"`
	Priority         Priority   `json:"priority" validate:"required,oneof=low medium high urgent" yaml:"priority"`
	CourtLevel       string     `json:"court_level" validate:"omitempty,oneof=district federal supreme" yaml:"court_level"`
	CaseType         string     `json:"case_type" validate:"omitempty,oneof=civil criminal corporate family immigration intellectual_property labor tax other" yaml:"case_type"`
	FilingDate       string     `json:"filing_date" validate:"omitempty,datetime=2006-01-02" yaml:"filing_date"`
	CourtLocation    string     `json:"court_location" yaml:"court_location"`
	CaseValue        *float64   `json:"case_value,omitempty" yaml:"case_value"`
	Description      string     `json:"description" gorm:"type:text" yaml:"description"`
}

// CaseDeadline belongs to one Case. CaseNumber and CaseName are a snapshot
// of the parent taken when the deadline was last written with its case; they
// are not kept in step with later edits of the Case.
type CaseDeadline struct {
	Base
	CaseID           string         `json:"case_id" gorm:"index;not null" validate:"required"`
	CaseNumber       string         `json:"case_number"`
	CaseName         string         `json:"case_name"`
	Title            string         `json:"title" validate:"required"`
	DeadlineType     string         `json:"deadline_type" validate:"omitempty,oneof=filing discovery motion trial appeal response deposition mediation settlement other"`
	DueDate          string         `json:"due_date" gorm:"index" validate:"required,datetime=2006-01-02"`
	DueTime          string         `json:"due_time" validate:"omitempty,datetime=15:04"`
	AssignedAttorney string         `json:"assigned_attorney" validate:"required"`
	Priority         Priority       `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Status           DeadlineStatus `json:"status" validate:"required,oneof=pending in_progress completed missed"`
	Notes            string         `json:"notes" gorm:"type:text"`
	ReminderDays     int            `json:"reminder_days" validate:"gte=0"`

	// ScheduleID points at the mirrored Schedule row. Only the deadline
	// synchronizer writes it.
	ScheduleID *string `json:"schedule_id,omitempty" gorm:"size:36;index"`
}

// Schedule is a calendar event. Rows with a DeadlineID are mirrors owned by
// that CaseDeadline.
type Schedule struct {
	Base
	Title            string         `json:"title" validate:"required"`
	EventType        string         `json:"event_type" gorm:"index" validate:"required,oneof=court_hearing client_meeting deposition mediation deadline internal_meeting other"`
	Date             string         `json:"date" gorm:"index" validate:"required,datetime=2006-01-02"`
	StartTime        string         `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime          string         `json:"end_time" validate:"omitempty,datetime=15:04"`
	Location         string         `json:"location"`
	CaseNumber       string         `json:"case_number"`
	AssignedAttorney string         `json:"assigned_attorney"`
	Description      string         `json:"description" gorm:"type:text"`
	Priority         Priority       `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Status           ScheduleStatus `json:"status" validate:"required,oneof=scheduled completed"`
	DeadlineID       *string        `json:"deadline_id,omitempty" gorm:"size:36;uniqueIndex"`
}

// IsMirror reports whether the event is owned by a CaseDeadline.
func (s Schedule) IsMirror() bool {
	return s.DeadlineID != nil && *s.DeadlineID != ""
}

type Employee struct {
	Base
	EmployeeID     string   `json:"employee_id" gorm:"uniqueIndex;not null" validate:"required" yaml:"employee_id"`
	FullName       string   `json:"full_name" gorm:"index" validate:"required" yaml:"full_name"`
	Position       string   `json:"position" validate:"omitempty,oneof=partner senior_attorney associate paralegal legal_assistant other" yaml:"position"`
	Department     string   `json:"department" validate:"omitempty,oneof=litigation corporate family_law criminal administration" yaml:"department"`
	Email          string   `json:"email" validate:"required,email" yaml:"email"`
	Phone          string   `json:"phone" yaml:"phone"`
	HireDate       string   `json:"hire_date" validate:"required,datetime=2006-01-02" yaml:"hire_date"`
	Salary         *float64 `json:"salary,omitempty" yaml:"salary"`
	BarAdmission   string   `json:"bar_admission" yaml:"bar_admission"`
	OfficeLocation string   `json:"office_location" yaml:"office_location"`
	Status         string   `json:"status" validate:"omitempty,oneof=active on_leave terminated" yaml:"status"`
}

// PayrollRecord stores one payment. EmployeeID is the employee's code and
// EmployeeName a snapshot of their name at entry time.
type PayrollRecord struct {
	Base
	EmployeeID     string  `json:"employee_id" gorm:"index" validate:"required"`
	EmployeeName   string  `json:"employee_name"`
	PayPeriodStart string  `json:"pay_period_start" validate:"omitempty,datetime=2006-01-02"`
	PayPeriodEnd   string  `json:"pay_period_end" validate:"omitempty,datetime=2006-01-02"`
	GrossPay       float64 `json:"gross_pay" validate:"gte=0"`
	Deductions     float64 `json:"deductions" validate:"gte=0"`
	NetPay         float64 `json:"net_pay"`
	PayDate        string  `json:"pay_date" gorm:"index" validate:"required,datetime=2006-01-02"`
	PaymentMethod  string  `json:"payment_method" validate:"omitempty,oneof=direct_deposit check wire_transfer"`
}

type Precedent struct {
	Base
	CaseName       string `json:"case_name" validate:"required" yaml:"case_name"`
	Citation       string `json:"citation" validate:"required" yaml:"citation"`
	Court          string `json:"court" yaml:"court"`
	Year           int    `json:"year" gorm:"index" yaml:"year"`
	LegalPrinciple string `json:"legal_principle" gorm:"type:text" yaml:"legal_principle"`
	CaseSummary    string `json:"case_summary" gorm:"type:text" yaml:"case_summary"`
	PracticeArea   string `json:"practice_area" validate:"omitempty,oneof=civil criminal corporate constitutional other" yaml:"practice_area"`
	Keywords       string `json:"keywords" yaml:"keywords"`
	Relevance      string `json:"relevance" validate:"omitempty,oneof=highly_relevant relevant somewhat_relevant" yaml:"relevance"`
	Notes          string `json:"notes" gorm:"type:text" yaml:"notes"`
}

// SyncLog records the outcome of each step the deadline synchronizer takes,
// so partially applied writes stay visible after the request is gone.
type SyncLog struct {
	Base
	DeadlineID   string `json:"deadline_id" gorm:"index"`
	ScheduleID   string `json:"schedule_id"`
	Action       string `json:"action" validate:"required"`
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error_message"`
}

func (Case) TableName() string {
	return "cases"
}

func (CaseDeadline) TableName() string {
	return "case_deadlines"
}

func (Schedule) TableName() string {
	return "schedules"
}

func (Employee) TableName() string {
	return "employees"
}

func (PayrollRecord) TableName() string {
	return "payroll_records"
}

func (Precedent) TableName() string {
	return "precedents"
}

func (SyncLog) TableName() string {
	return "sync_logs"
}
