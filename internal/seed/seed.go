// Package seed loads YAML fixtures into the entity stores. Records that
// already exist are skipped, so a fixture file can be applied repeatedly.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/JustJay7/lawdesk/internal/database"
	"github.com/JustJay7/lawdesk/internal/deadline"
	"github.com/JustJay7/lawdesk/internal/entity"
	"github.com/JustJay7/lawdesk/internal/payroll"
	"github.com/JustJay7/lawdesk/pkg/logger"
	"gopkg.in/yaml.v3"
)

type Fixtures struct {
	Cases      []CaseFixture        `yaml:"cases"`
	Employees  []database.Employee  `yaml:"employees"`
	Precedents []database.Precedent `yaml:"precedents"`
	Events     []EventFixture       `yaml:"events"`
	Payroll    []PayrollFixture     `yaml:"payroll"`
}

type CaseFixture struct {
	database.Case `yaml:",inline"`
	Deadlines     []DeadlineFixture `yaml:"deadlines"`
}

type DeadlineFixture struct {
	Title            string `yaml:"title"`
	DeadlineType     string `yaml:"deadline_type"`
	DueDate          string `yaml:"due_date"`
	DueTime          string `yaml:"due_time"`
	AssignedAttorney string `yaml:"assigned_attorney"`
	Priority         string `yaml:"priority"`
	Status           string `yaml:"status"`
	Notes            string `yaml:"notes"`
	ReminderDays     *int   `yaml:"reminder_days"`
}

type EventFixture struct {
	Title            string `yaml:"title"`
	EventType        string `yaml:"event_type"`
	Date             string `yaml:"date"`
	StartTime        string `yaml:"start_time"`
	EndTime          string `yaml:"end_time"`
	Location         string `yaml:"location"`
	CaseNumber       string `yaml:"case_number"`
	AssignedAttorney string `yaml:"assigned_attorney"`
	Description      string `yaml:"description"`
	Priority         string `yaml:"priority"`
	Status           string `yaml:"status"`
}

type PayrollFixture struct {
	EmployeeID     string  `yaml:"employee_id"`
	PayPeriodStart string  `yaml:"pay_period_start"`
	PayPeriodEnd   string  `yaml:"pay_period_end"`
	GrossPay       float64 `yaml:"gross_pay"`
	Deductions     float64 `yaml:"deductions"`
	PayDate        string  `yaml:"pay_date"`
	PaymentMethod  string  `yaml:"payment_method"`
}

// Result counts what Apply wrote and skipped.
type Result struct {
	Created map[string]int `json:"created"`
	Skipped map[string]int `json:"skipped"`
}

func newResult() Result {
	return Result{Created: map[string]int{}, Skipped: map[string]int{}}
}

// LoadFile reads fixtures from path.
func LoadFile(path string) (*Fixtures, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixtures: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes fixtures, rejecting unknown keys.
func Parse(r io.Reader) (*Fixtures, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var fx Fixtures
	if err := dec.Decode(&fx); err != nil {
		if errors.Is(err, io.EOF) {
			return &fx, nil
		}
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return &fx, nil
}

type Seeder struct {
	clients *entity.Clients
	sync    *deadline.Synchronizer
	logger  *logger.Logger
}

func NewSeeder(clients *entity.Clients, sync *deadline.Synchronizer, log *logger.Logger) *Seeder {
	return &Seeder{clients: clients, sync: sync, logger: log}
}

// Apply writes fixtures in dependency order: employees, cases with their
// deadlines, events, payroll, precedents. Deadlines go through the
// synchronizer so each gets its Schedule mirror.
func (s *Seeder) Apply(ctx context.Context, fx *Fixtures) (Result, error) {
	res := newResult()

	for i := range fx.Employees {
		emp := fx.Employees[i]
		if emp.Status == "" {
			emp.Status = "active"
		}
		created, err := createUnique(ctx, s.clients.Employees, entity.Fields{"employee_id": emp.EmployeeID}, &emp)
		if err != nil {
			return res, fmt.Errorf("employee %s: %w", emp.EmployeeID, err)
		}
		res.count(entity.Employees, created)
	}

	for i := range fx.Cases {
		if err := s.applyCase(ctx, fx.Cases[i], &res); err != nil {
			return res, err
		}
	}

	for _, ev := range fx.Events {
		rec := ev.schedule()
		created, err := createUnique(ctx, s.clients.Schedules, entity.Fields{"title": rec.Title, "date": rec.Date}, rec)
		if err != nil {
			return res, fmt.Errorf("event %q: %w", ev.Title, err)
		}
		res.count(entity.Schedules, created)
	}

	for _, p := range fx.Payroll {
		if err := s.applyPayroll(ctx, p, &res); err != nil {
			return res, err
		}
	}

	for i := range fx.Precedents {
		p := fx.Precedents[i]
		created, err := createUnique(ctx, s.clients.Precedents, entity.Fields{"citation": p.Citation}, &p)
		if err != nil {
			return res, fmt.Errorf("precedent %s: %w", p.Citation, err)
		}
		res.count(entity.Precedents, created)
	}

	s.logger.Info("Fixtures applied", "created", res.Created, "skipped", res.Skipped)
	return res, nil
}

func (s *Seeder) applyCase(ctx context.Context, fx CaseFixture, res *Result) error {
	c := fx.Case
	if c.Status == "" {
		c.Status = database.CaseActive
	}
	if c.Priority == "" {
		c.Priority = database.PriorityMedium
	}
	if c.CaseType == "" {
		c.CaseType = "civil"
	}

	existing, err := s.clients.Cases.Filter(ctx, entity.Fields{"case_number": c.CaseNumber}, "")
	if err != nil {
		return fmt.Errorf("case %s: %w", c.CaseNumber, err)
	}
	if len(existing) > 0 {
		res.count(entity.Cases, false)
		res.Skipped[entity.Deadlines] += len(fx.Deadlines)
		return nil
	}

	created, err := s.clients.Cases.Create(ctx, &c)
	if err != nil {
		return fmt.Errorf("case %s: %w", c.CaseNumber, err)
	}
	res.count(entity.Cases, true)

	for _, d := range fx.Deadlines {
		if _, err := s.sync.Create(ctx, d.input(), created); err != nil {
			var mirrorErr *deadline.MirrorError
			if !errors.As(err, &mirrorErr) {
				return fmt.Errorf("deadline %q of %s: %w", d.Title, c.CaseNumber, err)
			}
			s.logger.Warn("Seeded deadline without mirror", "deadline_id", mirrorErr.DeadlineID, "error", err)
		}
		res.count(entity.Deadlines, true)
	}
	return nil
}

func (s *Seeder) applyPayroll(ctx context.Context, p PayrollFixture, res *Result) error {
	emps, err := s.clients.Employees.Filter(ctx, entity.Fields{"employee_id": p.EmployeeID}, "")
	if err != nil {
		return fmt.Errorf("payroll for %s: %w", p.EmployeeID, err)
	}
	if len(emps) == 0 {
		return fmt.Errorf("payroll for %s: %w", p.EmployeeID, entity.NotFoundError(entity.Employees, p.EmployeeID))
	}

	rec, err := payroll.NewRecord(payroll.Input{
		PayPeriodStart: p.PayPeriodStart,
		PayPeriodEnd:   p.PayPeriodEnd,
		GrossPay:       p.GrossPay,
		Deductions:     p.Deductions,
		PayDate:        p.PayDate,
		PaymentMethod:  p.PaymentMethod,
	}, &emps[0])
	if err != nil {
		return fmt.Errorf("payroll for %s: %w", p.EmployeeID, err)
	}

	created, err := createUnique(ctx, s.clients.Payroll, entity.Fields{"employee_id": rec.EmployeeID, "pay_date": rec.PayDate}, rec)
	if err != nil {
		return fmt.Errorf("payroll for %s: %w", p.EmployeeID, err)
	}
	res.count(entity.Payroll, created)
	return nil
}

// createUnique creates rec unless a record matching key already exists.
func createUnique[T any](ctx context.Context, client entity.Client[T], key entity.Fields, rec *T) (bool, error) {
	existing, err := client.Filter(ctx, key, "")
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	if _, err := client.Create(ctx, rec); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Result) count(name string, created bool) {
	if created {
		r.Created[name]++
	} else {
		r.Skipped[name]++
	}
}

func (d DeadlineFixture) input() deadline.Input {
	return deadline.Input{
		Title:            d.Title,
		DeadlineType:     d.DeadlineType,
		DueDate:          d.DueDate,
		DueTime:          d.DueTime,
		AssignedAttorney: d.AssignedAttorney,
		Priority:         database.Priority(d.Priority),
		Status:           database.DeadlineStatus(d.Status),
		Notes:            d.Notes,
		ReminderDays:     d.ReminderDays,
	}
}

func (e EventFixture) schedule() *database.Schedule {
	status := database.ScheduleStatus(e.Status)
	if status == "" {
		status = database.ScheduleScheduled
	}
	return &database.Schedule{
		Title:            e.Title,
		EventType:        e.EventType,
		Date:             e.Date,
		StartTime:        e.StartTime,
		EndTime:          e.EndTime,
		Location:         e.Location,
		CaseNumber:       e.CaseNumber,
		AssignedAttorney: e.AssignedAttorney,
		Description:      e.Description,
		Priority:         database.Priority(e.Priority),
		Status:           status,
	}
}
