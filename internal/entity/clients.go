package entity

import (
	"github.com/JustJay7/lawdesk/internal/database"
	"gorm.io/gorm"
)

// Entity names, also used as cache key prefixes.
const (
	Cases      = "cases"
	Deadlines  = "case_deadlines"
	Schedules  = "schedules"
	Employees  = "employees"
	Payroll    = "payroll_records"
	Precedents = "precedents"
	SyncLogs   = "sync_logs"
)

// Clients bundles one Client per record type.
type Clients struct {
	Cases      Client[database.Case]
	Deadlines  Client[database.CaseDeadline]
	Schedules  Client[database.Schedule]
	Employees  Client[database.Employee]
	Payroll    Client[database.PayrollRecord]
	Precedents Client[database.Precedent]
	SyncLogs   Client[database.SyncLog]
}

// NewClients builds gorm-backed stores for every record type.
func NewClients(db *gorm.DB) (*Clients, error) {
	cases, err := NewStore[database.Case](db, Cases)
	if err != nil {
		return nil, err
	}
	deadlines, err := NewStore[database.CaseDeadline](db, Deadlines)
	if err != nil {
		return nil, err
	}
	schedules, err := NewStore[database.Schedule](db, Schedules)
	if err != nil {
		return nil, err
	}
	employees, err := NewStore[database.Employee](db, Employees)
	if err != nil {
		return nil, err
	}
	payroll, err := NewStore[database.PayrollRecord](db, Payroll)
	if err != nil {
		return nil, err
	}
	precedents, err := NewStore[database.Precedent](db, Precedents)
	if err != nil {
		return nil, err
	}
	syncLogs, err := NewStore[database.SyncLog](db, SyncLogs)
	if err != nil {
		return nil, err
	}

	return &Clients{
		Cases:      cases,
		Deadlines:  deadlines,
		Schedules:  schedules,
		Employees:  employees,
		Payroll:    payroll,
		Precedents: precedents,
		SyncLogs:   syncLogs,
	}, nil
}
