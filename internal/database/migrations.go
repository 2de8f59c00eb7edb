package database

import (
	"fmt"

	"gorm.io/gorm"
)

// RunMigrations executes the migrations AutoMigrate cannot express.
func RunMigrations(db *gorm.DB) error {
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// createIndexes creates composite indexes for the list views.
func createIndexes(db *gorm.DB) error {
	// Deadlines of one case, newest due date first
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_case_deadlines_case_due
		ON case_deadlines(case_id, due_date)
	`).Error; err != nil {
		return err
	}

	// Calendar lookups by day
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_schedules_date_type
		ON schedules(date, event_type)
	`).Error; err != nil {
		return err
	}

	// Payroll by employee and pay date
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_payroll_records_employee_date
		ON payroll_records(employee_id, pay_date)
	`).Error; err != nil {
		return err
	}

	return nil
}
