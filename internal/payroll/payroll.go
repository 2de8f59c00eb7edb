// Package payroll builds payroll records from form input.
package payroll

import (
	"math"

	"github.com/JustJay7/lawdesk/internal/database"
	"github.com/JustJay7/lawdesk/internal/entity"
)

// Input is what the payroll form submits.
type Input struct {
	EmployeeID     string  `json:"employee_id"`
	PayPeriodStart string  `json:"pay_period_start"`
	PayPeriodEnd   string  `json:"pay_period_end"`
	GrossPay       float64 `json:"gross_pay"`
	Deductions     float64 `json:"deductions"`
	PayDate        string  `json:"pay_date"`
	PaymentMethod  string  `json:"payment_method"`
}

// NewRecord builds a record for emp. The employee code and name are copied
// from emp, and net pay is gross pay less deductions.
func NewRecord(in Input, emp *database.Employee) (*database.PayrollRecord, error) {
	if emp == nil {
		return nil, entity.ValidationError(entity.Payroll, "employee is required", nil)
	}
	if in.GrossPay < 0 || in.Deductions < 0 {
		return nil, entity.ValidationError(entity.Payroll, "gross_pay and deductions must not be negative", nil)
	}

	method := in.PaymentMethod
	if method == "" {
		method = "direct_deposit"
	}

	return &database.PayrollRecord{
		EmployeeID:     emp.EmployeeID,
		EmployeeName:   emp.FullName,
		PayPeriodStart: in.PayPeriodStart,
		PayPeriodEnd:   in.PayPeriodEnd,
		GrossPay:       RoundCents(in.GrossPay),
		Deductions:     RoundCents(in.Deductions),
		NetPay:         RoundCents(in.GrossPay - in.Deductions),
		PayDate:        in.PayDate,
		PaymentMethod:  method,
	}, nil
}

// RoundCents rounds an amount to two decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
