package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusPaid     Status = "paid"
)

func Statuses() []string {
	return []string{string(StatusPending), string(StatusApproved), string(StatusPaid)}
}

// Breakdown is the result of one payroll calculation. All amounts are
// rounded to 2 decimals and NetPay = GrossPay - TaxDeductions - OtherDeductions.
type Breakdown struct {
	HoursWorked     decimal.Decimal `json:"hours_worked"`
	RegularHours    decimal.Decimal `json:"regular_hours"`
	OvertimeHours   decimal.Decimal `json:"overtime_hours"`
	GrossPay        decimal.Decimal `json:"gross_pay"`
	TaxDeductions   decimal.Decimal `json:"tax_deductions"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
	NetPay          decimal.Decimal `json:"net_pay"`
}

type PayrollRecord struct {
	ID              string
	EmployeeID      string
	EmployeeUserID  string
	PayPeriodStart  time.Time
	PayPeriodEnd    time.Time
	GrossPay        decimal.Decimal
	TaxDeductions   decimal.Decimal
	OtherDeductions decimal.Decimal
	NetPay          decimal.Decimal
	HoursWorked     decimal.Decimal
	OvertimeHours   decimal.Decimal
	Status          Status
	ProcessedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeCode *string
	EmployeeName *string
}

// NewRecord builds a pending record for one employee and period.
func NewRecord(employeeID, employeeUserID string, start, end time.Time, b Breakdown) PayrollRecord {
	return PayrollRecord{
		EmployeeID:      employeeID,
		EmployeeUserID:  employeeUserID,
		PayPeriodStart:  start,
		PayPeriodEnd:    end,
		GrossPay:        b.GrossPay,
		TaxDeductions:   b.TaxDeductions,
		OtherDeductions: b.OtherDeductions,
		NetPay:          b.NetPay,
		HoursWorked:     b.HoursWorked,
		OvertimeHours:   b.OvertimeHours,
		Status:          StatusPending,
	}
}

// ApplyUpdate merges req into r. processed_at is stamped with now when the
// status moves into approved or paid. Net pay follows the amounts.
func (r *PayrollRecord) ApplyUpdate(req UpdatePayrollRecordRequest, now time.Time) {
	if req.GrossPay != nil {
		r.GrossPay = req.GrossPay.Round(2)
	}
	if req.TaxDeductions != nil {
		r.TaxDeductions = req.TaxDeductions.Round(2)
	}
	if req.OtherDeductions != nil {
		r.OtherDeductions = req.OtherDeductions.Round(2)
	}
	if req.HoursWorked != nil {
		r.HoursWorked = req.HoursWorked.Round(2)
	}
	if req.OvertimeHours != nil {
		r.OvertimeHours = req.OvertimeHours.Round(2)
	}
	r.NetPay = r.GrossPay.Sub(r.TaxDeductions).Sub(r.OtherDeductions)

	if req.Status != nil {
		next := Status(*req.Status)
		if next != r.Status && (next == StatusApproved || next == StatusPaid) {
			r.ProcessedAt = &now
		}
		r.Status = next
	}
}

func (r PayrollRecord) ToResponse() PayrollRecordResponse {
	resp := PayrollRecordResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeUserID:  r.EmployeeUserID,
		EmployeeCode:    r.EmployeeCode,
		EmployeeName:    r.EmployeeName,
		PayPeriodStart:  r.PayPeriodStart.Format("2006-01-02"),
		PayPeriodEnd:    r.PayPeriodEnd.Format("2006-01-02"),
		GrossPay:        r.GrossPay,
		TaxDeductions:   r.TaxDeductions,
		OtherDeductions: r.OtherDeductions,
		NetPay:          r.NetPay,
		HoursWorked:     r.HoursWorked,
		OvertimeHours:   r.OvertimeHours,
		Status:          string(r.Status),
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       r.UpdatedAt.Format(time.RFC3339),
	}
	if r.ProcessedAt != nil {
		at := r.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &at
	}
	return resp
}
