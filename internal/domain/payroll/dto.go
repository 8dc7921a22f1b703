package payroll

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PayrollRecordResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeUserID  string          `json:"employee_user_id"`
	EmployeeCode    *string         `json:"employee_code,omitempty"`
	EmployeeName    *string         `json:"employee_name,omitempty"`
	PayPeriodStart  string          `json:"pay_period_start"`
	PayPeriodEnd    string          `json:"pay_period_end"`
	GrossPay        decimal.Decimal `json:"gross_pay"`
	TaxDeductions   decimal.Decimal `json:"tax_deductions"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
	NetPay          decimal.Decimal `json:"net_pay"`
	HoursWorked     decimal.Decimal `json:"hours_worked"`
	OvertimeHours   decimal.Decimal `json:"overtime_hours"`
	Status          string          `json:"status"`
	ProcessedAt     *string         `json:"processed_at,omitempty"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}

// CreatePayrollRecordRequest creates a record by hand. Without gross_pay the
// amounts come from the calculator; with it, deductions default to zero and
// net pay is derived.
type CreatePayrollRecordRequest struct {
	EmployeeID      string           `json:"employee_id"`
	PayPeriodStart  string           `json:"pay_period_start"`
	PayPeriodEnd    string           `json:"pay_period_end"`
	HoursWorked     decimal.Decimal  `json:"hours_worked"`
	OvertimeHours   decimal.Decimal  `json:"overtime_hours"`
	GrossPay        *decimal.Decimal `json:"gross_pay,omitempty"`
	TaxDeductions   *decimal.Decimal `json:"tax_deductions,omitempty"`
	OtherDeductions *decimal.Decimal `json:"other_deductions,omitempty"`

	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

func (r *CreatePayrollRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "invalid employee_id format"})
	}
	r.Start, r.End = parsePeriod(r.PayPeriodStart, r.PayPeriodEnd, "pay_period_start", "pay_period_end", &errs)

	checkNonNegative(&errs, []amountField{
		{"hours_worked", &r.HoursWorked},
		{"overtime_hours", &r.OvertimeHours},
		{"gross_pay", r.GrossPay},
		{"tax_deductions", r.TaxDeductions},
		{"other_deductions", r.OtherDeductions},
	})

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ManualBreakdown returns the breakdown given explicitly in the request.
func (r CreatePayrollRecordRequest) ManualBreakdown() Breakdown {
	b := Breakdown{
		HoursWorked:     r.HoursWorked.Round(2),
		OvertimeHours:   r.OvertimeHours.Round(2),
		GrossPay:        r.GrossPay.Round(2),
		TaxDeductions:   decimal.Zero,
		OtherDeductions: decimal.Zero,
	}
	if r.TaxDeductions != nil {
		b.TaxDeductions = r.TaxDeductions.Round(2)
	}
	if r.OtherDeductions != nil {
		b.OtherDeductions = r.OtherDeductions.Round(2)
	}
	b.RegularHours = decimal.Max(decimal.Zero, b.HoursWorked.Sub(b.OvertimeHours))
	b.NetPay = b.GrossPay.Sub(b.TaxDeductions).Sub(b.OtherDeductions)
	return b
}

type UpdatePayrollRecordRequest struct {
	GrossPay        *decimal.Decimal `json:"gross_pay,omitempty"`
	TaxDeductions   *decimal.Decimal `json:"tax_deductions,omitempty"`
	OtherDeductions *decimal.Decimal `json:"other_deductions,omitempty"`
	HoursWorked     *decimal.Decimal `json:"hours_worked,omitempty"`
	OvertimeHours   *decimal.Decimal `json:"overtime_hours,omitempty"`
	Status          *string          `json:"status,omitempty"`
}

func (r *UpdatePayrollRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	checkNonNegative(&errs, []amountField{
		{"gross_pay", r.GrossPay},
		{"tax_deductions", r.TaxDeductions},
		{"other_deductions", r.OtherDeductions},
		{"hours_worked", r.HoursWorked},
		{"overtime_hours", r.OvertimeHours},
	})
	if r.Status != nil && !validator.IsInSlice(*r.Status, Statuses()) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of pending, approved, paid"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CalculateRequest struct {
	EmployeeID    string          `json:"employee_id"`
	HoursWorked   decimal.Decimal `json:"hours_worked"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
}

func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "invalid employee_id format"})
	}
	if r.HoursWorked.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hours_worked", Message: "hours_worked must not be negative"})
	}
	if r.OvertimeHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_hours", Message: "overtime_hours must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeBreakdown struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Breakdown
}

type ProcessPeriodRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

// Validate checks the date format only; the ordering of the two dates is
// checked by the service so it reports InvalidRange rather than a
// validation error.
func (r *ProcessPeriodRequest) Validate() error {
	var errs validator.ValidationErrors
	r.Start, r.End = parsePeriod(r.StartDate, r.EndDate, "start_date", "end_date", &errs)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProcessPeriodResponse struct {
	Message        string              `json:"message"`
	ProcessedCount int                 `json:"processed_count"`
	SkippedCount   int                 `json:"skipped_count"`
	Period         string              `json:"period"`
	Records        []EmployeeBreakdown `json:"records"`
}

type PayrollFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	UserID     *string `json:"-"`
	Status     *string `json:"status,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

func (f *PayrollFilter) Validate() error {
	var errs validator.ValidationErrors
	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "invalid employee_id format"})
	}
	if f.Status != nil && !validator.IsInSlice(*f.Status, Statuses()) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "invalid status"})
	}
	validator.NormalizePage(&f.Page, &f.Limit, &errs)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListPayrollRecordResponse struct {
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
	TotalPages int                     `json:"total_pages"`
	Records    []PayrollRecordResponse `json:"records"`
}

type SummaryRequest struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`

	From *time.Time `json:"-"`
	To   *time.Time `json:"-"`
}

func (r *SummaryRequest) Validate() error {
	var errs validator.ValidationErrors
	r.From = validator.ParseOptionalDate("start_date", r.StartDate, &errs)
	r.To = validator.ParseOptionalDate("end_date", r.EndDate, &errs)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollSummary struct {
	TotalEmployees  int             `json:"total_employees"`
	TotalGrossPay   decimal.Decimal `json:"total_gross_pay"`
	TotalNetPay     decimal.Decimal `json:"total_net_pay"`
	PendingRecords  int             `json:"pending_records"`
	ApprovedRecords int             `json:"approved_records"`
	PaidRecords     int             `json:"paid_records"`
}

func parsePeriod(start, end, startField, endField string, errs *validator.ValidationErrors) (time.Time, time.Time) {
	var s, e time.Time
	if validator.IsEmpty(start) {
		*errs = append(*errs, validator.ValidationError{Field: startField, Message: startField + " is required"})
	} else if d, ok := validator.IsValidDate(start); ok {
		s = d
	} else {
		*errs = append(*errs, validator.ValidationError{Field: startField, Message: "must be in YYYY-MM-DD format"})
	}
	if validator.IsEmpty(end) {
		*errs = append(*errs, validator.ValidationError{Field: endField, Message: endField + " is required"})
	} else if d, ok := validator.IsValidDate(end); ok {
		e = d
	} else {
		*errs = append(*errs, validator.ValidationError{Field: endField, Message: "must be in YYYY-MM-DD format"})
	}
	return s, e
}

type amountField struct {
	name  string
	value *decimal.Decimal
}

// checkNonNegative reports negative amounts in the order fields are given.
func checkNonNegative(errs *validator.ValidationErrors, fields []amountField) {
	for _, f := range fields {
		if f.value != nil && f.value.IsNegative() {
			*errs = append(*errs, validator.ValidationError{Field: f.name, Message: f.name + " must not be negative"})
		}
	}
}
