package timeentry

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type TimeEntryResponse struct {
	ID             string           `json:"id"`
	EmployeeID     string           `json:"employee_id"`
	EmployeeUserID string           `json:"employee_user_id,omitempty"`
	Date           string           `json:"date"`
	ClockIn        string           `json:"clock_in"`
	ClockOut       *string          `json:"clock_out,omitempty"`
	BreakDuration  int              `json:"break_duration"`
	TotalHours     *decimal.Decimal `json:"total_hours"`
	OvertimeHours  decimal.Decimal  `json:"overtime_hours"`
	Notes          *string          `json:"notes,omitempty"`
	Status         string           `json:"status"`
	CreatedAt      string           `json:"created_at"`
	UpdatedAt      string           `json:"updated_at"`
}

// ClockInRequest opens a time entry. Date defaults to the clock-in day.
type ClockInRequest struct {
	Date          string  `json:"date"`
	ClockIn       string  `json:"clock_in"`
	BreakDuration *int    `json:"break_duration,omitempty"`
	Notes         *string `json:"notes,omitempty"`

	date    time.Time
	clockIn time.Time
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ClockIn) {
		errs = append(errs, validator.ValidationError{Field: "clock_in", Message: "clock_in is required"})
	} else if t, ok := validator.IsValidDateTime(r.ClockIn); !ok {
		errs = append(errs, validator.ValidationError{Field: "clock_in", Message: "clock_in must be an RFC3339 date-time"})
	} else {
		r.clockIn = t
	}

	if r.Date != "" {
		if d, ok := validator.IsValidDate(r.Date); ok {
			r.date = d
		} else {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
		}
	} else if !r.clockIn.IsZero() {
		r.date = time.Date(r.clockIn.Year(), r.clockIn.Month(), r.clockIn.Day(), 0, 0, 0, 0, time.UTC)
	}

	if r.BreakDuration != nil && *r.BreakDuration < 0 {
		errs = append(errs, validator.ValidationError{Field: "break_duration", Message: "break_duration must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToEntity builds the active entry for employeeID. Call after Validate.
func (r ClockInRequest) ToEntity(employeeID string) TimeEntry {
	e := TimeEntry{
		EmployeeID:    employeeID,
		Date:          r.date,
		ClockIn:       r.clockIn,
		Notes:         r.Notes,
		Status:        StatusActive,
		OvertimeHours: decimal.Zero,
	}
	if r.BreakDuration != nil {
		e.BreakDuration = *r.BreakDuration
	}
	return e
}

type ClockOutRequest struct {
	ClockOut      string  `json:"clock_out"`
	BreakDuration *int    `json:"break_duration,omitempty"`
	Notes         *string `json:"notes,omitempty"`

	clockOut time.Time
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ClockOut) {
		errs = append(errs, validator.ValidationError{Field: "clock_out", Message: "clock_out is required"})
	} else if t, ok := validator.IsValidDateTime(r.ClockOut); !ok {
		errs = append(errs, validator.ValidationError{Field: "clock_out", Message: "clock_out must be an RFC3339 date-time"})
	} else {
		r.clockOut = t
	}

	if r.BreakDuration != nil && *r.BreakDuration < 0 {
		errs = append(errs, validator.ValidationError{Field: "break_duration", Message: "break_duration must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ClockOutTime returns the parsed clock_out. Call after Validate.
func (r ClockOutRequest) ClockOutTime() time.Time {
	return r.clockOut
}

// UpdateTimeEntryRequest carries the fields an update may change. Absent
// fields are left as stored.
type UpdateTimeEntryRequest struct {
	ClockOut      *string `json:"clock_out,omitempty"`
	BreakDuration *int    `json:"break_duration,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	Status        *string `json:"status,omitempty"`

	clockOut *time.Time
}

func (r *UpdateTimeEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ClockOut != nil {
		if t, ok := validator.IsValidDateTime(*r.ClockOut); ok {
			r.clockOut = &t
		} else {
			errs = append(errs, validator.ValidationError{Field: "clock_out", Message: "clock_out must be an RFC3339 date-time"})
		}
	}
	if r.BreakDuration != nil && *r.BreakDuration < 0 {
		errs = append(errs, validator.ValidationError{Field: "break_duration", Message: "break_duration must not be negative"})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, Statuses()) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of active, completed, approved"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Approves reports whether the update sets status to approved.
func (r UpdateTimeEntryRequest) Approves() bool {
	return r.Status != nil && Status(*r.Status) == StatusApproved
}

type TimeEntryFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  string  `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    string  `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`

	From *time.Time `json:"-"`
	To   *time.Time `json:"-"`
}

func (f *TimeEntryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "invalid employee_id format"})
	}
	f.From = validator.ParseOptionalDate("start_date", f.StartDate, &errs)
	f.To = validator.ParseOptionalDate("end_date", f.EndDate, &errs)
	if f.Status != nil && !validator.IsInSlice(*f.Status, Statuses()) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "invalid status"})
	}
	validator.NormalizePage(&f.Page, &f.Limit, &errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListTimeEntryResponse struct {
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
	Entries    []TimeEntryResponse `json:"entries"`
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

type Period struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

type TimeSummary struct {
	TotalHours         decimal.Decimal `json:"total_hours"`
	TotalOvertimeHours decimal.Decimal `json:"total_overtime_hours"`
	TotalRegularHours  decimal.Decimal `json:"total_regular_hours"`
	TotalDaysWorked    int             `json:"total_days_worked"`
	AverageHoursPerDay decimal.Decimal `json:"average_hours_per_day"`
	Period             Period          `json:"period"`
}
