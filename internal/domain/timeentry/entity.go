package timeentry

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusApproved  Status = "approved"
)

func Statuses() []string {
	return []string{string(StatusActive), string(StatusCompleted), string(StatusApproved)}
}

type TimeEntry struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	ClockIn       time.Time
	ClockOut      *time.Time
	BreakDuration int // minutes
	TotalHours    *decimal.Decimal
	OvertimeHours decimal.Decimal
	Notes         *string
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	EmployeeUserID string
}

// CalculateHours returns worked and overtime hours for a shift. Worked hours
// are rounded to 2 decimals; overtime is whatever exceeds dailyThreshold.
func CalculateHours(clockIn, clockOut time.Time, breakMinutes int, dailyThreshold decimal.Decimal) (total, overtime decimal.Decimal, err error) {
	if !clockOut.After(clockIn) {
		return decimal.Zero, decimal.Zero, ErrClockOutBeforeClockIn
	}

	minutes := decimal.NewFromInt(int64(clockOut.Sub(clockIn))).
		Div(decimal.NewFromInt(int64(time.Minute))).
		Sub(decimal.NewFromInt(int64(breakMinutes)))
	if minutes.IsNegative() {
		return decimal.Zero, decimal.Zero, ErrBreakExceedsShift
	}

	total = minutes.Div(decimal.NewFromInt(60)).Round(2)
	overtime = decimal.Max(decimal.Zero, total.Sub(dailyThreshold))
	return total, overtime, nil
}

// Close clocks the entry out. A nil breakMinutes keeps the stored break.
func (e *TimeEntry) Close(clockOut time.Time, breakMinutes *int, notes *string, dailyThreshold decimal.Decimal) error {
	if e.ClockOut != nil {
		return ErrAlreadyClockedOut
	}

	brk := e.BreakDuration
	if breakMinutes != nil {
		brk = *breakMinutes
	}
	total, overtime, err := CalculateHours(e.ClockIn, clockOut, brk, dailyThreshold)
	if err != nil {
		return err
	}

	e.ClockOut = &clockOut
	e.BreakDuration = brk
	e.TotalHours = &total
	e.OvertimeHours = overtime
	e.Status = StatusCompleted
	if notes != nil {
		e.Notes = notes
	}
	return nil
}

// ApplyUpdate merges req into e and recomputes hours when clock_out or
// break_duration change. Supplying clock_out on an active entry completes it.
// e is left untouched on error.
func (e *TimeEntry) ApplyUpdate(req UpdateTimeEntryRequest, dailyThreshold decimal.Decimal) error {
	next := *e

	if req.clockOut != nil {
		next.ClockOut = req.clockOut
	}
	if req.BreakDuration != nil {
		next.BreakDuration = *req.BreakDuration
	}
	if req.Notes != nil {
		next.Notes = req.Notes
	}
	if req.Status != nil {
		next.Status = Status(*req.Status)
	} else if req.clockOut != nil && next.Status == StatusActive {
		next.Status = StatusCompleted
	}

	if next.Status == StatusApproved && e.Status != StatusApproved && next.ClockOut == nil {
		return ErrEntryNotCompleted
	}
	// Status follows clock_out: only an open entry may be active.
	if (next.Status == StatusActive) != (next.ClockOut == nil) {
		return ErrStatusMismatch
	}

	if (req.clockOut != nil || req.BreakDuration != nil) && next.ClockOut != nil {
		total, overtime, err := CalculateHours(next.ClockIn, *next.ClockOut, next.BreakDuration, dailyThreshold)
		if err != nil {
			return err
		}
		next.TotalHours = &total
		next.OvertimeHours = overtime
	}

	*e = next
	return nil
}

func (e TimeEntry) ToResponse() TimeEntryResponse {
	resp := TimeEntryResponse{
		ID:             e.ID,
		EmployeeID:     e.EmployeeID,
		EmployeeUserID: e.EmployeeUserID,
		Date:           e.Date.Format("2006-01-02"),
		ClockIn:        e.ClockIn.Format(time.RFC3339),
		BreakDuration:  e.BreakDuration,
		TotalHours:     e.TotalHours,
		OvertimeHours:  e.OvertimeHours,
		Notes:          e.Notes,
		Status:         string(e.Status),
		CreatedAt:      e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      e.UpdatedAt.Format(time.RFC3339),
	}
	if e.ClockOut != nil {
		out := e.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &out
	}
	return resp
}
