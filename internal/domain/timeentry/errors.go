package timeentry

import "github.com/cmlabs-hris/payroll-backend-go/internal/pkg/apperror"

var (
	ErrTimeEntryNotFound     = apperror.New(apperror.ErrNotFound, "time entry not found")
	ErrAlreadyClockedIn      = apperror.New(apperror.ErrConflict, "already clocked in for today, please clock out first")
	ErrAlreadyClockedOut     = apperror.New(apperror.ErrConflict, "already clocked out")
	ErrEntryNotCompleted     = apperror.New(apperror.ErrConflict, "time entry must be clocked out before approval")
	ErrClockOutBeforeClockIn = apperror.New(apperror.ErrInvalidRange, "clock out time must be after clock in time")
	ErrBreakExceedsShift     = apperror.New(apperror.ErrInvalidRange, "break duration exceeds the worked time")
	ErrEntryLocked           = apperror.New(apperror.ErrForbidden, "approved time entries can only be changed by an admin")
	ErrStatusMismatch        = apperror.New(apperror.ErrConflict, "only an entry without clock out can be active")
)
