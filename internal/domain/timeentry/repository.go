package timeentry

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ApprovedHours is the sum of approved entries of one employee in a period.
type ApprovedHours struct {
	TotalHours    decimal.Decimal
	OvertimeHours decimal.Decimal
}

type TimeEntryRepository interface {
	Create(ctx context.Context, e TimeEntry) (TimeEntry, error)
	GetByID(ctx context.Context, id string) (TimeEntry, error)
	HasActiveEntry(ctx context.Context, employeeID string, date time.Time) (bool, error)
	List(ctx context.Context, filter TimeEntryFilter) ([]TimeEntry, int64, error)
	ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]TimeEntry, error)
	// SumApproved sums approved entries with start <= date <= end.
	SumApproved(ctx context.Context, employeeID string, start, end time.Time) (ApprovedHours, error)
	Update(ctx context.Context, e TimeEntry) (TimeEntry, error)
	Delete(ctx context.Context, id string) error
}
