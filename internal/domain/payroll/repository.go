package payroll

import (
	"context"
	"time"
)

type PayrollRepository interface {
	Create(ctx context.Context, r PayrollRecord) (PayrollRecord, error)
	// CreateIfAbsent inserts r unless a record for the same employee and
	// period exists. created is false when the insert was skipped.
	CreateIfAbsent(ctx context.Context, r PayrollRecord) (record PayrollRecord, created bool, err error)
	GetByID(ctx context.Context, id string) (PayrollRecord, error)
	ExistsForPeriod(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
	List(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, int64, error)
	Update(ctx context.Context, r PayrollRecord) (PayrollRecord, error)
	Summary(ctx context.Context, from, to *time.Time) (PayrollSummary, error)
}
