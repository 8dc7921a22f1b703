package payroll

import "context"

type PayrollService interface {
	CreateRecord(ctx context.Context, req CreatePayrollRecordRequest) (PayrollRecordResponse, error)
	// ListRecords returns all records for admins and the principal's own otherwise.
	ListRecords(ctx context.Context, filter PayrollFilter) (ListPayrollRecordResponse, error)
	ListMyRecords(ctx context.Context, filter PayrollFilter) (ListPayrollRecordResponse, error)
	GetRecord(ctx context.Context, id string) (PayrollRecordResponse, error)
	UpdateRecord(ctx context.Context, id string, req UpdatePayrollRecordRequest) (PayrollRecordResponse, error)
	Calculate(ctx context.Context, req CalculateRequest) (EmployeeBreakdown, error)
	ProcessPeriod(ctx context.Context, req ProcessPeriodRequest) (ProcessPeriodResponse, error)
	Summary(ctx context.Context, req SummaryRequest) (PayrollSummary, error)
}
