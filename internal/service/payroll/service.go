package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
)

type PayrollServiceImpl struct {
	tx            database.Transactor
	payrollRepo   payroll.PayrollRepository
	employeeRepo  employee.EmployeeRepository
	timeEntryRepo timeentry.TimeEntryRepository
	calculator    *Calculator
	now           func() time.Time
}

func NewPayrollService(
	tx database.Transactor,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	timeEntryRepo timeentry.TimeEntryRepository,
	calculator *Calculator,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		tx:            tx,
		payrollRepo:   payrollRepo,
		employeeRepo:  employeeRepo,
		timeEntryRepo: timeEntryRepo,
		calculator:    calculator,
		now:           time.Now,
	}
}

func principalAdmin(ctx context.Context) (auth.Principal, error) {
	p, err := auth.FromContext(ctx)
	if err != nil {
		return auth.Principal{}, err
	}
	return p, access.RequireAdmin(p)
}

func (s *PayrollServiceImpl) getEmployee(ctx context.Context, id string) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		return employee.Employee{}, payroll.ErrEmployeeNotFound
	}
	return emp, err
}

// CreateRecord implements payroll.PayrollService.
func (s *PayrollServiceImpl) CreateRecord(ctx context.Context, req payroll.CreatePayrollRecordRequest) (payroll.PayrollRecordResponse, error) {
	if _, err := principalAdmin(ctx); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if !req.Start.Before(req.End) {
		return payroll.PayrollRecordResponse{}, payroll.ErrInvalidPeriod
	}

	var created payroll.PayrollRecord
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		emp, err := s.getEmployee(txCtx, req.EmployeeID)
		if err != nil {
			return err
		}

		exists, err := s.payrollRepo.ExistsForPeriod(txCtx, emp.ID, req.Start, req.End)
		if err != nil {
			return fmt.Errorf("failed to check existing record: %w", err)
		}
		if exists {
			return payroll.ErrRecordExists
		}

		var breakdown payroll.Breakdown
		if req.GrossPay != nil {
			breakdown = req.ManualBreakdown()
		} else {
			breakdown = s.calculator.Calculate(emp.Compensation(), req.HoursWorked, req.OvertimeHours)
		}

		created, err = s.payrollRepo.Create(txCtx, payroll.NewRecord(emp.ID, emp.UserID, req.Start, req.End, breakdown))
		return err
	})
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	slog.Info("Payroll record created", "payroll_record_id", created.ID, "employee_id", created.EmployeeID)
	return created.ToResponse(), nil
}

// ListRecords implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListRecords(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
	p, err := auth.FromContext(ctx)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}
	if !p.Admin() {
		filter.EmployeeID = nil
		filter.UserID = &p.UserID
	}
	return s.list(ctx, filter)
}

// ListMyRecords implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListMyRecords(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
	p, err := auth.FromContext(ctx)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}
	filter.EmployeeID = nil
	filter.UserID = &p.UserID
	return s.list(ctx, filter)
}

func (s *PayrollServiceImpl) list(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
	records, total, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, fmt.Errorf("failed to list payroll records: %w", err)
	}

	responses := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, r.ToResponse())
	}

	return payroll.ListPayrollRecordResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Records:    responses,
	}, nil
}

// GetRecord implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetRecord(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	p, err := auth.FromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if err := access.CanAccessOwned(p, record.EmployeeUserID); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return record.ToResponse(), nil
}

// UpdateRecord implements payroll.PayrollService.
func (s *PayrollServiceImpl) UpdateRecord(ctx context.Context, id string, req payroll.UpdatePayrollRecordRequest) (payroll.PayrollRecordResponse, error) {
	p, err := principalAdmin(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	var updated payroll.PayrollRecord
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		record, err := s.payrollRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		record.ApplyUpdate(req, s.now())
		updated, err = s.payrollRepo.Update(txCtx, record)
		return err
	})
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	if req.Status != nil {
		slog.Info("Payroll record status changed", "payroll_record_id", id, "status", updated.Status, "admin_id", p.UserID)
	}
	return updated.ToResponse(), nil
}

// Calculate implements payroll.PayrollService.
func (s *PayrollServiceImpl) Calculate(ctx context.Context, req payroll.CalculateRequest) (payroll.EmployeeBreakdown, error) {
	if _, err := principalAdmin(ctx); err != nil {
		return payroll.EmployeeBreakdown{}, err
	}

	emp, err := s.getEmployee(ctx, req.EmployeeID)
	if err != nil {
		return payroll.EmployeeBreakdown{}, err
	}

	return payroll.EmployeeBreakdown{
		EmployeeID:   emp.ID,
		EmployeeName: employeeName(emp),
		Breakdown:    s.calculator.Calculate(emp.Compensation(), req.HoursWorked, req.OvertimeHours),
	}, nil
}

// ProcessPeriod implements payroll.PayrollService. It creates one pending
// record per active employee from the approved hours in [start, end].
// Employees that already have a record for the period are skipped.
func (s *PayrollServiceImpl) ProcessPeriod(ctx context.Context, req payroll.ProcessPeriodRequest) (payroll.ProcessPeriodResponse, error) {
	p, err := principalAdmin(ctx)
	if err != nil {
		return payroll.ProcessPeriodResponse{}, err
	}
	if !req.Start.Before(req.End) {
		return payroll.ProcessPeriodResponse{}, payroll.ErrInvalidPeriod
	}

	resp := payroll.ProcessPeriodResponse{
		Period:  fmt.Sprintf("%s to %s", req.Start.Format("2006-01-02"), req.End.Format("2006-01-02")),
		Records: []payroll.EmployeeBreakdown{},
	}

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		employees, err := s.employeeRepo.ListActive(txCtx)
		if err != nil {
			return fmt.Errorf("failed to list active employees: %w", err)
		}

		for _, emp := range employees {
			exists, err := s.payrollRepo.ExistsForPeriod(txCtx, emp.ID, req.Start, req.End)
			if err != nil {
				return fmt.Errorf("failed to check existing record for employee %s: %w", emp.ID, err)
			}
			if exists {
				resp.SkippedCount++
				continue
			}

			hours, err := s.timeEntryRepo.SumApproved(txCtx, emp.ID, req.Start, req.End)
			if err != nil {
				return fmt.Errorf("failed to sum approved hours for employee %s: %w", emp.ID, err)
			}

			breakdown := s.calculator.Calculate(emp.Compensation(), hours.TotalHours, hours.OvertimeHours)
			record := payroll.NewRecord(emp.ID, emp.UserID, req.Start, req.End, breakdown)
			if _, created, err := s.payrollRepo.CreateIfAbsent(txCtx, record); err != nil {
				return fmt.Errorf("failed to create payroll record for employee %s: %w", emp.ID, err)
			} else if !created {
				resp.SkippedCount++
				continue
			}

			resp.Records = append(resp.Records, payroll.EmployeeBreakdown{
				EmployeeID:   emp.ID,
				EmployeeName: employeeName(emp),
				Breakdown:    breakdown,
			})
		}
		return nil
	})
	if err != nil {
		slog.Error("Payroll processing failed", "period", resp.Period, "error", err)
		return payroll.ProcessPeriodResponse{}, err
	}

	resp.ProcessedCount = len(resp.Records)
	resp.Message = fmt.Sprintf("Processed payroll for %d employees", resp.ProcessedCount)
	slog.Info("Payroll processed", "period", resp.Period, "processed", resp.ProcessedCount, "skipped", resp.SkippedCount, "admin_id", p.UserID)
	return resp, nil
}

// Summary implements payroll.PayrollService.
func (s *PayrollServiceImpl) Summary(ctx context.Context, req payroll.SummaryRequest) (payroll.PayrollSummary, error) {
	if _, err := principalAdmin(ctx); err != nil {
		return payroll.PayrollSummary{}, err
	}

	summary, err := s.payrollRepo.Summary(ctx, req.From, req.To)
	if err != nil {
		return payroll.PayrollSummary{}, fmt.Errorf("failed to summarize payroll: %w", err)
	}
	return summary, nil
}

func employeeName(emp employee.Employee) string {
	if emp.FullName != nil {
		return *emp.FullName
	}
	return emp.EmployeeCode
}
