package timeentry

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type TimeEntryServiceImpl struct {
	tx             database.Transactor
	timeEntryRepo  timeentry.TimeEntryRepository
	employeeRepo   employee.EmployeeRepository
	dailyThreshold decimal.Decimal
}

func NewTimeEntryService(
	tx database.Transactor,
	timeEntryRepo timeentry.TimeEntryRepository,
	employeeRepo employee.EmployeeRepository,
	dailyOvertimeThreshold decimal.Decimal,
) timeentry.TimeEntryService {
	return &TimeEntryServiceImpl{
		tx:             tx,
		timeEntryRepo:  timeEntryRepo,
		employeeRepo:   employeeRepo,
		dailyThreshold: dailyOvertimeThreshold,
	}
}

// myEmployee resolves the employee profile of the calling principal.
func (s *TimeEntryServiceImpl) myEmployee(ctx context.Context) (employee.Employee, error) {
	p, err := auth.FromContext(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	return s.employeeRepo.GetByUserID(ctx, p.UserID)
}

// ClockIn implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) ClockIn(ctx context.Context, req timeentry.ClockInRequest) (timeentry.TimeEntryResponse, error) {
	emp, err := s.myEmployee(ctx)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	entry := req.ToEntity(emp.ID)
	var created timeentry.TimeEntry
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		active, err := s.timeEntryRepo.HasActiveEntry(txCtx, emp.ID, entry.Date)
		if err != nil {
			return fmt.Errorf("failed to check active entry: %w", err)
		}
		if active {
			return timeentry.ErrAlreadyClockedIn
		}

		created, err = s.timeEntryRepo.Create(txCtx, entry)
		return err
	})
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	slog.Info("Clocked in", "employee_id", emp.ID, "time_entry_id", created.ID)
	return created.ToResponse(), nil
}

// ClockOut implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) ClockOut(ctx context.Context, id string, req timeentry.ClockOutRequest) (timeentry.TimeEntryResponse, error) {
	emp, err := s.myEmployee(ctx)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	var updated timeentry.TimeEntry
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		entry, err := s.timeEntryRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		// someone else's entry is reported as missing
		if entry.EmployeeID != emp.ID {
			return timeentry.ErrTimeEntryNotFound
		}

		if err := entry.Close(req.ClockOutTime(), req.BreakDuration, req.Notes, s.dailyThreshold); err != nil {
			return err
		}

		updated, err = s.timeEntryRepo.Update(txCtx, entry)
		return err
	})
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	slog.Info("Clocked out", "employee_id", emp.ID, "time_entry_id", updated.ID, "total_hours", updated.TotalHours)
	return updated.ToResponse(), nil
}

// ListMyEntries implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) ListMyEntries(ctx context.Context, filter timeentry.TimeEntryFilter) (timeentry.ListTimeEntryResponse, error) {
	emp, err := s.myEmployee(ctx)
	if err != nil {
		return timeentry.ListTimeEntryResponse{}, err
	}

	filter.EmployeeID = &emp.ID
	return s.list(ctx, filter)
}

// ListEntries implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) ListEntries(ctx context.Context, filter timeentry.TimeEntryFilter) (timeentry.ListTimeEntryResponse, error) {
	p, err := auth.FromContext(ctx)
	if err != nil {
		return timeentry.ListTimeEntryResponse{}, err
	}
	if err := access.RequireAdmin(p); err != nil {
		return timeentry.ListTimeEntryResponse{}, err
	}
	return s.list(ctx, filter)
}

func (s *TimeEntryServiceImpl) list(ctx context.Context, filter timeentry.TimeEntryFilter) (timeentry.ListTimeEntryResponse, error) {
	entries, total, err := s.timeEntryRepo.List(ctx, filter)
	if err != nil {
		return timeentry.ListTimeEntryResponse{}, fmt.Errorf("failed to list time entries: %w", err)
	}

	responses := make([]timeentry.TimeEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, e.ToResponse())
	}

	return timeentry.ListTimeEntryResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Entries:    responses,
	}, nil
}

// GetEntry implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) GetEntry(ctx context.Context, id string) (timeentry.TimeEntryResponse, error) {
	p, err := auth.FromContext(ctx)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	entry, err := s.timeEntryRepo.GetByID(ctx, id)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	if err := access.CanAccessOwned(p, entry.EmployeeUserID); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	return entry.ToResponse(), nil
}

// UpdateEntry implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) UpdateEntry(ctx context.Context, id string, req timeentry.UpdateTimeEntryRequest) (timeentry.TimeEntryResponse, error) {
	p, err := auth.FromContext(ctx)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	var updated timeentry.TimeEntry
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		entry, err := s.timeEntryRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := access.CanAccessOwned(p, entry.EmployeeUserID); err != nil {
			return err
		}
		if req.Approves() {
			if err := access.CanApproveTimeEntry(p, entry.EmployeeUserID); err != nil {
				return err
			}
		}
		if entry.Status == timeentry.StatusApproved && !p.Admin() {
			return timeentry.ErrEntryLocked
		}

		if err := entry.ApplyUpdate(req, s.dailyThreshold); err != nil {
			return err
		}

		updated, err = s.timeEntryRepo.Update(txCtx, entry)
		return err
	})
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	if req.Approves() {
		slog.Info("Time entry approved", "time_entry_id", id, "approved_by", p.UserID)
	}
	return updated.ToResponse(), nil
}

// DeleteEntry implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) DeleteEntry(ctx context.Context, id string) error {
	p, err := auth.FromContext(ctx)
	if err != nil {
		return err
	}
	if err := access.RequireAdmin(p); err != nil {
		return err
	}

	if err := s.timeEntryRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Time entry deleted", "time_entry_id", id, "admin_id", p.UserID)
	return nil
}

// MySummary implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) MySummary(ctx context.Context, req timeentry.SummaryRequest) (timeentry.TimeSummary, error) {
	emp, err := s.myEmployee(ctx)
	if err != nil {
		return timeentry.TimeSummary{}, err
	}

	entries, err := s.timeEntryRepo.ListByEmployee(ctx, emp.ID, req.From, req.To)
	if err != nil {
		return timeentry.TimeSummary{}, fmt.Errorf("failed to load time entries: %w", err)
	}
	return timeentry.Summarize(entries, req), nil
}
