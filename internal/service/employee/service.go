package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

// GetMyProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetMyProfile(ctx context.Context) (employee.EmployeeResponse, error) {
	p, err := auth.FromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByUserID(ctx, p.UserID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return emp.ToResponse(), nil
}

// CreateMyProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateMyProfile(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	p, err := auth.FromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	_, err = s.employeeRepo.GetByUserID(ctx, p.UserID)
	switch {
	case err == nil:
		return employee.EmployeeResponse{}, employee.ErrProfileAlreadyExists
	case !errors.Is(err, employee.ErrEmployeeNotFound):
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check existing profile: %w", err)
	}

	return s.create(ctx, req.ToEntity(p.UserID))
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	p, err := auth.FromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := access.CanAccessOwned(p, emp.UserID); err != nil {
		return employee.EmployeeResponse{}, err
	}
	return emp.ToResponse(), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, emp.ToResponse())
	}

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Employees:  responses,
	}, nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if req.UserID == "" {
		return employee.EmployeeResponse{}, validator.ValidationErrors{
			{Field: "user_id", Message: "user_id is required"},
		}
	}

	return s.create(ctx, req.ToEntity(req.UserID))
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp.ApplyUpdate(req)
	updated, err := s.employeeRepo.Update(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return updated.ToResponse(), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Employee deleted", "employee_id", id)
	return nil
}

func (s *EmployeeServiceImpl) create(ctx context.Context, emp employee.Employee) (employee.EmployeeResponse, error) {
	created, err := s.employeeRepo.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee profile created", "employee_id", created.ID, "user_id", created.UserID)
	return created.ToResponse(), nil
}

func requireAdmin(ctx context.Context) error {
	p, err := auth.FromContext(ctx)
	if err != nil {
		return err
	}
	return access.RequireAdmin(p)
}
