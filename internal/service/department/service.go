package department

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/department"
)

type DepartmentServiceImpl struct {
	departmentRepo department.DepartmentRepository
}

func NewDepartmentService(departmentRepo department.DepartmentRepository) department.DepartmentService {
	return &DepartmentServiceImpl{departmentRepo: departmentRepo}
}

// List implements department.DepartmentService.
func (s *DepartmentServiceImpl) List(ctx context.Context, activeOnly bool) ([]department.DepartmentResponse, error) {
	if _, err := auth.FromContext(ctx); err != nil {
		return nil, err
	}

	departments, err := s.departmentRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	responses := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, d.ToResponse())
	}
	return responses, nil
}

// Get implements department.DepartmentService.
func (s *DepartmentServiceImpl) Get(ctx context.Context, id string) (department.DepartmentResponse, error) {
	if _, err := auth.FromContext(ctx); err != nil {
		return department.DepartmentResponse{}, err
	}

	d, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return d.ToResponse(), nil
}

// Create implements department.DepartmentService.
func (s *DepartmentServiceImpl) Create(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return department.DepartmentResponse{}, err
	}

	created, err := s.departmentRepo.Create(ctx, department.Department{
		Name:        req.Name,
		Description: req.Description,
		ManagerID:   req.ManagerID,
		Budget:      req.Budget,
		IsActive:    true,
	})
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	slog.Info("Department created", "department_id", created.ID, "name", created.Name)
	return created.ToResponse(), nil
}

// Update implements department.DepartmentService.
func (s *DepartmentServiceImpl) Update(ctx context.Context, id string, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return department.DepartmentResponse{}, err
	}

	d, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	d.ApplyUpdate(req)
	updated, err := s.departmentRepo.Update(ctx, d)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return updated.ToResponse(), nil
}

// Delete implements department.DepartmentService.
func (s *DepartmentServiceImpl) Delete(ctx context.Context, id string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	return s.departmentRepo.Delete(ctx, id)
}

func requireAdmin(ctx context.Context) error {
	p, err := auth.FromContext(ctx)
	if err != nil {
		return err
	}
	return access.RequireAdmin(p)
}
