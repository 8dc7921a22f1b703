package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const departmentColumns = `id, name, description, manager_id, budget, is_active, created_at`

var departmentConstraints = map[string]error{
	"uq_departments_name":         department.ErrDepartmentExists,
	"departments_manager_id_fkey": department.ErrManagerNotFound,
}

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

func scanDepartment(row pgx.Row) (department.Department, error) {
	var d department.Department
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.ManagerID, &d.Budget, &d.IsActive, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, err
	}
	return d, nil
}

// Create implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Create(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return department.Department{}, fmt.Errorf("generate department id: %w", err)
	}

	query := `
		INSERT INTO departments (id, name, description, manager_id, budget, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING ` + departmentColumns

	created, err := scanDepartment(q.QueryRow(ctx, query,
		id.String(), d.Name, d.Description, d.ManagerID, d.Budget, d.IsActive,
	))
	if err != nil {
		return department.Department{}, translateConstraint(err, departmentConstraints)
	}
	return created, nil
}

// GetByID implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)
	return scanDepartment(q.QueryRow(ctx, `SELECT `+departmentColumns+` FROM departments WHERE id = $1`, id))
}

// GetByName implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByName(ctx context.Context, name string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)
	return scanDepartment(q.QueryRow(ctx, `SELECT `+departmentColumns+` FROM departments WHERE name = $1`, name))
}

// List implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + departmentColumns + ` FROM departments`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	departments := make([]department.Department, 0)
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

// Update implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Update(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE departments
		SET name = $2, description = $3, manager_id = $4, budget = $5, is_active = $6
		WHERE id = $1
		RETURNING ` + departmentColumns

	updated, err := scanDepartment(q.QueryRow(ctx, query,
		d.ID, d.Name, d.Description, d.ManagerID, d.Budget, d.IsActive,
	))
	if err != nil {
		return department.Department{}, translateConstraint(err, departmentConstraints)
	}
	return updated, nil
}

// Delete implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return department.ErrDepartmentNotFound
	}
	return nil
}
