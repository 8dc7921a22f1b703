package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const employeeSelect = `
	SELECT e.id, e.user_id, e.employee_code, e.department_id, e.position, e.hire_date,
		   e.employment_type, e.salary, e.hourly_rate, e.is_active, e.created_at, e.updated_at,
		   u.full_name, u.email
	FROM employees e
	JOIN users u ON u.id = e.user_id`

var employeeConstraints = map[string]error{
	"uq_employees_user":            employee.ErrProfileAlreadyExists,
	"uq_employees_code":            employee.ErrEmployeeCodeExists,
	"employees_user_id_fkey":       employee.ErrUserNotFound,
	"employees_department_id_fkey": employee.ErrDepartmentNotFound,
}

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.UserID, &e.EmployeeCode, &e.DepartmentID, &e.Position, &e.HireDate,
		&e.EmploymentType, &e.Salary, &e.HourlyRate, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
		&e.FullName, &e.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return employee.Employee{}, fmt.Errorf("generate employee id: %w", err)
	}

	query := `
		INSERT INTO employees (
			id, user_id, employee_code, department_id, position, hire_date,
			employment_type, salary, hourly_rate, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())`

	_, err = q.Exec(ctx, query,
		id.String(), newEmployee.UserID, newEmployee.EmployeeCode, newEmployee.DepartmentID,
		newEmployee.Position, newEmployee.HireDate, string(newEmployee.EmploymentType),
		newEmployee.Salary, newEmployee.HourlyRate, newEmployee.IsActive,
	)
	if err != nil {
		return employee.Employee{}, translateConstraint(err, employeeConstraints)
	}
	return r.GetByID(ctx, id.String())
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	return scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.id = $1`, id))
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	return scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.user_id = $1`, userID))
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.DepartmentID != nil {
		where += fmt.Sprintf(" AND e.department_id = $%d", argIdx)
		args = append(args, *filter.DepartmentID)
		argIdx++
	}
	if filter.EmploymentType != nil {
		where += fmt.Sprintf(" AND e.employment_type = $%d", argIdx)
		args = append(args, *filter.EmploymentType)
		argIdx++
	}
	if filter.IsActive != nil {
		where += fmt.Sprintf(" AND e.is_active = $%d", argIdx)
		args = append(args, *filter.IsActive)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees e`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := employeeSelect + where + fmt.Sprintf(" ORDER BY e.employee_code LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	employees, err := r.query(ctx, q, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	return r.query(ctx, q, employeeSelect+` WHERE e.is_active = TRUE ORDER BY e.employee_code`)
}

func (r *employeeRepositoryImpl) query(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]employee.Employee, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET employee_code = $2, department_id = $3, position = $4, hire_date = $5,
			employment_type = $6, salary = $7, hourly_rate = $8, is_active = $9, updated_at = NOW()
		WHERE id = $1`

	tag, err := q.Exec(ctx, query,
		e.ID, e.EmployeeCode, e.DepartmentID, e.Position, e.HireDate,
		string(e.EmploymentType), e.Salary, e.HourlyRate, e.IsActive,
	)
	if err != nil {
		return employee.Employee{}, translateConstraint(err, employeeConstraints)
	}
	if tag.RowsAffected() != 1 {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return r.GetByID(ctx, e.ID)
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
