package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EmployeeResponse struct {
	ID             string           `json:"id"`
	UserID         string           `json:"user_id"`
	EmployeeCode   string           `json:"employee_code"`
	DepartmentID   *string          `json:"department_id,omitempty"`
	Position       string           `json:"position"`
	HireDate       string           `json:"hire_date"`
	EmploymentType string           `json:"employment_type"`
	Salary         decimal.Decimal  `json:"salary"`
	HourlyRate     *decimal.Decimal `json:"hourly_rate,omitempty"`
	IsActive       bool             `json:"is_active"`
	FullName       *string          `json:"full_name,omitempty"`
	Email          *string          `json:"email,omitempty"`
	CreatedAt      string           `json:"created_at"`
	UpdatedAt      string           `json:"updated_at"`
}

// CreateEmployeeRequest creates an employee profile. UserID is required for
// the admin endpoint and taken from the principal on /users/me/employee.
type CreateEmployeeRequest struct {
	UserID         string           `json:"user_id,omitempty"`
	EmployeeCode   string           `json:"employee_code"`
	DepartmentID   *string          `json:"department_id,omitempty"`
	Position       string           `json:"position"`
	HireDate       string           `json:"hire_date"`
	EmploymentType string           `json:"employment_type"`
	Salary         decimal.Decimal  `json:"salary"`
	HourlyRate     *decimal.Decimal `json:"hourly_rate,omitempty"`

	hireDate time.Time
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.EmployeeCode = strings.TrimSpace(r.EmployeeCode)
	r.Position = strings.TrimSpace(r.Position)

	if r.UserID != "" && !validator.IsValidUUID(r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "invalid user_id format"})
	}

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "employee_code is required"})
	} else if len(r.EmployeeCode) > 50 {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "employee_code must be at most 50 characters"})
	}

	if r.DepartmentID != nil && !validator.IsValidUUID(*r.DepartmentID) {
		errs = append(errs, validator.ValidationError{Field: "department_id", Message: "invalid department_id format"})
	}

	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{Field: "position", Message: "position is required"})
	}

	if validator.IsEmpty(r.HireDate) {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "hire_date is required"})
	} else if date, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "hire_date must be in YYYY-MM-DD format"})
	} else {
		r.hireDate = date
	}

	if r.EmploymentType == "" {
		r.EmploymentType = string(EmploymentTypeFullTime)
	}
	if !validator.IsInSlice(r.EmploymentType, EmploymentTypes()) {
		errs = append(errs, validator.ValidationError{Field: "employment_type", Message: "employment_type must be one of full_time, part_time, contract, hourly"})
	}

	if r.Salary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "salary", Message: "salary must not be negative"})
	}

	if r.HourlyRate != nil && r.HourlyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "hourly_rate must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToEntity builds the employee for userID. Call after Validate.
func (r CreateEmployeeRequest) ToEntity(userID string) Employee {
	return Employee{
		UserID:         userID,
		EmployeeCode:   r.EmployeeCode,
		DepartmentID:   r.DepartmentID,
		Position:       r.Position,
		HireDate:       r.hireDate,
		EmploymentType: EmploymentType(r.EmploymentType),
		Salary:         r.Salary.Round(2),
		HourlyRate:     roundPtr(r.HourlyRate),
		IsActive:       true,
	}
}

// UpdateEmployeeRequest updates an employee. An empty DepartmentID clears it.
type UpdateEmployeeRequest struct {
	EmployeeCode   *string          `json:"employee_code,omitempty"`
	DepartmentID   *string          `json:"department_id,omitempty"`
	Position       *string          `json:"position,omitempty"`
	HireDate       *string          `json:"hire_date,omitempty"`
	EmploymentType *string          `json:"employment_type,omitempty"`
	Salary         *decimal.Decimal `json:"salary,omitempty"`
	HourlyRate     *decimal.Decimal `json:"hourly_rate,omitempty"`
	IsActive       *bool            `json:"is_active,omitempty"`

	hireDate *time.Time
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeCode != nil && validator.IsEmpty(*r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "employee_code must not be empty"})
	}
	if r.DepartmentID != nil && *r.DepartmentID != "" && !validator.IsValidUUID(*r.DepartmentID) {
		errs = append(errs, validator.ValidationError{Field: "department_id", Message: "invalid department_id format"})
	}
	if r.Position != nil && validator.IsEmpty(*r.Position) {
		errs = append(errs, validator.ValidationError{Field: "position", Message: "position must not be empty"})
	}
	if r.HireDate != nil {
		r.hireDate = validator.ParseOptionalDate("hire_date", *r.HireDate, &errs)
		if r.hireDate == nil && *r.HireDate == "" {
			errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "hire_date must not be empty"})
		}
	}
	if r.EmploymentType != nil && !validator.IsInSlice(*r.EmploymentType, EmploymentTypes()) {
		errs = append(errs, validator.ValidationError{Field: "employment_type", Message: "employment_type must be one of full_time, part_time, contract, hourly"})
	}
	if r.Salary != nil {
		if r.Salary.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "salary", Message: "salary must not be negative"})
		}
		rounded := r.Salary.Round(2)
		r.Salary = &rounded
	}
	if r.HourlyRate != nil {
		if r.HourlyRate.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "hourly_rate must not be negative"})
		}
		r.HourlyRate = roundPtr(r.HourlyRate)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeFilter struct {
	DepartmentID   *string `json:"department_id,omitempty"`
	EmploymentType *string `json:"employment_type,omitempty"`
	IsActive       *bool   `json:"is_active,omitempty"`
	Page           int     `json:"page"`
	Limit          int     `json:"limit"`
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors
	if f.DepartmentID != nil && !validator.IsValidUUID(*f.DepartmentID) {
		errs = append(errs, validator.ValidationError{Field: "department_id", Message: "invalid department_id format"})
	}
	if f.EmploymentType != nil && !validator.IsInSlice(*f.EmploymentType, EmploymentTypes()) {
		errs = append(errs, validator.ValidationError{Field: "employment_type", Message: "invalid employment_type"})
	}
	validator.NormalizePage(&f.Page, &f.Limit, &errs)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Employees  []EmployeeResponse `json:"employees"`
}

func roundPtr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	rounded := d.Round(2)
	return &rounded
}
