package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type EmploymentType string

const (
	EmploymentTypeFullTime EmploymentType = "full_time"
	EmploymentTypePartTime EmploymentType = "part_time"
	EmploymentTypeContract EmploymentType = "contract"
	EmploymentTypeHourly   EmploymentType = "hourly"
)

func EmploymentTypes() []string {
	return []string{
		string(EmploymentTypeFullTime),
		string(EmploymentTypePartTime),
		string(EmploymentTypeContract),
		string(EmploymentTypeHourly),
	}
}

// Compensation is the part of an employee the payroll calculator reads.
// Salary is annual.
type Compensation struct {
	EmploymentType EmploymentType
	Salary         decimal.Decimal
	HourlyRate     *decimal.Decimal
}

// PaidHourly reports whether pay is derived from the hourly rate. A missing
// or zero rate falls back to the salary.
func (c Compensation) PaidHourly() bool {
	return c.EmploymentType == EmploymentTypeHourly && c.HourlyRate != nil && c.HourlyRate.IsPositive()
}

type Employee struct {
	ID             string
	UserID         string
	EmployeeCode   string
	DepartmentID   *string
	Position       string
	HireDate       time.Time
	EmploymentType EmploymentType
	Salary         decimal.Decimal
	HourlyRate     *decimal.Decimal
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined fields
	FullName *string
	Email    *string
}

func (e Employee) Compensation() Compensation {
	return Compensation{
		EmploymentType: e.EmploymentType,
		Salary:         e.Salary,
		HourlyRate:     e.HourlyRate,
	}
}

func (e Employee) ToResponse() EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID,
		UserID:         e.UserID,
		EmployeeCode:   e.EmployeeCode,
		DepartmentID:   e.DepartmentID,
		Position:       e.Position,
		HireDate:       e.HireDate.Format("2006-01-02"),
		EmploymentType: string(e.EmploymentType),
		Salary:         e.Salary,
		HourlyRate:     e.HourlyRate,
		IsActive:       e.IsActive,
		FullName:       e.FullName,
		Email:          e.Email,
		CreatedAt:      e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      e.UpdatedAt.Format(time.RFC3339),
	}
}

// ApplyUpdate merges the validated fields of req into e.
func (e *Employee) ApplyUpdate(req UpdateEmployeeRequest) {
	if req.EmployeeCode != nil {
		e.EmployeeCode = *req.EmployeeCode
	}
	if req.DepartmentID != nil {
		if *req.DepartmentID == "" {
			e.DepartmentID = nil
		} else {
			id := *req.DepartmentID
			e.DepartmentID = &id
		}
	}
	if req.Position != nil {
		e.Position = *req.Position
	}
	if req.hireDate != nil {
		e.HireDate = *req.hireDate
	}
	if req.EmploymentType != nil {
		e.EmploymentType = EmploymentType(*req.EmploymentType)
	}
	if req.Salary != nil {
		e.Salary = *req.Salary
	}
	if req.HourlyRate != nil {
		rate := *req.HourlyRate
		e.HourlyRate = &rate
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}
}
