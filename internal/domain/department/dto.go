package department

import (
	"strings"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type DepartmentResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	ManagerID   *string          `json:"manager_id,omitempty"`
	Budget      *decimal.Decimal `json:"budget,omitempty"`
	IsActive    bool             `json:"is_active"`
	CreatedAt   string           `json:"created_at"`
}

type CreateDepartmentRequest struct {
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	ManagerID   *string          `json:"manager_id,omitempty"`
	Budget      *decimal.Decimal `json:"budget,omitempty"`
}

func (r *CreateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	} else if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must be at most 255 characters"})
	}
	if r.ManagerID != nil && !validator.IsValidUUID(*r.ManagerID) {
		errs = append(errs, validator.ValidationError{Field: "manager_id", Message: "invalid manager_id format"})
	}
	if r.Budget != nil && r.Budget.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "budget", Message: "budget must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateDepartmentRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	ManagerID   *string          `json:"manager_id,omitempty"`
	Budget      *decimal.Decimal `json:"budget,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

func (r *UpdateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
		if name == "" {
			errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not be empty"})
		}
	}
	if r.ManagerID != nil && *r.ManagerID != "" && !validator.IsValidUUID(*r.ManagerID) {
		errs = append(errs, validator.ValidationError{Field: "manager_id", Message: "invalid manager_id format"})
	}
	if r.Budget != nil && r.Budget.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "budget", Message: "budget must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
