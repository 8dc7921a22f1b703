package department

import "github.com/cmlabs-hris/payroll-backend-go/internal/pkg/apperror"

var (
	ErrDepartmentNotFound = apperror.New(apperror.ErrNotFound, "department not found")
	ErrDepartmentExists   = apperror.New(apperror.ErrConflict, "department name already exists")
	ErrManagerNotFound    = apperror.New(apperror.ErrNotFound, "manager user not found")
)
