package employee

import "github.com/cmlabs-hris/payroll-backend-go/internal/pkg/apperror"

var (
	ErrEmployeeNotFound     = apperror.New(apperror.ErrNotFound, "employee profile not found")
	ErrEmployeeCodeExists   = apperror.New(apperror.ErrConflict, "employee code already exists")
	ErrProfileAlreadyExists = apperror.New(apperror.ErrConflict, "employee profile already exists")
	ErrUserNotFound         = apperror.New(apperror.ErrNotFound, "user for employee profile not found")
	ErrDepartmentNotFound   = apperror.New(apperror.ErrNotFound, "department not found")
)
