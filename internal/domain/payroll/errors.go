package payroll

import "github.com/cmlabs-hris/payroll-backend-go/internal/pkg/apperror"

var (
	ErrPayrollRecordNotFound = apperror.New(apperror.ErrNotFound, "payroll record not found")
	ErrEmployeeNotFound      = apperror.New(apperror.ErrNotFound, "employee not found")
	ErrRecordExists          = apperror.New(apperror.ErrConflict, "payroll record already exists for this period")
	ErrInvalidPeriod         = apperror.New(apperror.ErrInvalidRange, "start date must be before end date")
)
