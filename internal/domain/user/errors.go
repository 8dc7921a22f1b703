package user

import "github.com/cmlabs-hris/payroll-backend-go/internal/pkg/apperror"

var (
	ErrUserNotFound   = apperror.New(apperror.ErrNotFound, "user not found")
	ErrEmailExists    = apperror.New(apperror.ErrConflict, "email already registered")
	ErrUsernameExists = apperror.New(apperror.ErrConflict, "username already taken")
)
