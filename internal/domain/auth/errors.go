package auth

import "github.com/cmlabs-hris/payroll-backend-go/internal/pkg/apperror"

var (
	ErrInvalidCredentials = apperror.New(apperror.ErrUnauthenticated, "incorrect username or password")
	ErrMissingPrincipal   = apperror.New(apperror.ErrUnauthenticated, "not authenticated")
	ErrInvalidToken       = apperror.New(apperror.ErrUnauthenticated, "invalid token")
	ErrInactiveUser       = apperror.New(apperror.ErrForbidden, "inactive user")
)
