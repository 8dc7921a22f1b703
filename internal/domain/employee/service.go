package employee

import "context"

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// GetMyProfile returns the principal's own profile.
	GetMyProfile(ctx context.Context) (EmployeeResponse, error)

	// CreateMyProfile creates a profile linked to the principal.
	CreateMyProfile(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// GetEmployee is allowed for the owner and admins.
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, id string) error
}
