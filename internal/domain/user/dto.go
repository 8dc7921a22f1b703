package user

import (
	"strings"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	IsActive  bool   `json:"is_active"`
	IsAdmin   bool   `json:"is_admin"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// UpdateUserRequest is used by both /users/me and the admin endpoint.
// IsActive and IsAdmin are ignored for self updates.
type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty"`
	Username *string `json:"username,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Password *string `json:"password,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
	IsAdmin  *bool   `json:"is_admin,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*r.Email))
		r.Email = &email
		if !validator.IsValidEmail(email) {
			errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email format"})
		}
	}

	if r.Username != nil && !validator.IsValidUsername(*r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "username must be 3-50 letters, digits, dots, dashes or underscores"})
	}

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full_name must not be empty"})
	}

	if r.Password != nil && len(*r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UserFilter struct {
	Search   *string `json:"search,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
	Page     int     `json:"page"`
	Limit    int     `json:"limit"`
}

func (f *UserFilter) Validate() error {
	var errs validator.ValidationErrors
	validator.NormalizePage(&f.Page, &f.Limit, &errs)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListUserResponse struct {
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
	Users      []UserResponse `json:"users"`
}
