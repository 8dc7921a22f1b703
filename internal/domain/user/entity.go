package user

import "time"

type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	FullName     string
	IsActive     bool
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

// ApplyUpdate merges the fields present in req into u. PasswordHash is set by
// the caller after hashing.
func (u *User) ApplyUpdate(req UpdateUserRequest) {
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Username != nil {
		u.Username = *req.Username
	}
	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if req.IsAdmin != nil {
		u.IsAdmin = *req.IsAdmin
	}
}
