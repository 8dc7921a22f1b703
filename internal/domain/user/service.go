package user

import "context"

type UserService interface {
	GetMe(ctx context.Context) (UserResponse, error)
	UpdateMe(ctx context.Context, req UpdateUserRequest) (UserResponse, error)

	// Admin only
	List(ctx context.Context, filter UserFilter) (ListUserResponse, error)
	Get(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id string) error
}
