package user

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	userRepo user.UserRepository
}

func NewUserService(userRepo user.UserRepository) user.UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

// GetMe implements user.UserService.
func (s *UserServiceImpl) GetMe(ctx context.Context) (user.UserResponse, error) {
	p, err := auth.FromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.userRepo.GetByID(ctx, p.UserID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return u.ToResponse(), nil
}

// UpdateMe implements user.UserService.
func (s *UserServiceImpl) UpdateMe(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	p, err := auth.FromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	// account flags are only changed through the admin endpoint
	req.IsActive = nil
	req.IsAdmin = nil

	return s.update(ctx, p.UserID, req)
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, filter user.UserFilter) (user.ListUserResponse, error) {
	p, err := auth.FromContext(ctx)
	if err != nil {
		return user.ListUserResponse{}, err
	}
	if err := access.RequireAdmin(p); err != nil {
		return user.ListUserResponse{}, err
	}

	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return user.ListUserResponse{}, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}

	return user.ListUserResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Users:      responses,
	}, nil
}

// Get implements user.UserService.
func (s *UserServiceImpl) Get(ctx context.Context, id string) (user.UserResponse, error) {
	p, err := auth.FromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	if err := access.RequireAdmin(p); err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return u.ToResponse(), nil
}

// Update implements user.UserService.
func (s *UserServiceImpl) Update(ctx context.Context, id string, req user.UpdateUserRequest) (user.UserResponse, error) {
	p, err := auth.FromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	if err := access.RequireAdmin(p); err != nil {
		return user.UserResponse{}, err
	}

	resp, err := s.update(ctx, id, req)
	if err != nil {
		return user.UserResponse{}, err
	}
	slog.Info("User updated by admin", "user_id", id, "admin_id", p.UserID)
	return resp, nil
}

// Delete implements user.UserService.
func (s *UserServiceImpl) Delete(ctx context.Context, id string) error {
	p, err := auth.FromContext(ctx)
	if err != nil {
		return err
	}
	if err := access.CanDeleteUser(p, id); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("User deleted", "user_id", id, "admin_id", p.UserID)
	return nil
}

func (s *UserServiceImpl) update(ctx context.Context, id string, req user.UpdateUserRequest) (user.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}

	u.ApplyUpdate(req)
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}

	updated, err := s.userRepo.Update(ctx, u)
	if err != nil {
		return user.UserResponse{}, err
	}
	return updated.ToResponse(), nil
}
