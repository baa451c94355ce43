package service

import (
	"context"
	"fmt"
	"strings"

	"taskhub/internal/config"
	"taskhub/internal/model"
	"taskhub/internal/policy"
	"taskhub/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService handles profile and role management.
type UserService struct {
	users repository.IUserRepository
}

// NewUserService creates a new user service
func NewUserService(users repository.IUserRepository) *UserService {
	return &UserService{users: users}
}

// UpdateProfile changes the caller's display name. Email and role are
// immutable through this path.
func (s *UserService) UpdateProfile(ctx context.Context, caller *model.User, req *model.UpdateProfileRequest) (*model.UserResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, newValidationError("Name is required")
	}
	if len(name) > config.MaxNameLength {
		return nil, newValidationError("Name exceeds maximum length")
	}
	updated, err := s.users.UpdateName(ctx, caller.ID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if updated == nil {
		return nil, ErrUserNotFound
	}
	resp := updated.ToResponse()
	return &resp, nil
}

// ListUsers returns all active users, newest first. Admin only.
func (s *UserService) ListUsers(ctx context.Context, caller *model.User) ([]model.UserResponse, error) {
	if !policy.CanManageUsers(caller) {
		return nil, ErrForbidden
	}
	users, err := s.users.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	responses := make([]model.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses, nil
}

// UpdateRole sets a user's role. Admin only. Nothing stops an admin from
// demoting themselves; that matches the documented behavior.
func (s *UserService) UpdateRole(ctx context.Context, caller *model.User, targetID, role string) (*model.UserResponse, error) {
	if !policy.CanManageUsers(caller) {
		return nil, ErrForbidden
	}
	if !model.ValidRole(role) {
		return nil, newValidationError("Invalid role")
	}
	oid, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	updated, err := s.users.UpdateRole(ctx, oid, role)
	if err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	if updated == nil {
		return nil, ErrUserNotFound
	}
	resp := updated.ToResponse()
	return &resp, nil
}

// EnsureAdmin promotes the user with the given email to admin if they
// exist with the default role. Used once at startup for bootstrap.
// Returns true when a promotion happened.
func (s *UserService) EnsureAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("failed to look up bootstrap admin: %w", err)
	}
	if user == nil || user.Role == model.RoleAdmin {
		return false, nil
	}
	if _, err := s.users.UpdateRole(ctx, user.ID, model.RoleAdmin); err != nil {
		return false, fmt.Errorf("failed to promote bootstrap admin: %w", err)
	}
	return true, nil
}
