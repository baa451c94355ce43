package service

import (
	"context"
	"fmt"
	"strings"

	"taskhub/internal/auth"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

// IdentityService bridges externally-issued tokens to local user
// records. Verification and record resolution are separate steps so each
// can be tested on its own.
type IdentityService struct {
	verifier auth.Verifier
	users    repository.IUserRepository
}

// NewIdentityService creates a new identity service
func NewIdentityService(verifier auth.Verifier, users repository.IUserRepository) *IdentityService {
	return &IdentityService{verifier: verifier, users: users}
}

// Authenticate verifies a bearer token and returns the matching local
// user, creating one on first login.
func (s *IdentityService) Authenticate(ctx context.Context, rawToken string) (*model.User, error) {
	ident, err := s.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return s.ResolveOrCreate(ctx, ident)
}

// ResolveOrCreate looks up the local user by external subject id and
// creates one with the default role when absent. New accounts can never
// start as admin.
func (s *IdentityService) ResolveOrCreate(ctx context.Context, ident *auth.Identity) (*model.User, error) {
	user, err := s.users.FindByUID(ctx, ident.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		name := strings.TrimSpace(ident.Name)
		if name == "" {
			// Derive name from email local part
			name = strings.SplitN(ident.Email, "@", 2)[0]
		}
		user = &model.User{
			UID:      ident.Subject,
			Email:    ident.Email,
			Name:     name,
			Role:     model.RoleUser,
			IsActive: true,
		}
		user, err = s.users.Create(ctx, user)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	return user, nil
}
