package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	pkgcrypto "github.com/ramennsama/blog-api/internal/crypto"
	"github.com/ramennsama/blog-api/internal/errs"
	"github.com/ramennsama/blog-api/internal/model"
	"github.com/ramennsama/blog-api/internal/repository"
)

// PasswordUpdateInput is the payload for a self-service password change.
type PasswordUpdateInput struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// UserService handles profile lookups and self-service updates.
type UserService struct {
	users repository.UserRepository
}

// NewUserService constructs a user service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetByID returns a user's public profile.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdatePassword changes the actor's password after verifying the old one.
// The new password must match its confirmation and differ from the old.
func (s *UserService) UpdatePassword(ctx context.Context, actor *model.User, in PasswordUpdateInput) error {
	if !pkgcrypto.VerifyPassword([]byte(in.OldPassword), actor.PwdHash) {
		return fmt.Errorf("%w: current password is incorrect", errs.ErrValidation)
	}
	if in.NewPassword != in.ConfirmPassword {
		return fmt.Errorf("%w: new passwords do not match", errs.ErrValidation)
	}
	if in.NewPassword == in.OldPassword {
		return fmt.Errorf("%w: old and new passwords must be different", errs.ErrValidation)
	}
	if len(in.NewPassword) < 6 || len(in.NewPassword) > 100 {
		return fmt.Errorf("%w: password must be 6-100 characters", errs.ErrValidation)
	}
	hash, err := pkgcrypto.HashPassword([]byte(in.NewPassword))
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, actor.ID, hash)
}

// UpdateAvatar replaces the actor's avatar URL and returns the fresh profile.
func (s *UserService) UpdateAvatar(ctx context.Context, actor *model.User, avatarURL string) (*model.User, error) {
	if err := s.users.UpdateAvatar(ctx, actor.ID, avatarURL); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, actor.ID)
}

// DeleteSelf removes the actor's own account. The last admin cannot delete
// itself. Not currently routed; kept for a future account-removal surface.
func (s *UserService) DeleteSelf(ctx context.Context, actor *model.User) error {
	if actor.HasRole(model.RoleAdmin) {
		n, err := s.users.CountAdmins(ctx)
		if err != nil {
			return err
		}
		if n <= 1 {
			return errs.ErrForbidden
		}
	}
	return s.users.Delete(ctx, actor.ID)
}
