// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/ramennsama/blog-api/internal/model"
)

// UserRepository provides CRUD access for user accounts.
type UserRepository interface {
	// Create inserts a new user. Returns errs.ErrAlreadyExists on a duplicate email.
	Create(ctx context.Context, u *model.User) error
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetByEmail loads a user by email (the login username).
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// List returns all users ordered by creation time.
	List(ctx context.Context) ([]model.User, error)
	// Count returns the number of registered users.
	Count(ctx context.Context) (int64, error)
	// CountAdmins returns the number of users holding RoleAdmin.
	CountAdmins(ctx context.Context) (int64, error)
	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id uuid.UUID, pwdHash []byte) error
	// UpdateAvatar replaces the avatar URL.
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error
	// UpdateAuthorities replaces the granted capability set.
	UpdateAuthorities(ctx context.Context, id uuid.UUID, authorities []string) error
	// Delete removes the user.
	Delete(ctx context.Context, id uuid.UUID) error
}
