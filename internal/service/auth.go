// Package service contains application services orchestrating repositories.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"

	pkgcrypto "github.com/ramennsama/blog-api/internal/crypto"
	"github.com/ramennsama/blog-api/internal/errs"
	"github.com/ramennsama/blog-api/internal/limiter"
	"github.com/ramennsama/blog-api/internal/model"
	"github.com/ramennsama/blog-api/internal/repository"
	"github.com/ramennsama/blog-api/internal/token"
)

// RegisterInput is the payload for user registration.
type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	AvatarURL string `json:"avatarUrl"`
}

// AuthService defines registration and login operations.
type AuthService interface {
	// Register creates a new user. The first registered user is granted ROLE_ADMIN.
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	// LoginWithIP applies rate-limiting, authenticates and issues a token.
	LoginWithIP(ctx context.Context, email, password, ip string) (string, error)
}

type AuthServiceImpl struct {
	users  repository.UserRepository
	tokens *token.Service
	lim    limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, tokens *token.Service, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, tokens: tokens, lim: lim}
}

// Register creates a new user with a hashed password and baseline capability.
func (s *AuthServiceImpl) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if err := validateRegister(in); err != nil {
		return nil, err
	}
	uid, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	hash, err := pkgcrypto.HashPassword([]byte(in.Password))
	if err != nil {
		return nil, err
	}
	authorities, err := s.initialAuthorities(ctx)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		ID:          uid,
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		PwdHash:     hash,
		Authorities: authorities,
		Enabled:     true,
		AvatarURL:   in.AvatarURL,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// LoginWithIP authenticates with rate limiting by (email, ip) and returns a
// signed bearer token on success.
func (s *AuthServiceImpl) LoginWithIP(ctx context.Context, email, password, ip string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return "", err
	}
	if !allowed {
		return "", errs.ErrRateLimited
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil || !u.Enabled || !pkgcrypto.VerifyPassword([]byte(password), u.PwdHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return "", errs.ErrRateLimited
		}
		// hide whether the account exists
		return "", errs.ErrUnauthorized
	}

	// Success: reset counters (best-effort).
	_ = s.lim.Success(ctx, email, ipHash)

	return s.tokens.Issue(map[string]any{}, u)
}

// initialAuthorities grants ROLE_USER to everyone and ROLE_ADMIN to the
// first registered user.
func (s *AuthServiceImpl) initialAuthorities(ctx context.Context) ([]string, error) {
	n, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return []string{model.RoleUser, model.RoleAdmin}, nil
	}
	return []string{model.RoleUser}, nil
}

func validateRegister(in RegisterInput) error {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return fmt.Errorf("%w: firstName and lastName are required", errs.ErrValidation)
	}
	email := strings.TrimSpace(in.Email)
	if email == "" || !strings.Contains(email, "@") || len(email) > 100 {
		return fmt.Errorf("%w: email must be valid", errs.ErrValidation)
	}
	if len(in.Password) < 6 || len(in.Password) > 100 {
		return fmt.Errorf("%w: password must be 6-100 characters", errs.ErrValidation)
	}
	return nil
}
