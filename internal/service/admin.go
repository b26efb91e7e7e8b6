package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/ramennsama/blog-api/internal/errs"
	"github.com/ramennsama/blog-api/internal/model"
	"github.com/ramennsama/blog-api/internal/repository"
)

// AdminService serves the dashboard and user administration.
type AdminService struct {
	users    repository.UserRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
	tags     repository.TagRepository
}

// NewAdminService constructs an admin service.
func NewAdminService(users repository.UserRepository, posts repository.PostRepository,
	comments repository.CommentRepository, tags repository.TagRepository) *AdminService {
	return &AdminService{users: users, posts: posts, comments: comments, tags: tags}
}

// Dashboard aggregates platform-wide statistics.
func (s *AdminService) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	var st model.DashboardStats
	var err error

	if st.TotalPosts, err = s.posts.Count(ctx); err != nil {
		return nil, err
	}
	if st.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if st.TotalComments, err = s.comments.Count(ctx); err != nil {
		return nil, err
	}
	if st.TotalTags, err = s.tags.Count(ctx); err != nil {
		return nil, err
	}
	if st.PublishedPosts, err = s.posts.CountPublished(ctx, true); err != nil {
		return nil, err
	}
	if st.DraftPosts, err = s.posts.CountPublished(ctx, false); err != nil {
		return nil, err
	}
	if st.TotalViews, st.TotalLikes, st.TotalDislikes, err = s.posts.SumCounters(ctx); err != nil {
		return nil, err
	}
	return &st, nil
}

// ListUsers returns every registered user.
func (s *AdminService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// ListComments returns every comment with post context.
func (s *AdminService) ListComments(ctx context.Context) ([]model.Comment, error) {
	return s.comments.ListAll(ctx)
}

// PromoteToAdmin grants ROLE_ADMIN to the user. Rejects users who already
// hold it.
func (s *AdminService) PromoteToAdmin(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.HasRole(model.RoleAdmin) {
		return nil, fmt.Errorf("%w: user is already an admin", errs.ErrValidation)
	}
	authorities := []string{model.RoleUser, model.RoleAdmin}
	if err := s.users.UpdateAuthorities(ctx, userID, authorities); err != nil {
		return nil, err
	}
	u.Authorities = authorities
	return u, nil
}

// DeleteUser removes a non-admin user. Admin targets are rejected.
func (s *AdminService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.HasRole(model.RoleAdmin) {
		return fmt.Errorf("%w: cannot delete an admin", errs.ErrValidation)
	}
	return s.users.Delete(ctx, userID)
}
