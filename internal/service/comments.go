package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/ramennsama/blog-api/internal/errs"
	"github.com/ramennsama/blog-api/internal/model"
	"github.com/ramennsama/blog-api/internal/repository"
)

// CommentService orchestrates comment creation, listing and removal.
type CommentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
}

// NewCommentService constructs a comment service.
func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

// Create adds a comment by the actor to the post identified by slug.
func (s *CommentService) Create(ctx context.Context, slug, content string, actor *model.User) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", errs.ErrValidation)
	}
	p, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	c := &model.Comment{
		ID:       id,
		Content:  content,
		PostID:   p.ID,
		AuthorID: actor.ID,
		Author:   actor,
		PostSlug: p.Slug,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListByPost returns a post's comments, newest-first.
func (s *CommentService) ListByPost(ctx context.Context, slug string) ([]model.Comment, error) {
	return s.comments.ListByPostSlug(ctx, slug)
}

// Delete removes a comment. Allowed for the comment's author or an admin,
// matching the post-deletion rule.
func (s *CommentService) Delete(ctx context.Context, id uuid.UUID, actor *model.User) error {
	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c.AuthorID != actor.ID && !actor.HasRole(model.RoleAdmin) {
		return errs.ErrForbidden
	}
	return s.comments.Delete(ctx, id)
}
