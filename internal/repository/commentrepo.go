package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/ramennsama/blog-api/internal/model"
)

// CommentRepository provides storage access for comments.
type CommentRepository interface {
	// Create inserts a new comment.
	Create(ctx context.Context, c *model.Comment) error
	// GetByID loads a comment with its author.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	// ListByPostSlug returns a post's comments, newest-first, with authors.
	ListByPostSlug(ctx context.Context, slug string) ([]model.Comment, error)
	// ListAll returns every comment with author and owning post slug/title.
	ListAll(ctx context.Context) ([]model.Comment, error)
	// Delete removes the comment.
	Delete(ctx context.Context, id uuid.UUID) error
	// Count returns the total number of comments.
	Count(ctx context.Context) (int64, error)
}
