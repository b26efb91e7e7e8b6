package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/ramennsama/blog-api/internal/model"
)

// TagRepository provides storage access for tags.
type TagRepository interface {
	// Create inserts a new tag. Returns errs.ErrAlreadyExists on a duplicate name.
	Create(ctx context.Context, t *model.Tag) error
	// GetByIDs loads the tags matching the given ids; missing ids are skipped.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Tag, error)
	// List returns all tags ordered by name.
	List(ctx context.Context) ([]model.Tag, error)
	// Delete removes the tag. Returns errs.ErrNotFound when no row matched.
	Delete(ctx context.Context, id uuid.UUID) error
	// Count returns the total number of tags.
	Count(ctx context.Context) (int64, error)
}
