package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/ramennsama/blog-api/internal/model"
)

// PostQuery carries pagination and sorting for post listings.
type PostQuery struct {
	Page          int
	Size          int
	SortColumn    string // whitelisted column name, descending order
	PublishedOnly bool
}

// PostRepository provides storage access for posts, their tag links and
// reaction membership sets.
type PostRepository interface {
	// Create inserts a post with its tag links. p.Slug holds the base slug;
	// on a slug collision the insert is retried with an incremented numeric
	// suffix and p.Slug reflects the stored value on return.
	Create(ctx context.Context, p *model.Post, tagIDs []uuid.UUID) error
	// GetBySlug loads a post with author, tags and reaction sets.
	GetBySlug(ctx context.Context, slug string) (*model.Post, error)
	// GetByID loads a post with its author.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	// List returns a page of posts, newest-first by the query's sort column.
	List(ctx context.Context, q PostQuery) (*model.Page[model.Post], error)
	// ListByAuthor returns a page of a single author's published posts.
	ListByAuthor(ctx context.Context, authorID uuid.UUID, page, size int) (*model.Page[model.Post], error)
	// Delete removes the post and its dependent rows.
	Delete(ctx context.Context, id uuid.UUID) error
	// SetPublished flips the published flag.
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
	// IncrementViews bumps the view counter atomically.
	IncrementViews(ctx context.Context, slug string) error
	// ToggleReaction applies a like/dislike toggle for one user inside a
	// single transaction, keeping counters equal to membership set sizes.
	ToggleReaction(ctx context.Context, slug string, userID uuid.UUID, kind model.ReactionKind) error
	// Count returns the total number of posts.
	Count(ctx context.Context) (int64, error)
	// CountPublished returns the number of posts with the given published flag.
	CountPublished(ctx context.Context, published bool) (int64, error)
	// SumCounters returns platform-wide view/like/dislike totals.
	SumCounters(ctx context.Context) (views, likes, dislikes int64, err error)
}
