package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/ramennsama/blog-api/internal/errs"
	"github.com/ramennsama/blog-api/internal/model"
	"github.com/ramennsama/blog-api/internal/repository"
)

// PostInput is the payload for post creation.
type PostInput struct {
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	TagIDs    []uuid.UUID `json:"tagIds"`
	Published *bool       `json:"published"` // nil defaults to true
}

// PostService defines post CRUD, listing and reaction operations.
type PostService interface {
	Create(ctx context.Context, in PostInput, authorEmail string) (*model.Post, error)
	GetBySlug(ctx context.Context, slug string) (*model.Post, error)
	IncrementViews(ctx context.Context, slug string) error
	List(ctx context.Context, page, size int, sortBy string, publishedOnly bool) (*model.Page[model.Post], error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, size int) (*model.Page[model.Post], error)
	Delete(ctx context.Context, id uuid.UUID, actor *model.User) error
	ToggleLike(ctx context.Context, slug, userEmail string) error
	ToggleDislike(ctx context.Context, slug, userEmail string) error
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
}

type PostServiceImpl struct {
	posts repository.PostRepository
	tags  repository.TagRepository
	users repository.UserRepository
}

// NewPostService constructs PostService with required dependencies.
func NewPostService(posts repository.PostRepository, tags repository.TagRepository, users repository.UserRepository) *PostServiceImpl {
	return &PostServiceImpl{posts: posts, tags: tags, users: users}
}

// sortColumns whitelists the sort fields accepted by listings.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"title":     "title",
	"views":     "views_count",
	"likes":     "likes_count",
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the URL-safe base slug from a post title:
// lowercase, non-alphanumeric runs collapsed to single dashes, trimmed.
func Slugify(title string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}

// Create validates the input and inserts the post. Published defaults to
// true; unknown tag ids are skipped. Slug collisions are resolved by the
// repository's suffix retry.
func (s *PostServiceImpl) Create(ctx context.Context, in PostInput, authorEmail string) (*model.Post, error) {
	title := strings.TrimSpace(in.Title)
	if len(title) < 5 || len(title) > 200 {
		return nil, fmt.Errorf("%w: title must be between 5 and 200 characters", errs.ErrValidation)
	}
	if len(strings.TrimSpace(in.Content)) < 10 {
		return nil, fmt.Errorf("%w: content must be at least 10 characters", errs.ErrValidation)
	}

	author, err := s.users.GetByEmail(ctx, authorEmail)
	if err != nil {
		return nil, err
	}

	var tags []model.Tag
	if len(in.TagIDs) > 0 {
		tags, err = s.tags.GetByIDs(ctx, in.TagIDs)
		if err != nil {
			return nil, err
		}
	}

	published := true
	if in.Published != nil {
		published = *in.Published
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	p := &model.Post{
		ID:        id,
		Title:     title,
		Content:   in.Content,
		Slug:      Slugify(title),
		Published: published,
		AuthorID:  author.ID,
		Author:    author,
		Tags:      tags,
	}

	tagIDs := make([]uuid.UUID, len(tags))
	for i, t := range tags {
		tagIDs[i] = t.ID
	}
	if err := s.posts.Create(ctx, p, tagIDs); err != nil {
		return nil, err
	}
	return p, nil
}

// GetBySlug loads a post by slug.
func (s *PostServiceImpl) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	return s.posts.GetBySlug(ctx, slug)
}

// IncrementViews bumps the view counter for a post detail read.
func (s *PostServiceImpl) IncrementViews(ctx context.Context, slug string) error {
	return s.posts.IncrementViews(ctx, slug)
}

// List returns a page of posts. publishedOnly hides drafts for the public
// listing; the admin listing passes false.
func (s *PostServiceImpl) List(ctx context.Context, page, size int, sortBy string, publishedOnly bool) (*model.Page[model.Post], error) {
	col, ok := sortColumns[sortBy]
	if !ok {
		col = "created_at"
	}
	return s.posts.List(ctx, repository.PostQuery{
		Page:          normPage(page),
		Size:          normSize(size),
		SortColumn:    col,
		PublishedOnly: publishedOnly,
	})
}

// ListByUser returns a page of one author's published posts.
func (s *PostServiceImpl) ListByUser(ctx context.Context, userID uuid.UUID, page, size int) (*model.Page[model.Post], error) {
	return s.posts.ListByAuthor(ctx, userID, normPage(page), normSize(size))
}

// Delete removes a post. Allowed for the author or an admin.
func (s *PostServiceImpl) Delete(ctx context.Context, id uuid.UUID, actor *model.User) error {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.AuthorID != actor.ID && !actor.HasRole(model.RoleAdmin) {
		return errs.ErrForbidden
	}
	return s.posts.Delete(ctx, id)
}

// ToggleLike applies a like toggle for the user identified by email.
func (s *PostServiceImpl) ToggleLike(ctx context.Context, slug, userEmail string) error {
	return s.toggle(ctx, slug, userEmail, model.KindLike)
}

// ToggleDislike applies a dislike toggle for the user identified by email.
func (s *PostServiceImpl) ToggleDislike(ctx context.Context, slug, userEmail string) error {
	return s.toggle(ctx, slug, userEmail, model.KindDislike)
}

func (s *PostServiceImpl) toggle(ctx context.Context, slug, userEmail string, kind model.ReactionKind) error {
	u, err := s.users.GetByEmail(ctx, userEmail)
	if err != nil {
		return err
	}
	return s.posts.ToggleReaction(ctx, slug, u.ID, kind)
}

// SetPublished approves or unpublishes a post (admin operation).
func (s *PostServiceImpl) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	return s.posts.SetPublished(ctx, id, published)
}

func normPage(page int) int {
	if page < 0 {
		return 0
	}
	return page
}

func normSize(size int) int {
	if size <= 0 {
		return 10
	}
	if size > 100 {
		return 100
	}
	return size
}
