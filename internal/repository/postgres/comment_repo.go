package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/ramennsama/blog-api/internal/errs"
	"github.com/ramennsama/blog-api/internal/model"
)

// CommentRepo implements CommentRepository using PostgreSQL.
type CommentRepo struct{ db *DB }

// NewCommentRepo constructs a comment repository.
func NewCommentRepo(db *DB) *CommentRepo { return &CommentRepo{db: db} }

const commentSelect = `
SELECT c.id, c.content, c.post_id, c.author_id, c.created_at,
       u.first_name, u.last_name, u.email, u.avatar_url,
       p.slug, p.title
FROM comments c
JOIN users u ON u.id = c.author_id
JOIN posts p ON p.id = c.post_id`

// Create inserts a new comment row.
func (r *CommentRepo) Create(ctx context.Context, c *model.Comment) error {
	const q = `
INSERT INTO comments (id, content, post_id, author_id)
VALUES ($1, $2, $3, $4)`
	_, err := r.db.Pool.Exec(ctx, q, c.ID, c.Content, c.PostID, c.AuthorID)
	return err
}

// GetByID loads a comment with its author and post.
func (r *CommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	var c model.Comment
	if err := scanComment(r.db.Pool.QueryRow(ctx, commentSelect+` WHERE c.id=$1`, id), &c); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	return &c, nil
}

// ListByPostSlug returns a post's comments, newest-first.
func (r *CommentRepo) ListByPostSlug(ctx context.Context, slug string) ([]model.Comment, error) {
	return r.query(ctx, commentSelect+` WHERE p.slug=$1 ORDER BY c.created_at DESC`, slug)
}

// ListAll returns every comment with author and post context, newest-first.
func (r *CommentRepo) ListAll(ctx context.Context) ([]model.Comment, error) {
	return r.query(ctx, commentSelect+` ORDER BY c.created_at DESC`)
}

// Delete removes the comment.
func (r *CommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM comments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Count returns the total number of comments.
func (r *CommentRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.Pool.QueryRow(ctx, `SELECT count(*) FROM comments`).Scan(&n)
	return n, err
}

func (r *CommentRepo) query(ctx context.Context, q string, args ...any) ([]model.Comment, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := scanComment(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanComment(row pgx.Row, c *model.Comment) error {
	var author model.User
	err := row.Scan(&c.ID, &c.Content, &c.PostID, &c.AuthorID, &c.CreatedAt,
		&author.FirstName, &author.LastName, &author.Email, &author.AvatarURL,
		&c.PostSlug, &c.PostTitle)
	if err != nil {
		return err
	}
	author.ID = c.AuthorID
	c.Author = &author
	return nil
}
