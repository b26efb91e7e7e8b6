package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/ramennsama/blog-api/internal/errs"
	"github.com/ramennsama/blog-api/internal/model"
	"github.com/ramennsama/blog-api/internal/repository"
)

// PostRepo implements PostRepository using PostgreSQL.
type PostRepo struct{ db *DB }

// NewPostRepo constructs a post repository.
func NewPostRepo(db *DB) *PostRepo { return &PostRepo{db: db} }

const postSelect = `
SELECT p.id, p.title, p.content, p.slug, p.published,
       p.likes_count, p.dislikes_count, p.views_count,
       p.author_id, p.created_at, p.updated_at,
       u.first_name, u.last_name, u.email, u.avatar_url
FROM posts p
JOIN users u ON u.id = p.author_id`

// Create inserts the post and its tag links. The slug uniqueness constraint
// drives a retry loop: on conflict the insert is repeated with the next
// numeric suffix, so concurrent creations with colliding titles both land.
func (r *PostRepo) Create(ctx context.Context, p *model.Post, tagIDs []uuid.UUID) error {
	base := p.Slug
	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			p.Slug = fmt.Sprintf("%s-%d", base, attempt)
		}
		err := r.insert(ctx, p, tagIDs)
		if isUniqueViolation(err) {
			continue
		}
		return err
	}
}

func (r *PostRepo) insert(ctx context.Context, p *model.Post, tagIDs []uuid.UUID) error {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const q = `
INSERT INTO posts (id, title, content, slug, published, author_id)
VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := tx.Exec(ctx, q, p.ID, p.Title, p.Content, p.Slug, p.Published, p.AuthorID); err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`, p.ID, tagID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// GetBySlug loads a post with its author, tags and reaction membership sets.
func (r *PostRepo) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	p, err := r.getOne(ctx, postSelect+` WHERE p.slug=$1`, slug)
	if err != nil {
		return nil, err
	}
	if err := r.loadTags(ctx, p); err != nil {
		return nil, err
	}
	if err := r.loadReactions(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID loads a post with its author.
func (r *PostRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	return r.getOne(ctx, postSelect+` WHERE p.id=$1`, id)
}

// List returns one page of posts ordered by the query's sort column,
// descending. The column name comes from a service-side whitelist, never
// from user input directly.
func (r *PostRepo) List(ctx context.Context, q repository.PostQuery) (*model.Page[model.Post], error) {
	where := ``
	if q.PublishedOnly {
		where = ` WHERE p.published`
	}
	countQ := `SELECT count(*) FROM posts p` + where
	var total int64
	if err := r.db.Pool.QueryRow(ctx, countQ).Scan(&total); err != nil {
		return nil, err
	}

	listQ := fmt.Sprintf(`%s%s ORDER BY p.%s DESC LIMIT $1 OFFSET $2`, postSelect, where, q.SortColumn)
	items, err := r.queryPosts(ctx, listQ, q.Size, q.Page*q.Size)
	if err != nil {
		return nil, err
	}
	return &model.Page[model.Post]{Items: items, TotalItems: total, Page: q.Page, Size: q.Size}, nil
}

// ListByAuthor returns one page of a single author's published posts,
// newest-first.
func (r *PostRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID, page, size int) (*model.Page[model.Post], error) {
	var total int64
	if err := r.db.Pool.QueryRow(ctx,
		`SELECT count(*) FROM posts p WHERE p.author_id=$1 AND p.published`, authorID).Scan(&total); err != nil {
		return nil, err
	}

	listQ := postSelect + ` WHERE p.author_id=$1 AND p.published ORDER BY p.created_at DESC LIMIT $2 OFFSET $3`
	items, err := r.queryPosts(ctx, listQ, authorID, size, page*size)
	if err != nil {
		return nil, err
	}
	return &model.Page[model.Post]{Items: items, TotalItems: total, Page: page, Size: size}, nil
}

// Delete removes the post; tag links, reactions and comments cascade.
func (r *PostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.exec(ctx, `DELETE FROM posts WHERE id=$1`, id)
}

// SetPublished flips the published flag.
func (r *PostRepo) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	return r.exec(ctx, `UPDATE posts SET published=$2, updated_at=now() WHERE id=$1`, id, published)
}

// IncrementViews bumps the view counter in a single atomic statement.
func (r *PostRepo) IncrementViews(ctx context.Context, slug string) error {
	return r.exec(ctx, `UPDATE posts SET views_count = views_count + 1 WHERE slug=$1`, slug)
}

// ToggleReaction applies one like/dislike toggle inside a transaction. The
// post row is locked first so concurrent toggles on the same post serialize
// their counter updates and counters stay equal to membership set sizes.
func (r *PostRepo) ToggleReaction(ctx context.Context, slug string, userID uuid.UUID, kind model.ReactionKind) error {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var postID uuid.UUID
	if err := tx.QueryRow(ctx, `SELECT id FROM posts WHERE slug=$1 FOR UPDATE`, slug).Scan(&postID); err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return errs.ErrNotFound
	}

	var liked, disliked bool
	const stateQ = `
SELECT EXISTS(SELECT 1 FROM post_likes WHERE post_id=$1 AND user_id=$2),
       EXISTS(SELECT 1 FROM post_dislikes WHERE post_id=$1 AND user_id=$2)`
	if err := tx.QueryRow(ctx, stateQ, postID, userID).Scan(&liked, &disliked); err != nil {
		return err
	}

	state := model.ReactionNone
	switch {
	case liked:
		state = model.ReactionLiked
	case disliked:
		state = model.ReactionDisliked
	}
	_, delta := state.Apply(kind)

	if delta.RemoveLike {
		if _, err := tx.Exec(ctx, `DELETE FROM post_likes WHERE post_id=$1 AND user_id=$2`, postID, userID); err != nil {
			return err
		}
	}
	if delta.RemoveDislike {
		if _, err := tx.Exec(ctx, `DELETE FROM post_dislikes WHERE post_id=$1 AND user_id=$2`, postID, userID); err != nil {
			return err
		}
	}
	if delta.AddLike {
		if _, err := tx.Exec(ctx, `INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)`, postID, userID); err != nil {
			return err
		}
	}
	if delta.AddDislike {
		if _, err := tx.Exec(ctx, `INSERT INTO post_dislikes (post_id, user_id) VALUES ($1, $2)`, postID, userID); err != nil {
			return err
		}
	}
	const counterQ = `
UPDATE posts SET likes_count = likes_count + $2, dislikes_count = dislikes_count + $3 WHERE id=$1`
	if _, err := tx.Exec(ctx, counterQ, postID, delta.LikesDelta, delta.DislikesDelta); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Count returns the total number of posts.
func (r *PostRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.Pool.QueryRow(ctx, `SELECT count(*) FROM posts`).Scan(&n)
	return n, err
}

// CountPublished returns the number of posts with the given published flag.
func (r *PostRepo) CountPublished(ctx context.Context, published bool) (int64, error) {
	var n int64
	err := r.db.Pool.QueryRow(ctx, `SELECT count(*) FROM posts WHERE published=$1`, published).Scan(&n)
	return n, err
}

// SumCounters returns platform-wide view/like/dislike totals.
func (r *PostRepo) SumCounters(ctx context.Context) (views, likes, dislikes int64, err error) {
	const q = `
SELECT COALESCE(SUM(views_count), 0), COALESCE(SUM(likes_count), 0), COALESCE(SUM(dislikes_count), 0)
FROM posts`
	err = r.db.Pool.QueryRow(ctx, q).Scan(&views, &likes, &dislikes)
	return
}

func (r *PostRepo) exec(ctx context.Context, q string, args ...any) error {
	tag, err := r.db.Pool.Exec(ctx, q, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *PostRepo) getOne(ctx context.Context, q string, arg any) (*model.Post, error) {
	var p model.Post
	if err := scanPost(r.db.Pool.QueryRow(ctx, q, arg), &p); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	return &p, nil
}

func (r *PostRepo) queryPosts(ctx context.Context, q string, args ...any) ([]model.Post, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Post
	for rows.Next() {
		var p model.Post
		if err := scanPost(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadTagsForAll(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostRepo) loadTags(ctx context.Context, p *model.Post) error {
	const q = `
SELECT t.id, t.name FROM tags t
JOIN post_tags pt ON pt.tag_id = t.id
WHERE pt.post_id = $1
ORDER BY t.name`
	rows, err := r.db.Pool.Query(ctx, q, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return err
		}
		p.Tags = append(p.Tags, t)
	}
	return rows.Err()
}

func (r *PostRepo) loadTagsForAll(ctx context.Context, posts []model.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(posts))
	byID := make(map[uuid.UUID]*model.Post, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
		byID[posts[i].ID] = &posts[i]
	}
	const q = `
SELECT pt.post_id, t.id, t.name FROM tags t
JOIN post_tags pt ON pt.tag_id = t.id
WHERE pt.post_id = ANY($1)
ORDER BY t.name`
	rows, err := r.db.Pool.Query(ctx, q, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var postID uuid.UUID
		var t model.Tag
		if err := rows.Scan(&postID, &t.ID, &t.Name); err != nil {
			return err
		}
		if p, ok := byID[postID]; ok {
			p.Tags = append(p.Tags, t)
		}
	}
	return rows.Err()
}

func (r *PostRepo) loadReactions(ctx context.Context, p *model.Post) error {
	const q = `
SELECT user_id, true FROM post_likes WHERE post_id=$1
UNION ALL
SELECT user_id, false FROM post_dislikes WHERE post_id=$1`
	rows, err := r.db.Pool.Query(ctx, q, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id uuid.UUID
		var like bool
		if err := rows.Scan(&id, &like); err != nil {
			return err
		}
		if like {
			p.LikedBy = append(p.LikedBy, id)
		} else {
			p.DislikedBy = append(p.DislikedBy, id)
		}
	}
	return rows.Err()
}

func scanPost(row pgx.Row, p *model.Post) error {
	var author model.User
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Slug, &p.Published,
		&p.LikesCount, &p.DislikesCount, &p.ViewsCount,
		&p.AuthorID, &p.CreatedAt, &p.UpdatedAt,
		&author.FirstName, &author.LastName, &author.Email, &author.AvatarURL)
	if err != nil {
		return err
	}
	author.ID = p.AuthorID
	p.Author = &author
	return nil
}
