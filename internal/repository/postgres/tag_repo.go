package postgres

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/ramennsama/blog-api/internal/errs"
	"github.com/ramennsama/blog-api/internal/model"
)

// TagRepo implements TagRepository using PostgreSQL.
type TagRepo struct{ db *DB }

// NewTagRepo constructs a tag repository.
func NewTagRepo(db *DB) *TagRepo { return &TagRepo{db: db} }

// Create inserts a new tag row.
func (r *TagRepo) Create(ctx context.Context, t *model.Tag) error {
	_, err := r.db.Pool.Exec(ctx, `INSERT INTO tags (id, name) VALUES ($1, $2)`, t.ID, t.Name)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// GetByIDs selects the tags matching the given ids.
func (r *TagRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.query(ctx, `SELECT id, name FROM tags WHERE id = ANY($1) ORDER BY name`, ids)
}

// List selects all tags ordered by name.
func (r *TagRepo) List(ctx context.Context) ([]model.Tag, error) {
	return r.query(ctx, `SELECT id, name FROM tags ORDER BY name`)
}

// Delete removes the tag; post links cascade.
func (r *TagRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM tags WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Count returns the total number of tags.
func (r *TagRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.Pool.QueryRow(ctx, `SELECT count(*) FROM tags`).Scan(&n)
	return n, err
}

func (r *TagRepo) query(ctx context.Context, q string, args ...any) ([]model.Tag, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
