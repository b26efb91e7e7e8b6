package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/ramennsama/blog-api/internal/errs"
	"github.com/ramennsama/blog-api/internal/model"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

const userCols = `SELECT id, first_name, last_name, email, pwd_hash, authorities, enabled, avatar_url, created_at, updated_at FROM users`

func userRow(u *model.User) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{"id", "first_name", "last_name", "email", "pwd_hash", "authorities", "enabled", "avatar_url", "created_at", "updated_at"}).
		AddRow(u.ID, u.FirstName, u.LastName, u.Email, u.PwdHash, u.Authorities, u.Enabled, u.AvatarURL, now, now)
}

func TestUserRepo_Create_OK_and_UniqueViolation(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()
	u := &model.User{
		ID:          uuid.Must(uuid.NewV4()),
		FirstName:   "Ann",
		LastName:    "Lee",
		Email:       "ann@example.com",
		PwdHash:     []byte("h"),
		Authorities: []string{model.RoleUser},
		Enabled:     true,
	}

	// OK
	mock.ExpectExec(`INSERT INTO users \(id, first_name, last_name, email, pwd_hash, authorities, enabled, avatar_url\)`).
		WithArgs(u.ID, u.FirstName, u.LastName, u.Email, u.PwdHash, u.Authorities, u.Enabled, u.AvatarURL).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Create(ctx, u))

	// Unique violation on email
	mock.ExpectExec(`INSERT INTO users \(id, first_name, last_name, email, pwd_hash, authorities, enabled, avatar_url\)`).
		WithArgs(u.ID, u.FirstName, u.LastName, u.Email, u.PwdHash, u.Authorities, u.Enabled, u.AvatarURL).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	require.ErrorIs(t, r.Create(ctx, u), errs.ErrAlreadyExists)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()
	u := &model.User{
		ID:          uuid.Must(uuid.NewV4()),
		Email:       "ann@example.com",
		Authorities: []string{model.RoleUser, model.RoleAdmin},
		Enabled:     true,
	}

	mock.ExpectQuery(userCols + ` WHERE email=\$1`).
		WithArgs(u.Email).
		WillReturnRows(userRow(u))
	got, err := r.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.True(t, got.HasRole(model.RoleAdmin))

	mock.ExpectQuery(userCols + ` WHERE email=\$1`).
		WithArgs(u.Email).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetByEmail(ctx, u.Email)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUserRepo_CountAdmins(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM users WHERE \$1 = ANY\(authorities\)`).
		WithArgs(model.RoleAdmin).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))
	n, err := r.CountAdmins(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
}

func TestUserRepo_UpdateAuthorities_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	id := uuid.Must(uuid.NewV4())
	auth := []string{model.RoleUser, model.RoleAdmin}

	mock.ExpectExec(`UPDATE users SET authorities=\$2, updated_at=now\(\) WHERE id=\$1`).
		WithArgs(id, auth).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	require.ErrorIs(t, r.UpdateAuthorities(context.Background(), id, auth), errs.ErrNotFound)
}

func TestUserRepo_Delete(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	id := uuid.Must(uuid.NewV4())

	mock.ExpectExec(`DELETE FROM users WHERE id=\$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, r.Delete(context.Background(), id))

	mock.ExpectExec(`DELETE FROM users WHERE id=\$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.ErrorIs(t, r.Delete(context.Background(), id), errs.ErrNotFound)
}
