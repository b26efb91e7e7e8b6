package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid/v5"

	pkgcrypto "github.com/ramennsama/blog-api/internal/crypto"
	"github.com/ramennsama/blog-api/internal/errs"
	"github.com/ramennsama/blog-api/internal/model"
)

func hashedUser(t *testing.T, users *fakeUsers, email, password string, roles ...string) *model.User {
	t.Helper()
	u := seedUser(users, email, roles...)
	hash, err := pkgcrypto.HashPassword([]byte(password))
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	u.PwdHash = hash
	return u
}

func TestUsers_UpdatePassword(t *testing.T) {
	t.Parallel()
	users := newFakeUsers()
	s := NewUserService(users)
	u := hashedUser(t, users, "a@example.com", "secret1")

	cases := []struct {
		name string
		in   PasswordUpdateInput
	}{
		{"wrong old", PasswordUpdateInput{OldPassword: "nope", NewPassword: "secret2", ConfirmPassword: "secret2"}},
		{"confirm mismatch", PasswordUpdateInput{OldPassword: "secret1", NewPassword: "secret2", ConfirmPassword: "secret3"}},
		{"same as old", PasswordUpdateInput{OldPassword: "secret1", NewPassword: "secret1", ConfirmPassword: "secret1"}},
		{"too short", PasswordUpdateInput{OldPassword: "secret1", NewPassword: "short", ConfirmPassword: "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := s.UpdatePassword(context.Background(), u, tc.in); !errors.Is(err, errs.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}

	in := PasswordUpdateInput{OldPassword: "secret1", NewPassword: "secret2", ConfirmPassword: "secret2"}
	if err := s.UpdatePassword(context.Background(), u, in); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	stored := users.byEmail[u.Email]
	if !pkgcrypto.VerifyPassword([]byte("secret2"), stored.PwdHash) {
		t.Fatalf("stored hash does not match the new password")
	}
}

func TestUsers_UpdateAvatar(t *testing.T) {
	t.Parallel()
	users := newFakeUsers()
	s := NewUserService(users)
	u := seedUser(users, "a@example.com")

	got, err := s.UpdateAvatar(context.Background(), u, "https://cdn.example.com/a.png")
	if err != nil {
		t.Fatalf("UpdateAvatar: %v", err)
	}
	if got.AvatarURL != "https://cdn.example.com/a.png" {
		t.Fatalf("avatar = %q", got.AvatarURL)
	}
}

func TestUsers_DeleteSelf_LastAdmin(t *testing.T) {
	t.Parallel()
	users := newFakeUsers()
	s := NewUserService(users)
	admin := seedUser(users, "admin@example.com", model.RoleAdmin)

	if err := s.DeleteSelf(context.Background(), admin); !errors.Is(err, errs.ErrForbidden) {
		t.Fatalf("last admin self-delete: err = %v, want ErrForbidden", err)
	}

	other := seedUser(users, "second@example.com", model.RoleAdmin)
	if err := s.DeleteSelf(context.Background(), admin); err != nil {
		t.Fatalf("self-delete with another admin present: %v", err)
	}
	if _, err := users.GetByID(context.Background(), other.ID); err != nil {
		t.Fatalf("remaining admin must survive: %v", err)
	}
}

func TestAdmin_PromoteToAdmin(t *testing.T) {
	t.Parallel()
	users := newFakeUsers()
	s := NewAdminService(users, newFakePosts(), &fakeComments{}, &fakeTags{})
	u := seedUser(users, "a@example.com")

	got, err := s.PromoteToAdmin(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("PromoteToAdmin: %v", err)
	}
	if !got.HasRole(model.RoleAdmin) || !got.HasRole(model.RoleUser) {
		t.Fatalf("authorities = %v, want user+admin", got.Authorities)
	}

	// promoting again is rejected
	if _, err := s.PromoteToAdmin(context.Background(), u.ID); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if _, err := s.PromoteToAdmin(context.Background(), uuid.Must(uuid.NewV4())); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAdmin_DeleteUser(t *testing.T) {
	t.Parallel()
	users := newFakeUsers()
	s := NewAdminService(users, newFakePosts(), &fakeComments{}, &fakeTags{})
	admin := seedUser(users, "admin@example.com", model.RoleAdmin)
	u := seedUser(users, "a@example.com")

	if err := s.DeleteUser(context.Background(), admin.ID); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("admin target: err = %v, want ErrValidation", err)
	}
	if err := s.DeleteUser(context.Background(), u.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if err := s.DeleteUser(context.Background(), u.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAdmin_Dashboard(t *testing.T) {
	t.Parallel()
	users := newFakeUsers()
	posts := newFakePosts()
	s := NewAdminService(users, posts, &fakeComments{}, &fakeTags{})
	seedUser(users, "a@example.com")

	id := uuid.Must(uuid.NewV4())
	posts.byID[id] = &model.Post{ID: id, Published: true, ViewsCount: 7, LikesCount: 2, DislikesCount: 1}
	draft := uuid.Must(uuid.NewV4())
	posts.byID[draft] = &model.Post{ID: draft, Published: false}

	st, err := s.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if st.TotalPosts != 2 || st.PublishedPosts != 1 || st.DraftPosts != 1 {
		t.Fatalf("post counts = %d/%d/%d", st.TotalPosts, st.PublishedPosts, st.DraftPosts)
	}
	if st.TotalUsers != 1 {
		t.Fatalf("TotalUsers = %d", st.TotalUsers)
	}
	if st.TotalViews != 7 || st.TotalLikes != 2 || st.TotalDislikes != 1 {
		t.Fatalf("sums = %d/%d/%d", st.TotalViews, st.TotalLikes, st.TotalDislikes)
	}
}
