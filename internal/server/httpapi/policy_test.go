package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofrs/uuid/v5"

	"github.com/ramennsama/blog-api/internal/model"
)

func TestMatchPath(t *testing.T) {
	t.Parallel()
	cases := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/api/posts", "/api/posts", true},
		{"/api/posts", "/api/posts/x", false},
		{"/api/posts/*", "/api/posts/my-slug", true},
		{"/api/posts/*", "/api/posts/my-slug/comments", false},
		{"/api/posts/*/comments", "/api/posts/my-slug/comments", true},
		{"/api/posts/**", "/api/posts", true},
		{"/api/posts/**", "/api/posts/a/b/c", true},
		{"/api/admin/**", "/api/other", false},
		{"/*.html", "/login.html", true},
		{"/*.html", "/login.css", false},
		{"/*.html", "/.html", false},
		{"/**", "/anything/at/all", true},
	}
	for _, tc := range cases {
		if got := matchPath(tc.pattern, tc.path); got != tc.want {
			t.Fatalf("matchPath(%q, %q) = %v, want %v", tc.pattern, tc.path, got, tc.want)
		}
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doPolicy(t *testing.T, method, path string, principal *model.User) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if principal != nil {
		req = req.WithContext(WithPrincipal(req.Context(), principal))
	}
	rec := httptest.NewRecorder()
	DefaultPolicy().Middleware(okHandler()).ServeHTTP(rec, req)
	return rec
}

func testPrincipal(roles ...string) *model.User {
	return &model.User{
		ID:          uuid.Must(uuid.NewV4()),
		Email:       "p@example.com",
		Authorities: append([]string{model.RoleUser}, roles...),
		Enabled:     true,
	}
}

func TestPolicy_PublicReads(t *testing.T) {
	t.Parallel()
	for _, path := range []string{
		"/api/posts",
		"/api/posts/my-slug",
		"/api/posts/my-slug/comments",
		"/api/posts/user/3f2a", // any single segment
		"/api/tags",
		"/api/users/3f2a",
		"/login.html",
	} {
		if rec := doPolicy(t, http.MethodGet, path, nil); rec.Code != http.StatusOK {
			t.Fatalf("GET %s anonymous: status = %d, want 200", path, rec.Code)
		}
	}
}

// The liveness endpoint must answer anonymous probes.
func TestPolicy_HealthIsPublic(t *testing.T) {
	t.Parallel()
	if rec := doPolicy(t, http.MethodGet, "/health", nil); rec.Code != http.StatusOK {
		t.Fatalf("GET /health anonymous: status = %d, want 200", rec.Code)
	}
}

func TestPolicy_AnonymousMutationRejected(t *testing.T) {
	t.Parallel()
	rec := doPolicy(t, http.MethodPost, "/api/posts", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	var body struct {
		Status  int    `json:"status"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body.Status != 401 || body.Error != "Unauthorized" || body.Message != "JWT expired or invalid" {
		t.Fatalf("body = %+v", body)
	}
}

func TestPolicy_AuthenticatedMutations(t *testing.T) {
	t.Parallel()
	u := testPrincipal()
	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/posts"},
		{http.MethodPost, "/api/posts/my-slug/like"},
		{http.MethodPost, "/api/posts/my-slug/comments"},
		{http.MethodDelete, "/api/posts/my-slug/comments/42"},
		{http.MethodGet, "/api/auth/info"},
		{http.MethodPut, "/api/users/password"},
	} {
		if rec := doPolicy(t, tc.method, tc.path, u); rec.Code != http.StatusOK {
			t.Fatalf("%s %s as user: status = %d, want 200", tc.method, tc.path, rec.Code)
		}
	}
}

func TestPolicy_AdminRules(t *testing.T) {
	t.Parallel()
	user := testPrincipal()
	admin := testPrincipal(model.RoleAdmin)

	cases := []struct{ method, path string }{
		{http.MethodGet, "/api/admin/dashboard"},
		{http.MethodGet, "/api/posts/admin/all"},
		{http.MethodPut, "/api/posts/42/approve"},
		{http.MethodPut, "/api/posts/42/unpublish"},
		{http.MethodPost, "/api/tags"},
		{http.MethodDelete, "/api/tags/42"},
		{http.MethodDelete, "/api/admin/42"},
	}
	for _, tc := range cases {
		if rec := doPolicy(t, tc.method, tc.path, nil); rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s anonymous: status = %d, want 401", tc.method, tc.path, rec.Code)
		}
		if rec := doPolicy(t, tc.method, tc.path, user); rec.Code != http.StatusForbidden {
			t.Fatalf("%s %s as user: status = %d, want 403", tc.method, tc.path, rec.Code)
		}
		if rec := doPolicy(t, tc.method, tc.path, admin); rec.Code != http.StatusOK {
			t.Fatalf("%s %s as admin: status = %d, want 200", tc.method, tc.path, rec.Code)
		}
	}
}

// The admin listing must not be shadowed by the public post read rules.
func TestPolicy_AdminListingNotPublic(t *testing.T) {
	t.Parallel()
	if rec := doPolicy(t, http.MethodGet, "/api/posts/admin/all", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestPolicy_FallbackRequiresAuth(t *testing.T) {
	t.Parallel()
	if rec := doPolicy(t, http.MethodGet, "/api/unknown/route", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if rec := doPolicy(t, http.MethodGet, "/api/unknown/route", testPrincipal()); rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
