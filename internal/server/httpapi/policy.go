package httpapi

import (
	"net/http"
	"strings"

	"github.com/ramennsama/blog-api/internal/model"
)

// requirement is what a rule demands from the caller.
type requirement int

const (
	public requirement = iota
	authenticated
	adminOnly
)

// rule binds an HTTP method (empty = any) and a path pattern to a
// requirement. Patterns support exact segments, `*` (one segment), a
// `*.ext` suffix segment, and a trailing `**` (zero or more segments).
type rule struct {
	method  string
	pattern string
	require requirement
}

// Policy is a static ordered rule table evaluated top to bottom; the first
// matching rule wins, so order is part of the contract.
type Policy struct {
	rules []rule
}

// DefaultPolicy returns the platform's access rule table.
func DefaultPolicy() *Policy {
	return &Policy{rules: []rule{
		// frontend assets
		{"", "/", public},
		{"", "/index.html", public},
		{"", "/login.html", public},
		{"", "/register.html", public},
		{"", "/favicon.ico", public},
		{"", "/assets/**", public},
		{"", "/static/**", public},
		{"", "/css/**", public},
		{"", "/js/**", public},
		{"", "/images/**", public},
		{"", "/*.html", public},

		// liveness
		{http.MethodGet, "/health", public},

		// auth
		{"", "/api/auth/register", public},
		{"", "/api/auth/login", public},

		// public reads; deliberately one segment wide so the admin
		// listing below stays out of reach
		{http.MethodGet, "/api/posts", public},
		{http.MethodGet, "/api/posts/user/*", public},
		{http.MethodGet, "/api/posts/*", public},
		{http.MethodGet, "/api/posts/*/comments", public},
		{http.MethodGet, "/api/tags", public},
		{http.MethodGet, "/api/tags/*", public},
		{http.MethodGet, "/api/users/*", public},

		// docs
		{"", "/docs", public},
		{"", "/swagger-ui/**", public},
		{"", "/v3/api-docs/**", public},
		{"", "/swagger-resources/**", public},
		{"", "/webjars/**", public},

		// admin
		{"", "/api/admin/**", adminOnly},
		{"", "/api/posts/admin/**", adminOnly},
		{http.MethodPut, "/api/posts/*/approve", adminOnly},
		{http.MethodPut, "/api/posts/*/unpublish", adminOnly},
		{http.MethodPost, "/api/tags/**", adminOnly},
		{http.MethodDelete, "/api/tags/**", adminOnly},

		// authenticated mutations
		{http.MethodPost, "/api/posts", authenticated},
		{http.MethodDelete, "/api/posts/**", authenticated},
		{http.MethodPost, "/api/posts/*/like", authenticated},
		{http.MethodPost, "/api/posts/*/dislike", authenticated},
		{http.MethodPost, "/api/posts/*/comments", authenticated},
		{http.MethodDelete, "/api/posts/*/comments/**", authenticated},
		{"", "/api/auth/info", authenticated},
		{"", "/api/users/**", authenticated},

		// fallback
		{"", "/**", authenticated},
	}}
}

// Middleware enforces the rule table after the authentication filter has
// run. Unauthenticated access to a protected rule yields the fixed 401 JSON
// body; an authenticated caller lacking the capability yields 403.
func (p *Policy) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch p.requirementFor(r.Method, r.URL.Path) {
		case public:
			next.ServeHTTP(w, r)
		case authenticated:
			if _, ok := PrincipalFromCtx(r.Context()); !ok {
				writeUnauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		case adminOnly:
			u, ok := PrincipalFromCtx(r.Context())
			if !ok {
				writeUnauthorized(w)
				return
			}
			if !u.HasRole(model.RoleAdmin) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		}
	})
}

func (p *Policy) requirementFor(method, path string) requirement {
	for _, rl := range p.rules {
		if rl.method != "" && rl.method != method {
			continue
		}
		if matchPath(rl.pattern, path) {
			return rl.require
		}
	}
	// table ends in a catch-all, but default closed regardless
	return authenticated
}

// writeUnauthorized emits the fixed JSON body of the 401 entry point.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"status":401,"error":"Unauthorized","message":"JWT expired or invalid"}`))
}

// matchPath matches a path against a pattern segment by segment. A trailing
// `**` matches any remainder, including none.
func matchPath(pattern, path string) bool {
	pat := strings.Split(strings.TrimPrefix(pattern, "/"), "/")
	segs := strings.Split(strings.TrimPrefix(path, "/"), "/")

	for i, p := range pat {
		if p == "**" {
			return true
		}
		if i >= len(segs) {
			return false
		}
		s := segs[i]
		switch {
		case p == "*":
			if s == "" {
				return false
			}
		case strings.HasPrefix(p, "*"):
			if !strings.HasSuffix(s, p[1:]) || s == p[1:] {
				return false
			}
		default:
			if p != s {
				return false
			}
		}
	}
	return len(pat) == len(segs)
}
