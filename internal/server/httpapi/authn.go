package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/ramennsama/blog-api/internal/errs"
	"github.com/ramennsama/blog-api/internal/model"
	"github.com/ramennsama/blog-api/internal/token"
)

const bearerPrefix = "Bearer "

// PrincipalSource resolves a token subject to a live principal.
type PrincipalSource interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// Authenticator is the once-per-request authentication filter. It validates
// bearer tokens and binds the resolved principal to the request context;
// authorization happens separately in Policy.
type Authenticator struct {
	tokens *token.Service
	users  PrincipalSource
}

// NewAuthenticator constructs the authentication filter.
func NewAuthenticator(tokens *token.Service, users PrincipalSource) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// Middleware implements the filter. Public paths are checked before any token
// parsing so anonymous traffic to public resources is never rejected here.
// An expired token short-circuits with a plain 401; any other extraction
// failure forwards the request unauthenticated and lets the policy decide.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r.Method, r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			next.ServeHTTP(w, r)
			return
		}

		subject, err := a.tokens.ExtractSubject(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			if errors.Is(err, errs.ErrTokenExpired) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte("JWT expired"))
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		if _, bound := PrincipalFromCtx(r.Context()); !bound {
			u, err := a.users.GetByEmail(r.Context(), subject)
			if err == nil && u.Enabled && a.tokens.IsValid(strings.TrimPrefix(header, bearerPrefix), u) {
				r = r.WithContext(WithPrincipal(r.Context(), u))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// publicPrefixes are path sections served without authentication.
var publicPrefixes = []string{
	"/static", "/css", "/js", "/images", "/assets",
	"/swagger-ui", "/v3/api-docs", "/docs", "/actuator",
}

// publicSuffixes are static asset extensions served without authentication.
var publicSuffixes = []string{
	".html", ".css", ".js", ".ico", ".png", ".jpg", ".svg", ".woff", ".woff2", ".ttf",
}

// isPublicPath reports whether the filter skips the request entirely.
func isPublicPath(method, path string) bool {
	switch path {
	case "/", "/health", "/index.html", "/login.html", "/register.html",
		"/api/auth/register", "/api/auth/login":
		return true
	}
	if method == http.MethodGet {
		if (path == "/api/posts" || strings.HasPrefix(path, "/api/posts/")) &&
			!strings.HasPrefix(path, "/api/posts/admin") {
			return true
		}
		if path == "/api/tags" || strings.HasPrefix(path, "/api/tags/") {
			return true
		}
		// single-user public lookup: /api/users/{id}, one extra segment only
		if rest, ok := strings.CutPrefix(path, "/api/users/"); ok &&
			rest != "" && rest != "info" && !strings.Contains(rest, "/") {
			return true
		}
	}
	for _, p := range publicPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	for _, s := range publicSuffixes {
		if strings.HasSuffix(path, s) {
			return true
		}
	}
	return false
}
