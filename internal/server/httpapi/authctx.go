// Package httpapi exposes the blog platform over HTTP: routing, the
// authentication filter, the authorization policy and request handlers.
package httpapi

import (
	"context"

	"github.com/ramennsama/blog-api/internal/model"
)

type ctxKey string

const principalKey ctxKey = "blog.principal"

// WithPrincipal stores the authenticated user in the request context. The
// identity is always passed explicitly this way, never via ambient state.
func WithPrincipal(ctx context.Context, u *model.User) context.Context {
	return context.WithValue(ctx, principalKey, u)
}

// PrincipalFromCtx fetches the authenticated user from context.
func PrincipalFromCtx(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(principalKey).(*model.User)
	return u, ok && u != nil
}
