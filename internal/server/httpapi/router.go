package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// NewRouter assembles the middleware chain and route table. The order is
// part of the design: recover, logging, CORS, then the authentication
// filter, then the authorization policy, then handlers.
func NewRouter(log *zap.Logger, authn *Authenticator, policy *Policy, h *Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(Recover(log))
	r.Use(Logging(log))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}).Handler)
	r.Use(authn.Middleware)
	r.Use(policy.Middleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.register)
			r.Post("/login", h.login)
			r.Get("/info", h.authInfo)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", h.listPosts)
			r.Post("/", h.createPost)
			r.Get("/admin/all", h.listAllPosts)
			r.Get("/user/{userId}", h.listPostsByUser)
			r.Delete("/{id}", h.deletePost)
			r.Put("/{id}/approve", h.approvePost)
			r.Put("/{id}/unpublish", h.unpublishPost)
			r.Get("/{slug}", h.getPost)
			r.Post("/{slug}/like", h.likePost)
			r.Post("/{slug}/dislike", h.dislikePost)
			r.Route("/{slug}/comments", func(r chi.Router) {
				r.Get("/", h.listComments)
				r.Post("/", h.createComment)
				r.Delete("/{id}", h.deleteComment)
			})
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", h.listTags)
			r.Post("/", h.createTag)
			r.Delete("/{id}", h.deleteTag)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/info", h.userInfo)
			r.Put("/password", h.updatePassword)
			r.Put("/avatar", h.updateAvatar)
			r.Get("/{userId}", h.getUser)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/dashboard", h.dashboard)
			r.Get("/users", h.listAllUsers)
			r.Get("/comments", h.listAllComments)
			r.Put("/{userId}/role", h.promoteUser)
			r.Delete("/{userId}", h.deleteUser)
		})
	})

	return r
}
