package httpapi

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"

	"github.com/ramennsama/blog-api/internal/errs"
	"github.com/ramennsama/blog-api/internal/service"
)

// Handlers holds the domain services behind the HTTP surface.
type Handlers struct {
	auth     service.AuthService
	posts    service.PostService
	comments *service.CommentService
	tags     *service.TagService
	users    *service.UserService
	admin    *service.AdminService
}

// NewHandlers constructs the handler set.
func NewHandlers(auth service.AuthService, posts service.PostService,
	comments *service.CommentService, tags *service.TagService,
	users *service.UserService, admin *service.AdminService) *Handlers {
	return &Handlers{auth: auth, posts: posts, comments: comments, tags: tags, users: users, admin: admin}
}

// ----- auth -----

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondErr(w, fmt.Errorf("%w: invalid body", errs.ErrValidation))
		return
	}
	u, err := h.auth.Register(r.Context(), in)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toUserResponse(u))
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondErr(w, fmt.Errorf("%w: invalid body", errs.ErrValidation))
		return
	}
	tok, err := h.auth.LoginWithIP(r.Context(), in.Email, in.Password, remoteIP(r))
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, jwtResponse{Token: tok})
}

func (h *Handlers) authInfo(w http.ResponseWriter, r *http.Request) {
	u, ok := PrincipalFromCtx(r.Context())
	if !ok {
		respondErr(w, errs.ErrUnauthorized)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(u))
}

// ----- posts -----

func (h *Handlers) listPosts(w http.ResponseWriter, r *http.Request) {
	page, size, sortBy := pagination(r)
	res, err := h.posts.List(r.Context(), page, size, sortBy, true)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toPostPage(res))
}

// getPost increments the view counter as a side effect of the detail read.
func (h *Handlers) getPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if err := h.posts.IncrementViews(r.Context(), slug); err != nil {
		respondErr(w, err)
		return
	}
	p, err := h.posts.GetBySlug(r.Context(), slug)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toPostResponse(p))
}

func (h *Handlers) listPostsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.FromString(chi.URLParam(r, "userId"))
	if err != nil {
		respondErr(w, fmt.Errorf("%w: invalid user id", errs.ErrValidation))
		return
	}
	page, size, _ := pagination(r)
	res, err := h.posts.ListByUser(r.Context(), userID, page, size)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toPostPage(res))
}

func (h *Handlers) createPost(w http.ResponseWriter, r *http.Request) {
	u, ok := PrincipalFromCtx(r.Context())
	if !ok {
		respondErr(w, errs.ErrUnauthorized)
		return
	}
	var in service.PostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondErr(w, fmt.Errorf("%w: invalid body", errs.ErrValidation))
		return
	}
	p, err := h.posts.Create(r.Context(), in, u.Email)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toPostResponse(p))
}

func (h *Handlers) deletePost(w http.ResponseWriter, r *http.Request) {
	u, ok := PrincipalFromCtx(r.Context())
	if !ok {
		respondErr(w, errs.ErrUnauthorized)
		return
	}
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, fmt.Errorf("%w: invalid post id", errs.ErrValidation))
		return
	}
	if err := h.posts.Delete(r.Context(), id, u); err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) likePost(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, true)
}

func (h *Handlers) dislikePost(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, false)
}

// react toggles the reaction and returns the refreshed post.
func (h *Handlers) react(w http.ResponseWriter, r *http.Request, like bool) {
	u, ok := PrincipalFromCtx(r.Context())
	if !ok {
		respondErr(w, errs.ErrUnauthorized)
		return
	}
	slug := chi.URLParam(r, "slug")
	var err error
	if like {
		err = h.posts.ToggleLike(r.Context(), slug, u.Email)
	} else {
		err = h.posts.ToggleDislike(r.Context(), slug, u.Email)
	}
	if err != nil {
		respondErr(w, err)
		return
	}
	p, err := h.posts.GetBySlug(r.Context(), slug)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toPostResponse(p))
}

// ----- comments -----

func (h *Handlers) createComment(w http.ResponseWriter, r *http.Request) {
	u, ok := PrincipalFromCtx(r.Context())
	if !ok {
		respondErr(w, errs.ErrUnauthorized)
		return
	}
	var in struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondErr(w, fmt.Errorf("%w: invalid body", errs.ErrValidation))
		return
	}
	c, err := h.comments.Create(r.Context(), chi.URLParam(r, "slug"), in.Content, u)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toCommentResponse(c, false))
}

func (h *Handlers) listComments(w http.ResponseWriter, r *http.Request) {
	cs, err := h.comments.ListByPost(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondErr(w, err)
		return
	}
	out := make([]commentResponse, 0, len(cs))
	for i := range cs {
		out = append(out, toCommentResponse(&cs[i], false))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handlers) deleteComment(w http.ResponseWriter, r *http.Request) {
	u, ok := PrincipalFromCtx(r.Context())
	if !ok {
		respondErr(w, errs.ErrUnauthorized)
		return
	}
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, fmt.Errorf("%w: invalid comment id", errs.ErrValidation))
		return
	}
	if err := h.comments.Delete(r.Context(), id, u); err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ----- tags -----

func (h *Handlers) listTags(w http.ResponseWriter, r *http.Request) {
	ts, err := h.tags.List(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	out := make([]tagResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, tagResponse{ID: t.ID, Name: t.Name})
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handlers) createTag(w http.ResponseWriter, r *http.Request) {
	t, err := h.tags.Create(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, tagResponse{ID: t.ID, Name: t.Name})
}

func (h *Handlers) deleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, fmt.Errorf("%w: invalid tag id", errs.ErrValidation))
		return
	}
	if err := h.tags.Delete(r.Context(), id); err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ----- users -----

func (h *Handlers) userInfo(w http.ResponseWriter, r *http.Request) {
	h.authInfo(w, r)
}

func (h *Handlers) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.FromString(chi.URLParam(r, "userId"))
	if err != nil {
		respondErr(w, fmt.Errorf("%w: invalid user id", errs.ErrValidation))
		return
	}
	u, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(u))
}

func (h *Handlers) updatePassword(w http.ResponseWriter, r *http.Request) {
	u, ok := PrincipalFromCtx(r.Context())
	if !ok {
		respondErr(w, errs.ErrUnauthorized)
		return
	}
	var in service.PasswordUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondErr(w, fmt.Errorf("%w: invalid body", errs.ErrValidation))
		return
	}
	if err := h.users.UpdatePassword(r.Context(), u, in); err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) updateAvatar(w http.ResponseWriter, r *http.Request) {
	u, ok := PrincipalFromCtx(r.Context())
	if !ok {
		respondErr(w, errs.ErrUnauthorized)
		return
	}
	var in struct {
		AvatarURL string `json:"avatarUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondErr(w, fmt.Errorf("%w: invalid body", errs.ErrValidation))
		return
	}
	fresh, err := h.users.UpdateAvatar(r.Context(), u, in.AvatarURL)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(fresh))
}

// ----- helpers -----

func pagination(r *http.Request) (page, size int, sortBy string) {
	q := r.URL.Query()
	page, _ = strconv.Atoi(q.Get("page"))
	size, err := strconv.Atoi(q.Get("size"))
	if err != nil || size == 0 {
		size = 10
	}
	sortBy = q.Get("sort")
	if sortBy == "" {
		sortBy = "createdAt"
	}
	return page, size, sortBy
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
