package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"

	"github.com/ramennsama/blog-api/internal/errs"
)

// Admin-only handlers. The policy layer guarantees the caller holds
// ROLE_ADMIN before any of these run.

func (h *Handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.Dashboard(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *Handlers) listAllUsers(w http.ResponseWriter, r *http.Request) {
	us, err := h.admin.ListUsers(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	out := make([]userResponse, 0, len(us))
	for i := range us {
		out = append(out, toUserResponse(&us[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handlers) listAllComments(w http.ResponseWriter, r *http.Request) {
	cs, err := h.admin.ListComments(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	out := make([]commentResponse, 0, len(cs))
	for i := range cs {
		out = append(out, toCommentResponse(&cs[i], true))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handlers) promoteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.FromString(chi.URLParam(r, "userId"))
	if err != nil {
		respondErr(w, fmt.Errorf("%w: invalid user id", errs.ErrValidation))
		return
	}
	u, err := h.admin.PromoteToAdmin(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(u))
}

func (h *Handlers) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.FromString(chi.URLParam(r, "userId"))
	if err != nil {
		respondErr(w, fmt.Errorf("%w: invalid user id", errs.ErrValidation))
		return
	}
	if err := h.admin.DeleteUser(r.Context(), id); err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) listAllPosts(w http.ResponseWriter, r *http.Request) {
	page, size, sortBy := pagination(r)
	res, err := h.posts.List(r.Context(), page, size, sortBy, false)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toPostPage(res))
}

func (h *Handlers) approvePost(w http.ResponseWriter, r *http.Request) {
	h.setPublished(w, r, true)
}

func (h *Handlers) unpublishPost(w http.ResponseWriter, r *http.Request) {
	h.setPublished(w, r, false)
}

func (h *Handlers) setPublished(w http.ResponseWriter, r *http.Request, published bool) {
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, fmt.Errorf("%w: invalid post id", errs.ErrValidation))
		return
	}
	if err := h.posts.SetPublished(r.Context(), id, published); err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
