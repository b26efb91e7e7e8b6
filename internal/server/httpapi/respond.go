package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ramennsama/blog-api/internal/errs"
)

type errorBody struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondErr maps sentinel errors to HTTP statuses. The 401 case reuses the
// entry point's fixed body.
func respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrUnauthorized),
		errors.Is(err, errs.ErrTokenExpired),
		errors.Is(err, errs.ErrTokenInvalid):
		writeUnauthorized(w)
	case errors.Is(err, errs.ErrForbidden):
		respondJSON(w, http.StatusForbidden, errorBody{http.StatusForbidden, "Forbidden", err.Error()})
	case errors.Is(err, errs.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorBody{http.StatusNotFound, "Not Found", err.Error()})
	case errors.Is(err, errs.ErrAlreadyExists):
		respondJSON(w, http.StatusConflict, errorBody{http.StatusConflict, "Conflict", err.Error()})
	case errors.Is(err, errs.ErrValidation):
		respondJSON(w, http.StatusBadRequest, errorBody{http.StatusBadRequest, "Bad Request", err.Error()})
	case errors.Is(err, errs.ErrRateLimited):
		respondJSON(w, http.StatusTooManyRequests, errorBody{http.StatusTooManyRequests, "Too Many Requests", "too many login attempts"})
	default:
		respondJSON(w, http.StatusInternalServerError, errorBody{http.StatusInternalServerError, "Internal Server Error", "internal error"})
	}
}
