package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"socialite/internal/httputil"
	"socialite/internal/model"
	"socialite/internal/transport/http/middleware"
)

// idParam parses a numeric URL parameter, writing a 400 on failure.
func idParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		httputil.WriteBadRequest(w, "Invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}

// viewer returns the optional authenticated user as a nullable ID.
func viewer(r *http.Request) *int64 {
	if id, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		return &id
	}
	return nil
}

// pagination parses limit/offset, writing a 400 on malformed values.
func pagination(w http.ResponseWriter, r *http.Request) (limit, offset int, ok bool) {
	limit, offset, ok = httputil.ParsePagination(r)
	if !ok {
		httputil.WriteBadRequest(w, model.ErrInvalidPagination.Error())
	}
	return limit, offset, ok
}
