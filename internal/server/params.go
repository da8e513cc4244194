package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const (
	defaultLimit = 20
	maxLimit     = 200
)

// parsePagination validates the limit/offset query parameters: limit must
// be in [1,200] (default 20), offset must be >= 0 (default 0). A false
// return means a 422 has already been written.
func parsePagination(w http.ResponseWriter, r *http.Request) (limit, offset int, ok bool) {
	limit = defaultLimit
	offset = 0

	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > maxLimit {
			writeDetail(w, http.StatusUnprocessableEntity, "limit must be an integer between 1 and 200")
			return 0, 0, false
		}
		limit = v
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			writeDetail(w, http.StatusUnprocessableEntity, "offset must be a non-negative integer")
			return 0, 0, false
		}
		offset = v
	}

	return limit, offset, true
}

// parseID reads the {id} route parameter. A false return means a 422 has
// already been written.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		writeDetail(w, http.StatusUnprocessableEntity, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

// parseOptionalInt64 reads an optional integer query parameter.
func parseOptionalInt64(w http.ResponseWriter, r *http.Request, name string) (*int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, name+" must be an integer")
		return nil, false
	}
	return &v, true
}

// parseOptionalBool reads an optional boolean query parameter.
func parseOptionalBool(w http.ResponseWriter, r *http.Request, name string) (*bool, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, name+" must be a boolean")
		return nil, false
	}
	return &v, true
}
