package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/bedolaga/remnawave-admin-bff/pkg/upstream"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeDetail writes an error body in the {"detail": "..."} shape the
// front-end expects.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeError maps a service error to a response: upstream errors pass
// through their status code and detail untouched, anything else is a 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ue *upstream.Error
	if errors.As(err, &ue) {
		writeDetail(w, ue.StatusCode, ue.Detail)
		return
	}
	s.logger.Error().
		Err(err).
		Str("request_id", RequestIDFromContext(r.Context())).
		Msg("unhandled service error")
	writeDetail(w, http.StatusInternalServerError, "internal server error")
}

// decodeBody decodes and validates a JSON request body. A false return
// means the response has already been written.
func decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return false
	}
	if err := validate.Struct(target); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return false
	}
	return true
}
