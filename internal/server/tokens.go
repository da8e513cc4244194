package server

import (
	"net/http"

	"github.com/bedolaga/remnawave-admin-bff/pkg/services"
)

func (s *Server) handleTokensList(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := parsePagination(w, r)
	if !ok {
		return
	}

	resp, err := s.deps.Tokens.List(r.Context(), services.TokenListFilter{
		Limit:  limit,
		Offset: offset,
		Search: r.URL.Query().Get("search"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTokensCreate(w http.ResponseWriter, r *http.Request) {
	var req services.TokenCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := s.deps.Tokens.Create(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleTokensRevoke(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	resp, err := s.deps.Tokens.Revoke(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
