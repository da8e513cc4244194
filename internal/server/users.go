package server

import (
	"net/http"

	"github.com/bedolaga/remnawave-admin-bff/pkg/services"
)

func (s *Server) handleUsersList(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := parsePagination(w, r)
	if !ok {
		return
	}
	promoGroupID, ok := parseOptionalInt64(w, r, "promoGroupId")
	if !ok {
		return
	}

	resp, err := s.deps.Users.List(r.Context(), services.UserListFilter{
		Limit:        limit,
		Offset:       offset,
		Status:       r.URL.Query().Get("status"),
		PromoGroupID: promoGroupID,
		Search:       r.URL.Query().Get("search"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUsersGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	resp, err := s.deps.Users.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUsersUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req services.UserUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := s.deps.Users.Update(r.Context(), id, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
