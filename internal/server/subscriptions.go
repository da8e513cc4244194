package server

import (
	"net/http"

	"github.com/bedolaga/remnawave-admin-bff/pkg/services"
)

func (s *Server) handleSubscriptionsList(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := parsePagination(w, r)
	if !ok {
		return
	}
	userID, ok := parseOptionalInt64(w, r, "user_id")
	if !ok {
		return
	}
	isTrial, ok := parseOptionalBool(w, r, "isTrial")
	if !ok {
		return
	}

	resp, err := s.deps.Subscriptions.List(r.Context(), services.SubscriptionListFilter{
		Limit:   limit,
		Offset:  offset,
		Status:  r.URL.Query().Get("status"),
		UserID:  userID,
		IsTrial: isTrial,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubscriptionsGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	resp, err := s.deps.Subscriptions.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubscriptionsUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req services.SubscriptionUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := s.deps.Subscriptions.Update(r.Context(), id, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
