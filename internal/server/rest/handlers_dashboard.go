package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *RESTServer) handleProjectStats(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	stats, err := s.dashboard.Stats(r.Context(), chi.URLParam(r, "projectID"), caller.User.Email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectStatsResponse(stats))
}
