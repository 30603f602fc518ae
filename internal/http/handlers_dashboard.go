package http

import (
	"net/http"
)

// handleDashboard serves the aggregate view. Results come from a short-lived
// per-user cache that write handlers invalidate.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	summary, err := s.dashboard.Summary(r.Context(), session)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDashboardResponse(summary))
}
