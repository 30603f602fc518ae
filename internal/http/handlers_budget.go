package http

import (
	"net/http"
)

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	var req budgetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b, err := req.toDomain()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	created, err := s.budgets.Create(r.Context(), session, b)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashboard.Invalidate(session)
	writeJSON(w, http.StatusCreated, toBudgetResponse(*created))
}

// handleEvaluateBudget returns the budget with its report computed from the
// expenses of its category and window.
func (s *Server) handleEvaluateBudget(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	overview, err := s.budgets.Evaluate(r.Context(), session, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetOverviewResponse(*overview))
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	overviews, err := s.budgets.Overview(r.Context(), session)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := make([]budgetOverviewResponse, 0, len(overviews))
	for _, o := range overviews {
		resp = append(resp, toBudgetOverviewResponse(o))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req budgetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b, err := req.toDomain()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	b.ID = id

	updated, err := s.budgets.Update(r.Context(), session, b)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashboard.Invalidate(session)
	writeJSON(w, http.StatusOK, toBudgetResponse(*updated))
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.budgets.Delete(r.Context(), session, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashboard.Invalidate(session)
	w.WriteHeader(http.StatusNoContent)
}
