package http

import (
	"net/http"
)

func (s *Server) handleCreateInvestment(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	var req investmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	inv, err := req.toDomain()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	created, err := s.investments.Create(r.Context(), session, inv)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashboard.Invalidate(session)
	writeJSON(w, http.StatusCreated, toHoldingResponse(holdingOf(*created)))
}

func (s *Server) handleGetInvestment(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	h, err := s.investments.Get(r.Context(), session, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toHoldingResponse(*h))
}

func (s *Server) handleListInvestments(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	holdings, err := s.investments.List(r.Context(), session)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := make([]holdingResponse, 0, len(holdings))
	for _, h := range holdings {
		resp = append(resp, toHoldingResponse(h))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInvestmentSummary(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	summary, err := s.investments.Summary(r.Context(), session)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPortfolioResponse(summary))
}

func (s *Server) handleUpdateInvestment(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req investmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	inv, err := req.toDomain()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	inv.ID = id

	updated, err := s.investments.Update(r.Context(), session, inv)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashboard.Invalidate(session)
	writeJSON(w, http.StatusOK, toHoldingResponse(holdingOf(*updated)))
}

func (s *Server) handleDeleteInvestment(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.investments.Delete(r.Context(), session, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashboard.Invalidate(session)
	w.WriteHeader(http.StatusNoContent)
}
