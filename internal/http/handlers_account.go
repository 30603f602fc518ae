package http

import (
	"net/http"
)

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	var req accountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	a, err := req.toDomain()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	created, err := s.accounts.Create(r.Context(), session, a)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashboard.Invalidate(session)
	writeJSON(w, http.StatusCreated, toAccountResponse(*created))
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	a, err := s.accounts.Get(r.Context(), session, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountResponse(*a))
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	accounts, err := s.accounts.List(r.Context(), session)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		resp = append(resp, toAccountResponse(a))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req accountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	a, err := req.toDomain()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	a.ID = id

	// Balance changes go through transfers; keep the stored balance.
	current, err := s.accounts.Get(r.Context(), session, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	a.Balance = current.Balance
	a.CreatedAt = current.CreatedAt

	updated, err := s.accounts.Update(r.Context(), session, a)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashboard.Invalidate(session)
	writeJSON(w, http.StatusOK, toAccountResponse(*updated))
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.accounts.Delete(r.Context(), session, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashboard.Invalidate(session)
	w.WriteHeader(http.StatusNoContent)
}
