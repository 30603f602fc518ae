package http

import (
	"net/http"

	"fintrack/internal/core"
)

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	var req expenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	e, err := req.toDomain()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	created, err := s.expenses.Create(r.Context(), session, e)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashboard.Invalidate(session)
	writeJSON(w, http.StatusCreated, toExpenseResponse(*created))
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	e, err := s.expenses.Get(r.Context(), session, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponse(*e))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	expenses, err := s.expenses.List(r.Context(), session)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		resp = append(resp, toExpenseResponse(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req expenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	e, err := req.toDomain()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	e.ID = id

	updated, err := s.expenses.Update(r.Context(), session, e)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashboard.Invalidate(session)
	writeJSON(w, http.StatusOK, toExpenseResponse(*updated))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.expenses.Delete(r.Context(), session, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashboard.Invalidate(session)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := s.categories.Create(r.Context(), session, core.Category{
		Name: sanitizeInput(req.Name),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, categoryResponse{ID: created.ID, Name: created.Name})
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	categories, err := s.categories.List(r.Context(), session)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, categoryResponse{ID: c.ID, Name: c.Name})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.categories.Delete(r.Context(), session, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
