package http

import (
	"net/http"
	"strconv"
	"strings"

	"fintrack/internal/core"
)

func (s *Server) handleCreateBill(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	var req billRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b, err := req.toDomain()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	created, err := s.bills.Create(r.Context(), session, b)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashboard.Invalidate(session)
	writeJSON(w, http.StatusCreated, toBillResponse(*created))
}

func (s *Server) handleGetBill(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	b, err := s.bills.Get(r.Context(), session, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBillResponse(*b))
}

func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	bills, err := s.bills.List(r.Context(), session)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := make([]billResponse, 0, len(bills))
	for _, b := range bills {
		resp = append(resp, toBillResponse(b))
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleUpcomingBills lists active bills due within ?days (default 30).
func (s *Server) handleUpcomingBills(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	days := 0
	if v := strings.TrimSpace(r.URL.Query().Get("days")); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil || d < 1 || d > 365 {
			writeError(w, http.StatusBadRequest, "days must be between 1 and 365")
			return
		}
		days = d
	}

	bills, err := s.bills.Upcoming(r.Context(), session, days)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := make([]billResponse, 0, len(bills))
	for _, b := range bills {
		resp = append(resp, toBillResponse(b))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateBill(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req billRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b, err := req.toDomain()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	b.ID = id
	b.Active = true
	if b.ReminderDays == 0 {
		b.ReminderDays = core.DefaultReminderDays
	}

	updated, err := s.bills.Update(r.Context(), session, b)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashboard.Invalidate(session)
	writeJSON(w, http.StatusOK, toBillResponse(*updated))
}

func (s *Server) handlePayBill(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	b, err := s.bills.MarkPaid(r.Context(), session, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashboard.Invalidate(session)
	writeJSON(w, http.StatusOK, toBillResponse(*b))
}

func (s *Server) handleDeactivateBill(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	b, err := s.bills.Deactivate(r.Context(), session, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashboard.Invalidate(session)
	writeJSON(w, http.StatusOK, toBillResponse(*b))
}

func (s *Server) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.bills.Delete(r.Context(), session, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashboard.Invalidate(session)
	w.WriteHeader(http.StatusNoContent)
}
