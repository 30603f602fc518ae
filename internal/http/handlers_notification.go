package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
)

type notificationResponse struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func toNotificationResponse(n core.Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		Kind:      string(n.Kind),
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
	}
}

// handleListNotifications returns the newest notifications first. The
// optional limit parameter caps the page size.
func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 200 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 200")
			return
		}
		limit = n
	}

	notifications, err := s.repo.ListNotifications(r.Context(), session.UserID, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		resp = append(resp, toNotificationResponse(n))
	}
	writeJSON(w, http.StatusOK, resp)
}
