package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"forum/internal/services"
)

// EventHandler exposes the recent activity log.
type EventHandler struct {
	service services.EventServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider) *EventHandler {
	return &EventHandler{service: service}
}

// Recent handles the request to get the most recent activity events.
func (h *EventHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	events, err := h.service.Recent(limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list events")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondJSON(w, http.StatusOK, events)
}
