package handlers

import (
	"net/http"
	"strconv"
	"time"

	"jobpulse/internal/app"
	"jobpulse/internal/domain/event"
	"jobpulse/internal/http/middleware"
	"jobpulse/internal/http/response"
)

type EventHandler struct {
	events *app.EventService
}

func NewEventHandler(events *app.EventService) *EventHandler {
	return &EventHandler{events: events}
}

type eventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at"`
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.events.Create(r.Context(), ownerID, event.Event{
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    req.StartsAt,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if value := r.URL.Query().Get("limit"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	items, err := h.events.ListUpcoming(r.Context(), limit)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
