package handlers

import (
	"net/http"
	"strconv"

	"jobpulse/internal/app"
	"jobpulse/internal/http/middleware"
	"jobpulse/internal/http/response"
)

type MatchingHandler struct {
	matching *app.MatchingService
}

func NewMatchingHandler(matching *app.MatchingService) *MatchingHandler {
	return &MatchingHandler{matching: matching}
}

func (h *MatchingHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	suggestions, err := h.matching.SuggestImprovements(r.Context(), ownerID, id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, suggestions)
}

func (h *MatchingHandler) Matches(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	limit := 10
	if value := r.URL.Query().Get("limit"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	ranked, err := h.matching.RankCandidates(r.Context(), ownerID, id, limit)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, ranked)
}

func (h *MatchingHandler) Broadcast(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	sent, err := h.matching.Broadcast(r.Context(), ownerID, id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]int{"notified": sent})
}
