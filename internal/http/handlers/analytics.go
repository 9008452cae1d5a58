package handlers

import (
	"net/http"
	"strings"

	"jobpulse/internal/app"
	"jobpulse/internal/common"
	"jobpulse/internal/http/middleware"
	"jobpulse/internal/http/response"
)

type AnalyticsHandler struct {
	analytics *app.AnalyticsService
}

func NewAnalyticsHandler(analytics *app.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

func (h *AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
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
	reportType := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("type")))
	switch reportType {
	case "", "basic":
		report, err := h.analytics.GetBasic(r.Context(), ownerID, id)
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, report)
	case "advanced":
		report, err := h.analytics.GetAdvanced(r.Context(), ownerID, id)
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, report)
	default:
		response.Error(w, common.NewValidationError("invalid analytics type", map[string]string{"type": "type must be basic or advanced"}))
	}
}
