package handlers

import (
	"net/http"
	"strings"

	"jobpulse/internal/app"
	"jobpulse/internal/common"
	"jobpulse/internal/http/response"
)

type AdminHandler struct {
	sweeper *app.SweeperService
}

func NewAdminHandler(sweeper *app.SweeperService) *AdminHandler {
	return &AdminHandler{sweeper: sweeper}
}

type expiryRequest struct {
	Action string `json:"action"`
}

// TriggerExpiry lets the scheduler (or an operator) run a sweep outside the
// regular interval.
func (h *AdminHandler) TriggerExpiry(w http.ResponseWriter, r *http.Request) {
	var req expiryRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	switch strings.ToLower(strings.TrimSpace(req.Action)) {
	case "check":
		result, err := h.sweeper.CheckExpiring(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, result)
	case "process":
		result, err := h.sweeper.ProcessExpired(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, result)
	default:
		response.Error(w, common.NewError(common.CodeInvalidAction, "action must be check or process", nil))
	}
}
