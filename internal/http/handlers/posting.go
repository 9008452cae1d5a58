package handlers

import (
	"net/http"
	"time"

	"jobpulse/internal/app"
	"jobpulse/internal/domain/posting"
	"jobpulse/internal/http/middleware"
	"jobpulse/internal/http/response"
)

type PostingHandler struct {
	postings *app.PostingService
	boosts   *app.BoostService
}

func NewPostingHandler(postings *app.PostingService, boosts *app.BoostService) *PostingHandler {
	return &PostingHandler{postings: postings, boosts: boosts}
}

type postingRequest struct {
	CompanyName    string    `json:"company_name"`
	Position       string    `json:"position"`
	Location       string    `json:"location"`
	Description    string    `json:"description"`
	Qualifications string    `json:"qualifications"`
	Deadline       time.Time `json:"deadline"`
}

type postingUpdateRequest struct {
	CompanyName    *string    `json:"company_name"`
	Position       *string    `json:"position"`
	Location       *string    `json:"location"`
	Description    *string    `json:"description"`
	Qualifications *string    `json:"qualifications"`
	Deadline       *time.Time `json:"deadline"`
}

type boostRequest struct {
	Tier string `json:"tier"`
}

func (h *PostingHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req postingRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.postings.Create(r.Context(), ownerID, posting.Posting{
		CompanyName:    req.CompanyName,
		Position:       req.Position,
		Location:       req.Location,
		Description:    req.Description,
		Qualifications: req.Qualifications,
		Deadline:       req.Deadline,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *PostingHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.postings.List(r.Context(), ownerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *PostingHandler) Get(w http.ResponseWriter, r *http.Request) {
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
	item, err := h.postings.Get(r.Context(), ownerID, id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *PostingHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	var req postingUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.postings.Update(r.Context(), ownerID, id, app.PostingUpdate{
		CompanyName:    req.CompanyName,
		Position:       req.Position,
		Location:       req.Location,
		Description:    req.Description,
		Qualifications: req.Qualifications,
		Deadline:       req.Deadline,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *PostingHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	if err := h.postings.Delete(r.Context(), ownerID, id); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *PostingHandler) Publish(w http.ResponseWriter, r *http.Request) {
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
	updated, err := h.postings.Publish(r.Context(), ownerID, id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *PostingHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
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
	updated, err := h.postings.Unpublish(r.Context(), ownerID, id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *PostingHandler) Boost(w http.ResponseWriter, r *http.Request) {
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
	var req boostRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	receipt, err := h.boosts.Boost(r.Context(), ownerID, id, app.BoostTier(req.Tier))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, receipt)
}

// RecordView is public: candidates browsing the board hit it without any
// identity headers.
func (h *PostingHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	query := r.URL.Query()
	err = h.postings.RecordView(r.Context(), id, query.Get("source"), query.Get("device"), query.Get("location"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusAccepted, map[string]string{"status": "recorded"})
}
