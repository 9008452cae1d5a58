package posting

import (
	"time"

	"jobpulse/internal/common"
)

type Status string

const (
	StatusDraft   Status = "draft"
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
)

type Posting struct {
	ID             common.UUID `json:"id"`
	OwnerID        common.UUID `json:"owner_id"`
	CompanyName    string      `json:"company_name"`
	Position       string      `json:"position"`
	Location       string      `json:"location"`
	Description    string      `json:"description"`
	Qualifications string      `json:"qualifications"`
	Deadline       time.Time   `json:"deadline"`
	Status         Status      `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// CanTransition reports whether a posting may move from one status to another.
// Expired is terminal; a fresh posting has to be created instead.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusDraft:
		return to == StatusActive
	case StatusActive:
		return to == StatusDraft || to == StatusExpired
	default:
		return false
	}
}
