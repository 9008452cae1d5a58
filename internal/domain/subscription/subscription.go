package subscription

import (
	"time"

	"jobpulse/internal/common"
)

type Tier string

const (
	TierBasic      Tier = "basic"
	TierPremium    Tier = "premium"
	TierEnterprise Tier = "enterprise"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type Subscription struct {
	ID        common.UUID `json:"id"`
	OwnerID   common.UUID `json:"owner_id"`
	Tier      Tier        `json:"tier"`
	Status    Status      `json:"status"`
	StartsAt  time.Time   `json:"starts_at"`
	EndsAt    time.Time   `json:"ends_at"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// ActiveAt requires both an active status and an unexpired validity window.
func (s Subscription) ActiveAt(now time.Time) bool {
	return s.Status == StatusActive && !now.After(s.EndsAt)
}

// PostingLimit is the number of concurrently active postings a tier allows.
func (t Tier) PostingLimit() int {
	switch t {
	case TierPremium:
		return 5
	case TierEnterprise:
		return 20
	default:
		return 1
	}
}
