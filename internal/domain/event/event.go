package event

import (
	"context"
	"time"

	"jobpulse/internal/common"
)

// Event is a job-fair event announced by an employer. Room allocation for the
// virtual sessions is handled by the events platform, not here.
type Event struct {
	ID          common.UUID `json:"id"`
	OwnerID     common.UUID `json:"owner_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	StartsAt    time.Time   `json:"starts_at"`
	CreatedAt   time.Time   `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, e Event) (*Event, error)
	ListUpcoming(ctx context.Context, asOf time.Time, limit int) ([]Event, error)
}
