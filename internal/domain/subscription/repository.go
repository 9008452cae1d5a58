package subscription

import (
	"context"

	"jobpulse/internal/common"
)

type Repository interface {
	// GetByOwner returns the owner's most recent subscription row, or a
	// not-found error when the owner never subscribed.
	GetByOwner(ctx context.Context, ownerID common.UUID) (*Subscription, error)
}
