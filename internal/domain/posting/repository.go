package posting

import (
	"context"
	"time"

	"jobpulse/internal/common"
)

type Repository interface {
	Create(ctx context.Context, p Posting) (*Posting, error)
	Update(ctx context.Context, p Posting) (*Posting, error)
	GetByOwner(ctx context.Context, ownerID, id common.UUID) (*Posting, error)
	GetByID(ctx context.Context, id common.UUID) (*Posting, error)
	ListByOwner(ctx context.Context, ownerID common.UUID) ([]Posting, error)
	Delete(ctx context.Context, ownerID, id common.UUID) error
	CountActiveByOwner(ctx context.Context, ownerID common.UUID) (int, error)
	SetStatus(ctx context.Context, ownerID, id common.UUID, status Status) (*Posting, error)

	// PublishWithinQuota re-checks the owner's active-posting count and flips the
	// posting to active inside a single transaction, so two concurrent publishes
	// cannot both slip past the quota ceiling.
	PublishWithinQuota(ctx context.Context, ownerID, id common.UUID, limit int) (*Posting, error)

	ListExpiringBetween(ctx context.Context, from, to time.Time) ([]Posting, error)
	ListExpired(ctx context.Context, asOf time.Time) ([]Posting, error)
	MarkExpired(ctx context.Context, id common.UUID) (*Posting, error)
	SearchSimilar(ctx context.Context, position, description string, excludeID common.UUID, limit int) ([]Posting, error)
}
