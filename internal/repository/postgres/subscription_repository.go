package postgres

import (
	"context"
	"database/sql"
	"errors"

	"jobpulse/internal/common"
	"jobpulse/internal/domain/subscription"
)

type SubscriptionRepository struct {
	db *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) GetByOwner(ctx context.Context, ownerID common.UUID) (*subscription.Subscription, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, owner_id, tier, status, starts_at, ends_at, created_at, updated_at
		FROM subscriptions WHERE owner_id = $1 ORDER BY ends_at DESC LIMIT 1`, ownerID)
	var s subscription.Subscription
	if err := row.Scan(&s.ID, &s.OwnerID, &s.Tier, &s.Status, &s.StartsAt, &s.EndsAt, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "subscription not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load subscription", err)
	}
	return &s, nil
}
