package app

import (
	"context"
	"time"

	"jobpulse/internal/common"
	"jobpulse/internal/domain/posting"
	"jobpulse/internal/domain/subscription"
)

// QuotaService is the subscription gate: it decides whether an owner holds an
// active paid plan and whether that plan still has room for another active
// posting.
type QuotaService struct {
	subscriptions subscription.Repository
	postings      posting.Repository
	clock         func() time.Time
}

func NewQuotaService(subscriptions subscription.Repository, postings posting.Repository) *QuotaService {
	return &QuotaService{
		subscriptions: subscriptions,
		postings:      postings,
		clock:         time.Now,
	}
}

// ActiveSubscription returns the owner's subscription when it is active and
// inside its validity window.
func (s *QuotaService) ActiveSubscription(ctx context.Context, ownerID common.UUID) (*subscription.Subscription, error) {
	sub, err := s.subscriptions.GetByOwner(ctx, ownerID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeNoActiveSubscription, "no active subscription", err)
		}
		return nil, err
	}
	if !sub.ActiveAt(s.clock().UTC()) {
		return nil, common.NewError(common.CodeNoActiveSubscription, "no active subscription", nil)
	}
	return sub, nil
}

// CheckPostingLimit verifies the owner can activate one more posting. The
// count read here is advisory; the publish path re-checks it inside the same
// transaction that writes the status.
func (s *QuotaService) CheckPostingLimit(ctx context.Context, ownerID common.UUID) (*subscription.Subscription, error) {
	sub, err := s.ActiveSubscription(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	count, err := s.postings.CountActiveByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if count >= sub.Tier.PostingLimit() {
		return nil, common.NewError(common.CodeQuotaExceeded, "active posting limit reached", nil)
	}
	return sub, nil
}
