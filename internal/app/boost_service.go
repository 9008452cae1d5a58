package app

import (
	"context"
	"strings"
	"time"

	"jobpulse/internal/common"
	"jobpulse/internal/counterstore"
	"jobpulse/internal/domain/posting"
)

type BoostTier string

const (
	BoostStandard   BoostTier = "standard"
	BoostPremium    BoostTier = "premium"
	BoostEnterprise BoostTier = "enterprise"
)

type boostPlan struct {
	multiplier float64
	duration   time.Duration
}

var boostPlans = map[BoostTier]boostPlan{
	BoostStandard:   {multiplier: 1.5, duration: 24 * time.Hour},
	BoostPremium:    {multiplier: 2.5, duration: 72 * time.Hour},
	BoostEnterprise: {multiplier: 4, duration: 168 * time.Hour},
}

// Boost is the receipt for a visibility boost. It lives only in the counter
// store under a TTL equal to its duration, so a stale boost disappears on its
// own; the posting row is never touched.
type Boost struct {
	JobID      common.UUID `json:"job_id"`
	Tier       BoostTier   `json:"tier"`
	Multiplier float64     `json:"multiplier"`
	StartsAt   time.Time   `json:"starts_at"`
	EndsAt     time.Time   `json:"ends_at"`
}

type BoostService struct {
	postings posting.Repository
	counters counterstore.Store
	clock    func() time.Time
}

func NewBoostService(postings posting.Repository, counters counterstore.Store) *BoostService {
	return &BoostService{postings: postings, counters: counters, clock: time.Now}
}

// Boost applies a time-bounded visibility multiplier to the owner's posting.
// Re-boosting overwrites the previous key: last write wins, multipliers never
// stack.
func (s *BoostService) Boost(ctx context.Context, ownerID, jobID common.UUID, tier BoostTier) (*Boost, error) {
	plan, ok := boostPlans[BoostTier(strings.ToLower(strings.TrimSpace(string(tier))))]
	if !ok {
		return nil, common.NewError(common.CodeInvalidBoostTier, "boost tier must be standard, premium, or enterprise", nil)
	}
	if _, err := s.postings.GetByOwner(ctx, ownerID, jobID); err != nil {
		return nil, err
	}
	now := s.clock().UTC()
	boost := Boost{
		JobID:      jobID,
		Tier:       BoostTier(strings.ToLower(strings.TrimSpace(string(tier)))),
		Multiplier: plan.multiplier,
		StartsAt:   now,
		EndsAt:     now.Add(plan.duration),
	}
	if err := s.counters.SetJSON(ctx, counterstore.BoostKey(jobID.String()), boost, plan.duration); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to store boost", err)
	}
	return &boost, nil
}

// Current returns the active boost for a posting, or nil when none is in
// effect.
func (s *BoostService) Current(ctx context.Context, jobID common.UUID) (*Boost, error) {
	var boost Boost
	err := s.counters.GetJSON(ctx, counterstore.BoostKey(jobID.String()), &boost)
	if err == counterstore.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to read boost", err)
	}
	return &boost, nil
}
