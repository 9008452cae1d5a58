package app

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"jobpulse/internal/common"
	"jobpulse/internal/counterstore"
	"jobpulse/internal/domain/application"
	"jobpulse/internal/domain/posting"
)

// PostingService owns the posting lifecycle: draft on create, publish and
// unpublish between draft and active, expiry handled by the sweeper. All
// operations are owner-scoped; a posting that belongs to someone else looks
// exactly like one that does not exist.
type PostingService struct {
	repo         posting.Repository
	applications application.Repository
	quota        *QuotaService
	counters     counterstore.Store
	logger       *zap.Logger
	clock        func() time.Time
}

func NewPostingService(repo posting.Repository, applications application.Repository, quota *QuotaService, counters counterstore.Store, logger *zap.Logger) *PostingService {
	return &PostingService{
		repo:         repo,
		applications: applications,
		quota:        quota,
		counters:     counters,
		logger:       logger,
		clock:        time.Now,
	}
}

type PostingStats struct {
	posting.Posting
	Views        int64  `json:"views"`
	Applications int    `json:"applications"`
	Boost        *Boost `json:"boost,omitempty"`
}

type PostingUpdate struct {
	CompanyName    *string
	Position       *string
	Location       *string
	Description    *string
	Qualifications *string
	Deadline       *time.Time
}

func (s *PostingService) Create(ctx context.Context, ownerID common.UUID, p posting.Posting) (*posting.Posting, error) {
	if err := validatePosting(p); err != nil {
		return nil, err
	}
	if _, err := s.quota.ActiveSubscription(ctx, ownerID); err != nil {
		return nil, err
	}
	p.OwnerID = ownerID
	p.Status = posting.StatusDraft
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	// Seed the view counter so analytics reads never have to special-case a
	// missing key. A counter store hiccup here is not fatal for the create.
	if _, err := s.counters.IncrBy(ctx, counterstore.ViewKey(created.ID.String()), 0); err != nil {
		s.logger.Warn("failed to initialize view counter",
			zap.String("posting_id", created.ID.String()),
			zap.Error(err))
	}
	return created, nil
}

func (s *PostingService) Publish(ctx context.Context, ownerID, id common.UUID) (*posting.Posting, error) {
	sub, err := s.quota.ActiveSubscription(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	current, err := s.repo.GetByOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	switch current.Status {
	case posting.StatusActive:
		return current, nil
	case posting.StatusExpired:
		return nil, common.NewError(common.CodeValidation, "posting is expired", nil)
	}
	return s.repo.PublishWithinQuota(ctx, ownerID, id, sub.Tier.PostingLimit())
}

func (s *PostingService) Unpublish(ctx context.Context, ownerID, id common.UUID) (*posting.Posting, error) {
	current, err := s.repo.GetByOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	switch current.Status {
	case posting.StatusDraft:
		return current, nil
	case posting.StatusExpired:
		return nil, common.NewError(common.CodeValidation, "posting is expired", nil)
	}
	return s.repo.SetStatus(ctx, ownerID, id, posting.StatusDraft)
}

func (s *PostingService) Update(ctx context.Context, ownerID, id common.UUID, update PostingUpdate) (*posting.Posting, error) {
	current, err := s.repo.GetByOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if current.Status == posting.StatusExpired {
		return nil, common.NewError(common.CodeValidation, "posting is expired", nil)
	}
	merged := *current
	if update.CompanyName != nil {
		merged.CompanyName = *update.CompanyName
	}
	if update.Position != nil {
		merged.Position = *update.Position
	}
	if update.Location != nil {
		merged.Location = *update.Location
	}
	if update.Description != nil {
		merged.Description = *update.Description
	}
	if update.Qualifications != nil {
		merged.Qualifications = *update.Qualifications
	}
	if update.Deadline != nil {
		merged.Deadline = *update.Deadline
	}
	if err := validatePosting(merged); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, merged)
}

func (s *PostingService) Delete(ctx context.Context, ownerID, id common.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	key := id.String()
	for _, counterKey := range []string{
		counterstore.ViewKey(key),
		counterstore.DailyViewKey(key),
		counterstore.TrafficKey(key),
		counterstore.DeviceKey(key),
		counterstore.LocationKey(key),
		counterstore.BoostKey(key),
	} {
		if err := s.counters.Delete(ctx, counterKey); err != nil {
			s.logger.Warn("failed to drop counter key",
				zap.String("key", counterKey),
				zap.Error(err))
		}
	}
	return nil
}

func (s *PostingService) Get(ctx context.Context, ownerID, id common.UUID) (*PostingStats, error) {
	p, err := s.repo.GetByOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return s.withStats(ctx, *p)
}

func (s *PostingService) List(ctx context.Context, ownerID common.UUID) ([]PostingStats, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	stats := make([]PostingStats, 0, len(items))
	for _, item := range items {
		withStats, err := s.withStats(ctx, item)
		if err != nil {
			return nil, err
		}
		stats = append(stats, *withStats)
	}
	return stats, nil
}

// RecordView counts a public view of an active posting along with its
// traffic-source, device and location breakdowns. Increments are single
// atomic round-trips against the counter store.
func (s *PostingService) RecordView(ctx context.Context, id common.UUID, source, device, location string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.Status != posting.StatusActive {
		return common.NewError(common.CodeNotFound, "posting not found", nil)
	}
	key := id.String()
	if _, err := s.counters.IncrBy(ctx, counterstore.ViewKey(key), 1); err != nil {
		return common.NewError(common.CodeInternal, "failed to record view", err)
	}
	day := s.clock().UTC().Format("2006-01-02")
	if err := s.counters.HIncrBy(ctx, counterstore.DailyViewKey(key), day, 1); err != nil {
		s.logger.Warn("failed to record daily view", zap.String("posting_id", key), zap.Error(err))
	}
	for counterKey, field := range map[string]string{
		counterstore.TrafficKey(key):  source,
		counterstore.DeviceKey(key):   device,
		counterstore.LocationKey(key): location,
	} {
		if field == "" {
			continue
		}
		if err := s.counters.HIncrBy(ctx, counterKey, strings.ToLower(field), 1); err != nil {
			s.logger.Warn("failed to record view breakdown", zap.String("key", counterKey), zap.Error(err))
		}
	}
	return nil
}

func (s *PostingService) withStats(ctx context.Context, p posting.Posting) (*PostingStats, error) {
	key := p.ID.String()
	views, err := s.counters.GetInt(ctx, counterstore.ViewKey(key))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to read view counter", err)
	}
	applications, err := s.applications.CountByPosting(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	stats := &PostingStats{Posting: p, Views: views, Applications: applications}
	var boost Boost
	switch err := s.counters.GetJSON(ctx, counterstore.BoostKey(key), &boost); err {
	case nil:
		stats.Boost = &boost
	case counterstore.ErrNotFound:
	default:
		s.logger.Warn("failed to read boost state", zap.String("posting_id", key), zap.Error(err))
	}
	return stats, nil
}

func validatePosting(p posting.Posting) error {
	fields := map[string]string{}
	if strings.TrimSpace(p.CompanyName) == "" {
		fields["company_name"] = "company name is required"
	}
	if strings.TrimSpace(p.Position) == "" {
		fields["position"] = "position is required"
	}
	if strings.TrimSpace(p.Description) == "" {
		fields["description"] = "description is required"
	}
	if p.Deadline.IsZero() {
		fields["deadline"] = "application deadline is required"
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid posting", fields)
	}
	return nil
}
