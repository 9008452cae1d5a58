package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"jobpulse/internal/common"
	"jobpulse/internal/domain/employer"
	"jobpulse/internal/domain/posting"
	"jobpulse/internal/notify"
)

const expiryWarningWindow = 3 * 24 * time.Hour

// SweeperService runs the two scheduled passes over active postings: warning
// owners three days before a deadline, and expiring postings whose deadline
// has passed. It is the only writer that moves a posting to expired.
type SweeperService struct {
	postings  posting.Repository
	employers employer.Repository
	email     notify.EmailSender
	inApp     notify.InAppNotifier
	push      notify.PushSender
	logger    *zap.Logger
	clock     func() time.Time
}

func NewSweeperService(postings posting.Repository, employers employer.Repository, email notify.EmailSender, inApp notify.InAppNotifier, push notify.PushSender, logger *zap.Logger) *SweeperService {
	return &SweeperService{
		postings:  postings,
		employers: employers,
		email:     email,
		inApp:     inApp,
		push:      push,
		logger:    logger,
		clock:     time.Now,
	}
}

// SweepResult summarizes one pass. Notification failures are counted, never
// returned as an error: one broken mailbox must not stall the batch.
type SweepResult struct {
	Processed int `json:"processed"`
	Notified  int `json:"notified"`
	Failures  int `json:"failures"`
}

// CheckExpiring warns owners of active postings whose deadline falls within
// the next three days. Repeating the warning on the next tick is acceptable:
// delivery is at-least-once inside the window.
func (s *SweeperService) CheckExpiring(ctx context.Context) (SweepResult, error) {
	now := s.clock().UTC()
	items, err := s.postings.ListExpiringBetween(ctx, now, now.Add(expiryWarningWindow))
	if err != nil {
		return SweepResult{}, err
	}
	result := SweepResult{Processed: len(items)}
	for _, item := range items {
		if err := s.notifyExpiring(ctx, item); err != nil {
			result.Failures++
			s.logger.Warn("failed to send expiry warning",
				zap.String("posting_id", item.ID.String()),
				zap.String("owner_id", item.OwnerID.String()),
				zap.Error(err))
			continue
		}
		result.Notified++
	}
	return result, nil
}

// ProcessExpired transitions overdue active postings to expired and notifies
// each owner. A posting already swept by a concurrent run is skipped.
func (s *SweeperService) ProcessExpired(ctx context.Context) (SweepResult, error) {
	now := s.clock().UTC()
	items, err := s.postings.ListExpired(ctx, now)
	if err != nil {
		return SweepResult{}, err
	}
	result := SweepResult{}
	for _, item := range items {
		expired, err := s.postings.MarkExpired(ctx, item.ID)
		if err != nil {
			if common.Is(err, common.CodeNotFound) {
				continue
			}
			result.Failures++
			s.logger.Error("failed to expire posting",
				zap.String("posting_id", item.ID.String()),
				zap.Error(err))
			continue
		}
		result.Processed++
		if err := s.notifyExpired(ctx, *expired); err != nil {
			result.Failures++
			s.logger.Warn("failed to send expiry notification",
				zap.String("posting_id", expired.ID.String()),
				zap.String("owner_id", expired.OwnerID.String()),
				zap.Error(err))
			continue
		}
		result.Notified++
	}
	return result, nil
}

// Run executes both passes on a fixed interval until the context is canceled.
func (s *SweeperService) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if result, err := s.CheckExpiring(ctx); err != nil {
				s.logger.Error("expiry check sweep failed", zap.Error(err))
			} else {
				s.logger.Info("expiry check sweep finished",
					zap.Int("processed", result.Processed),
					zap.Int("notified", result.Notified),
					zap.Int("failures", result.Failures))
			}
			if result, err := s.ProcessExpired(ctx); err != nil {
				s.logger.Error("auto expiry sweep failed", zap.Error(err))
			} else {
				s.logger.Info("auto expiry sweep finished",
					zap.Int("processed", result.Processed),
					zap.Int("notified", result.Notified),
					zap.Int("failures", result.Failures))
			}
		}
	}
}

func (s *SweeperService) notifyExpiring(ctx context.Context, p posting.Posting) error {
	owner, err := s.employers.GetByID(ctx, p.OwnerID)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Your posting %q expires on %s", p.Position, p.Deadline.Format("Jan 2, 2006"))
	body := fmt.Sprintf("The application deadline for %q is coming up on %s. Extend the deadline or republish to keep receiving candidates.", p.Position, p.Deadline.Format("Jan 2, 2006"))
	if err := s.email.SendEmail(ctx, owner.Email, subject, body); err != nil {
		return err
	}
	return s.inApp.Notify(ctx, p.OwnerID, "posting.expiring", body)
}

func (s *SweeperService) notifyExpired(ctx context.Context, p posting.Posting) error {
	owner, err := s.employers.GetByID(ctx, p.OwnerID)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Your posting %q has expired", p.Position)
	body := fmt.Sprintf("The application deadline for %q has passed and the posting is no longer visible to candidates. Create a new posting to continue hiring.", p.Position)
	if err := s.email.SendEmail(ctx, owner.Email, subject, body); err != nil {
		return err
	}
	return s.push.SendPush(ctx, p.OwnerID, subject, body)
}
