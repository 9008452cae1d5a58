package app

import (
	"context"
	"strings"
	"time"

	"jobpulse/internal/common"
	"jobpulse/internal/domain/event"
)

// EventService announces job-fair events. Scheduling the virtual rooms is the
// events platform's job, not ours.
type EventService struct {
	repo  event.Repository
	clock func() time.Time
}

func NewEventService(repo event.Repository) *EventService {
	return &EventService{repo: repo, clock: time.Now}
}

func (s *EventService) Create(ctx context.Context, ownerID common.UUID, e event.Event) (*event.Event, error) {
	fields := map[string]string{}
	if strings.TrimSpace(e.Title) == "" {
		fields["title"] = "title is required"
	}
	if e.StartsAt.IsZero() {
		fields["starts_at"] = "start time is required"
	}
	if len(fields) > 0 {
		err := common.NewError(common.CodeMissingField, "missing required fields", nil)
		err.Fields = fields
		return nil, err
	}
	e.OwnerID = ownerID
	return s.repo.Create(ctx, e)
}

func (s *EventService) ListUpcoming(ctx context.Context, limit int) ([]event.Event, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListUpcoming(ctx, s.clock().UTC(), limit)
}
