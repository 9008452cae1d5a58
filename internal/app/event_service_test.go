package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobpulse/internal/common"
	"jobpulse/internal/domain/event"
)

func TestEventServiceCreate_RequiresTitleAndStart(t *testing.T) {
	repo := &fakeEventRepo{}
	service := NewEventService(repo)

	_, err := service.Create(context.Background(), common.NewUUID(), event.Event{Description: "career fair"})
	if !common.Is(err, common.CodeMissingField) {
		t.Fatalf("expected missing_required_field error, got %v", err)
	}
	var coded *common.Error
	if !errors.As(err, &coded) {
		t.Fatalf("expected coded error, got %T", err)
	}
	if coded.Fields["title"] == "" || coded.Fields["starts_at"] == "" {
		t.Fatalf("expected field errors for title and starts_at, got %v", coded.Fields)
	}
}

func TestEventServiceCreate_SetsOwner(t *testing.T) {
	repo := &fakeEventRepo{}
	service := NewEventService(repo)
	ownerID := common.NewUUID()

	created, err := service.Create(context.Background(), ownerID, event.Event{
		Title:    "Tech Career Fair",
		StartsAt: time.Now().UTC().Add(7 * 24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if created.OwnerID != ownerID {
		t.Fatalf("expected owner %s, got %s", ownerID, created.OwnerID)
	}
	if created.ID == common.NilUUID {
		t.Fatal("expected id assigned")
	}
}

func TestEventServiceListUpcoming_DefaultsLimit(t *testing.T) {
	repo := &fakeEventRepo{}
	service := NewEventService(repo)

	if _, err := service.ListUpcoming(context.Background(), 0); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if repo.lastLimit != 20 {
		t.Fatalf("expected default limit 20, got %d", repo.lastLimit)
	}
}

func TestEventServiceListUpcoming_SkipsPastEvents(t *testing.T) {
	repo := &fakeEventRepo{}
	service := NewEventService(repo)
	now := time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC)
	service.clock = func() time.Time { return now }

	_, _ = repo.Create(context.Background(), event.Event{Title: "Past", StartsAt: now.Add(-time.Hour)})
	_, _ = repo.Create(context.Background(), event.Event{Title: "Future", StartsAt: now.Add(time.Hour)})

	items, err := service.ListUpcoming(context.Background(), 10)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(items) != 1 || items[0].Title != "Future" {
		t.Fatalf("expected only the future event, got %+v", items)
	}
}
