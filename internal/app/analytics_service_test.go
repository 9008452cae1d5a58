package app

import (
	"context"
	"testing"

	"jobpulse/internal/common"
	"jobpulse/internal/counterstore"
	"jobpulse/internal/domain/application"
	"jobpulse/internal/domain/candidate"
)

type analyticsFixture struct {
	service    *AnalyticsService
	postings   *fakePostingRepo
	apps       *fakeApplicationRepo
	candidates *fakeCandidateRepo
	counters   *memoryCounterStore
}

func newAnalyticsFixture() *analyticsFixture {
	postings := newFakePostingRepo()
	apps := &fakeApplicationRepo{}
	candidates := newFakeCandidateRepo()
	counters := newMemoryCounterStore()
	service := NewAnalyticsService(postings, apps, candidates, counters)
	return &analyticsFixture{
		service:    service,
		postings:   postings,
		apps:       apps,
		candidates: candidates,
		counters:   counters,
	}
}

func TestAnalyticsGetBasic_OwnerScoped(t *testing.T) {
	fixture := newAnalyticsFixture()
	stored := fixture.postings.add(validPosting(common.NewUUID()))

	_, err := fixture.service.GetBasic(context.Background(), common.NewUUID(), stored.ID)
	if !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not_found error, got %v", err)
	}
}

func TestAnalyticsGetBasic_Totals(t *testing.T) {
	fixture := newAnalyticsFixture()
	ownerID := common.NewUUID()
	stored := fixture.postings.add(validPosting(ownerID))
	key := stored.ID.String()

	_, _ = fixture.counters.IncrBy(context.Background(), counterstore.ViewKey(key), 10)
	_ = fixture.counters.HIncrBy(context.Background(), counterstore.TrafficKey(key), "search", 7)
	_ = fixture.counters.HIncrBy(context.Background(), counterstore.TrafficKey(key), "direct", 3)
	_ = fixture.counters.HIncrBy(context.Background(), counterstore.DailyViewKey(key), "2026-08-19", 4)
	_ = fixture.counters.HIncrBy(context.Background(), counterstore.DailyViewKey(key), "2026-08-20", 6)
	for i := 0; i < 4; i++ {
		fixture.apps.add(application.Application{PostingID: stored.ID, CandidateID: common.NewUUID(), Status: application.StatusPending})
	}

	report, err := fixture.service.GetBasic(context.Background(), ownerID, stored.ID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if report.TotalViews != 10 {
		t.Fatalf("expected 10 views, got %d", report.TotalViews)
	}
	if report.TotalApplications != 4 {
		t.Fatalf("expected 4 applications, got %d", report.TotalApplications)
	}
	if report.TrafficSources["search"] != 7 || report.TrafficSources["direct"] != 3 {
		t.Fatalf("expected traffic breakdown, got %v", report.TrafficSources)
	}
	if report.DailyViews["2026-08-20"] != 6 {
		t.Fatalf("expected daily views, got %v", report.DailyViews)
	}
}

func TestAnalyticsGetAdvanced_Funnel(t *testing.T) {
	fixture := newAnalyticsFixture()
	ownerID := common.NewUUID()
	stored := fixture.postings.add(validPosting(ownerID))
	_, _ = fixture.counters.IncrBy(context.Background(), counterstore.ViewKey(stored.ID.String()), 10)

	for _, status := range []application.Status{
		application.StatusPending,
		application.StatusReviewed,
		application.StatusShortlisted,
		application.StatusHired,
	} {
		fixture.apps.add(application.Application{PostingID: stored.ID, CandidateID: common.NewUUID(), Status: status})
	}

	report, err := fixture.service.GetAdvanced(context.Background(), ownerID, stored.ID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	funnel := report.Funnel
	if funnel.Views != 10 || funnel.Applications != 4 {
		t.Fatalf("expected 10 views and 4 applications, got %+v", funnel)
	}
	if funnel.Shortlisted != 1 || funnel.Interviewed != 0 || funnel.Hired != 1 {
		t.Fatalf("expected funnel to reflect current statuses, got %+v", funnel)
	}
}

func TestAnalyticsGetAdvanced_Demographics(t *testing.T) {
	fixture := newAnalyticsFixture()
	ownerID := common.NewUUID()
	stored := fixture.postings.add(validPosting(ownerID))

	first := fixture.candidates.add(candidate.Candidate{
		Skills:   []string{"Go", "PostgreSQL"},
		Years:    1,
		Degree:   "S1",
		Location: "Jakarta",
	})
	second := fixture.candidates.add(candidate.Candidate{
		Skills:   []string{"Go"},
		Years:    6,
		Degree:   "S2",
		Location: "Bandung",
	})
	for _, id := range []common.UUID{first.ID, second.ID} {
		fixture.apps.add(application.Application{PostingID: stored.ID, CandidateID: id, Status: application.StatusPending})
	}

	report, err := fixture.service.GetAdvanced(context.Background(), ownerID, stored.ID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	demo := report.Demographics
	if demo.ByDegree["S1"] != 1 || demo.ByDegree["S2"] != 1 {
		t.Fatalf("expected degree breakdown, got %v", demo.ByDegree)
	}
	if demo.ByExperience["Entry"] != 1 || demo.ByExperience["Senior"] != 1 {
		t.Fatalf("expected experience buckets, got %v", demo.ByExperience)
	}
	if demo.BySkill["Go"] != 2 || demo.BySkill["PostgreSQL"] != 1 {
		t.Fatalf("expected skill counts, got %v", demo.BySkill)
	}
	if demo.ByLocation["Jakarta"] != 1 || demo.ByLocation["Bandung"] != 1 {
		t.Fatalf("expected location counts, got %v", demo.ByLocation)
	}
}

func TestAnalyticsGetAdvanced_DeviceAndLocationViews(t *testing.T) {
	fixture := newAnalyticsFixture()
	ownerID := common.NewUUID()
	stored := fixture.postings.add(validPosting(ownerID))
	key := stored.ID.String()
	_ = fixture.counters.HIncrBy(context.Background(), counterstore.DeviceKey(key), "mobile", 8)
	_ = fixture.counters.HIncrBy(context.Background(), counterstore.DeviceKey(key), "desktop", 2)
	_ = fixture.counters.HIncrBy(context.Background(), counterstore.LocationKey(key), "jakarta", 5)

	report, err := fixture.service.GetAdvanced(context.Background(), ownerID, stored.ID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if report.DeviceTypes["mobile"] != 8 || report.DeviceTypes["desktop"] != 2 {
		t.Fatalf("expected device breakdown, got %v", report.DeviceTypes)
	}
	if report.Locations["jakarta"] != 5 {
		t.Fatalf("expected location breakdown, got %v", report.Locations)
	}
}
