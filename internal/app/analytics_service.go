package app

import (
	"context"
	"strings"

	"jobpulse/internal/common"
	"jobpulse/internal/counterstore"
	"jobpulse/internal/domain/application"
	"jobpulse/internal/domain/candidate"
	"jobpulse/internal/domain/posting"
)

// AnalyticsService composes reports from the counter store and relational
// aggregates. Nothing here is persisted: every call recomputes from current
// state, so callers needing repeated access should cache on their side.
type AnalyticsService struct {
	postings     posting.Repository
	applications application.Repository
	candidates   candidate.Repository
	counters     counterstore.Store
}

func NewAnalyticsService(postings posting.Repository, applications application.Repository, candidates candidate.Repository, counters counterstore.Store) *AnalyticsService {
	return &AnalyticsService{
		postings:     postings,
		applications: applications,
		candidates:   candidates,
		counters:     counters,
	}
}

type BasicAnalytics struct {
	TotalViews        int64            `json:"total_views"`
	TotalApplications int              `json:"total_applications"`
	TrafficSources    map[string]int64 `json:"traffic_sources"`
	DailyViews        map[string]int64 `json:"daily_views"`
}

// Funnel reflects the current status of each application, not a strict
// pipeline: an applicant can be hired without ever having been shortlisted,
// so the counts are not forced to be monotone.
type Funnel struct {
	Views        int64 `json:"views"`
	Applications int   `json:"applications"`
	Shortlisted  int   `json:"shortlisted"`
	Interviewed  int   `json:"interviewed"`
	Hired        int   `json:"hired"`
}

type Demographics struct {
	ByDegree     map[string]int `json:"by_degree"`
	ByExperience map[string]int `json:"by_experience"`
	BySkill      map[string]int `json:"by_skill"`
	ByLocation   map[string]int `json:"by_location"`
}

type AdvancedAnalytics struct {
	BasicAnalytics
	DeviceTypes  map[string]int64 `json:"device_types"`
	Locations    map[string]int64 `json:"locations"`
	Funnel       Funnel           `json:"funnel"`
	Demographics Demographics     `json:"demographics"`
}

func (s *AnalyticsService) GetBasic(ctx context.Context, ownerID, jobID common.UUID) (*BasicAnalytics, error) {
	if _, err := s.postings.GetByOwner(ctx, ownerID, jobID); err != nil {
		return nil, err
	}
	return s.basic(ctx, jobID)
}

func (s *AnalyticsService) GetAdvanced(ctx context.Context, ownerID, jobID common.UUID) (*AdvancedAnalytics, error) {
	if _, err := s.postings.GetByOwner(ctx, ownerID, jobID); err != nil {
		return nil, err
	}
	basic, err := s.basic(ctx, jobID)
	if err != nil {
		return nil, err
	}
	key := jobID.String()
	devices, err := s.counters.HGetAll(ctx, counterstore.DeviceKey(key))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to read device breakdown", err)
	}
	locations, err := s.counters.HGetAll(ctx, counterstore.LocationKey(key))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to read location breakdown", err)
	}
	applications, err := s.applications.ListByPosting(ctx, jobID)
	if err != nil {
		return nil, err
	}
	demographics, err := s.demographics(ctx, applications)
	if err != nil {
		return nil, err
	}
	return &AdvancedAnalytics{
		BasicAnalytics: *basic,
		DeviceTypes:    devices,
		Locations:      locations,
		Funnel:         buildFunnel(basic.TotalViews, applications),
		Demographics:   *demographics,
	}, nil
}

func (s *AnalyticsService) basic(ctx context.Context, jobID common.UUID) (*BasicAnalytics, error) {
	key := jobID.String()
	views, err := s.counters.GetInt(ctx, counterstore.ViewKey(key))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to read view counter", err)
	}
	total, err := s.applications.CountByPosting(ctx, jobID)
	if err != nil {
		return nil, err
	}
	traffic, err := s.counters.HGetAll(ctx, counterstore.TrafficKey(key))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to read traffic breakdown", err)
	}
	daily, err := s.counters.HGetAll(ctx, counterstore.DailyViewKey(key))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to read daily views", err)
	}
	return &BasicAnalytics{
		TotalViews:        views,
		TotalApplications: total,
		TrafficSources:    traffic,
		DailyViews:        daily,
	}, nil
}

func buildFunnel(views int64, applications []application.Application) Funnel {
	funnel := Funnel{Views: views, Applications: len(applications)}
	for _, app := range applications {
		switch app.Status {
		case application.StatusShortlisted:
			funnel.Shortlisted++
		case application.StatusInterviewed:
			funnel.Interviewed++
		case application.StatusHired:
			funnel.Hired++
		}
	}
	return funnel
}

// demographics scans every applicant's profile and tallies degree, experience
// bucket, skill and location counts. O(applications x fields), recomputed per
// call.
func (s *AnalyticsService) demographics(ctx context.Context, applications []application.Application) (*Demographics, error) {
	ids := make([]common.UUID, 0, len(applications))
	for _, app := range applications {
		ids = append(ids, app.CandidateID)
	}
	candidates, err := s.candidates.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	demo := Demographics{
		ByDegree:     map[string]int{},
		ByExperience: map[string]int{},
		BySkill:      map[string]int{},
		ByLocation:   map[string]int{},
	}
	for _, c := range candidates {
		if c.Degree != "" {
			demo.ByDegree[c.Degree]++
		}
		demo.ByExperience[candidate.ExperienceBucket(c.Years)]++
		for _, skill := range c.Skills {
			normalized := strings.TrimSpace(skill)
			if normalized != "" {
				demo.BySkill[normalized]++
			}
		}
		if c.Location != "" {
			demo.ByLocation[c.Location]++
		}
	}
	return &demo, nil
}
