package app

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"jobpulse/internal/common"
	"jobpulse/internal/domain/application"
	"jobpulse/internal/domain/candidate"
	"jobpulse/internal/domain/posting"
	"jobpulse/internal/notify"
)

// Requirements is derived on demand from a posting's free text; it is never
// persisted.
type Requirements struct {
	Skills     []string `json:"skills"`
	MinYears   int      `json:"min_years"`
	Degree     string   `json:"degree"`
	SoftSkills []string `json:"soft_skills"`
}

type CandidateScore struct {
	CandidateID     common.UUID `json:"candidate_id"`
	Score           float64     `json:"score"`
	MatchingSkills  []string    `json:"matching_skills"`
	ExperienceMatch bool        `json:"experience_match"`
}

type Suggestions struct {
	RecommendedSkills []string `json:"recommended_skills"`
	OptimizationTips  []string `json:"optimization_tips"`
}

type RecommendedCandidate struct {
	CandidateID common.UUID `json:"candidate_id"`
	Email       string      `json:"email"`
}

// CandidateRecommender is the platform's recommendation oracle: given a job
// it returns candidates worth contacting. Treated as opaque here.
type CandidateRecommender interface {
	RecommendedCandidates(ctx context.Context, jobID common.UUID) ([]RecommendedCandidate, error)
}

type MatchingService struct {
	postings     posting.Repository
	applications application.Repository
	candidates   candidate.Repository
	recommender  CandidateRecommender
	email        notify.EmailSender
	logger       *zap.Logger
}

func NewMatchingService(postings posting.Repository, applications application.Repository, candidates candidate.Repository, recommender CandidateRecommender, email notify.EmailSender, logger *zap.Logger) *MatchingService {
	return &MatchingService{
		postings:     postings,
		applications: applications,
		candidates:   candidates,
		recommender:  recommender,
		email:        email,
		logger:       logger,
	}
}

var experiencePattern = regexp.MustCompile(`(\d+)\s*\+?\s*(?:years?|yrs?)`)

// Degree keywords are checked in order; the first hit wins so the result is
// stable for the same input.
var degreeKeywords = []struct {
	keyword string
	degree  string
}{
	{"phd", "S3"},
	{"doctoral", "S3"},
	{"doctorate", "S3"},
	{"master", "S2"},
	{"s2", "S2"},
	{"bachelor", "S1"},
	{"s1", "S1"},
	{"diploma", "D3"},
	{"d3", "D3"},
}

var softSkillKeywords = []string{
	"communication",
	"leadership",
	"teamwork",
	"problem solving",
	"time management",
	"adaptability",
}

// AnalyzeRequirements derives structured requirements from a posting's
// qualification and description text. Pure and deterministic.
func AnalyzeRequirements(p posting.Posting) Requirements {
	req := Requirements{}
	for _, part := range strings.Split(p.Qualifications, ",") {
		skill := strings.TrimSpace(part)
		if skill != "" {
			req.Skills = append(req.Skills, skill)
		}
	}
	text := strings.ToLower(p.Description + " " + p.Qualifications)
	if matches := experiencePattern.FindStringSubmatch(text); len(matches) > 1 {
		if years, err := strconv.Atoi(matches[1]); err == nil {
			req.MinYears = years
		}
	}
	for _, entry := range degreeKeywords {
		if containsWord(text, entry.keyword) {
			req.Degree = entry.degree
			break
		}
	}
	for _, keyword := range softSkillKeywords {
		if strings.Contains(text, keyword) {
			req.SoftSkills = append(req.SoftSkills, keyword)
		}
	}
	return req
}

// ScoreCandidate computes the weighted 0-100 compatibility score:
// skill overlap x40, experience x30, education x20, soft skills x10.
// Empty skill requirements and a zero experience floor count as satisfied;
// an empty soft-skill list contributes nothing.
func ScoreCandidate(c candidate.Candidate, req Requirements) float64 {
	score := skillRatio(c.Skills, req.Skills)*40 +
		experienceRatio(c.Years, req.MinYears)*30 +
		educationTerm(c.Degree, req.Degree)*20 +
		softSkillTerm(c.Skills, req.SoftSkills)*10
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func skillRatio(candidateSkills, required []string) float64 {
	if len(required) == 0 {
		return 1
	}
	return float64(len(matchingSkills(candidateSkills, required))) / float64(len(required))
}

func matchingSkills(candidateSkills, required []string) []string {
	var matched []string
	for _, want := range required {
		wantLower := strings.ToLower(strings.TrimSpace(want))
		for _, have := range candidateSkills {
			haveLower := strings.ToLower(strings.TrimSpace(have))
			if haveLower == "" || wantLower == "" {
				continue
			}
			if strings.Contains(haveLower, wantLower) || strings.Contains(wantLower, haveLower) {
				matched = append(matched, want)
				break
			}
		}
	}
	return matched
}

func experienceRatio(years, minYears int) float64 {
	floor := minYears
	if floor < 1 {
		floor = 1
	}
	ratio := float64(years) / float64(floor)
	if ratio > 1 {
		return 1
	}
	return ratio
}

func educationTerm(degree, required string) float64 {
	if required == "" {
		return 1
	}
	if strings.EqualFold(strings.TrimSpace(degree), required) {
		return 1
	}
	return 0
}

func softSkillTerm(candidateSkills, required []string) float64 {
	if len(required) == 0 {
		return 0
	}
	return float64(len(matchingSkills(candidateSkills, required))) / float64(len(required))
}

// RankCandidates scores every applicant of the posting and returns the top
// candidates, ties broken by candidate id so the ordering is reproducible.
func (s *MatchingService) RankCandidates(ctx context.Context, ownerID, jobID common.UUID, limit int) ([]CandidateScore, error) {
	p, err := s.postings.GetByOwner(ctx, ownerID, jobID)
	if err != nil {
		return nil, err
	}
	req := AnalyzeRequirements(*p)
	applications, err := s.applications.ListByPosting(ctx, jobID)
	if err != nil {
		return nil, err
	}
	ids := make([]common.UUID, 0, len(applications))
	for _, app := range applications {
		ids = append(ids, app.CandidateID)
	}
	candidates, err := s.candidates.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	scores := make([]CandidateScore, 0, len(candidates))
	for _, c := range candidates {
		scores = append(scores, CandidateScore{
			CandidateID:     c.ID,
			Score:           ScoreCandidate(c, req),
			MatchingSkills:  matchingSkills(c.Skills, req.Skills),
			ExperienceMatch: c.Years >= req.MinYears,
		})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].CandidateID.String() < scores[j].CandidateID.String()
	})
	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}
	return scores, nil
}

// SuggestImprovements harvests skills from up to five similar active postings
// and emits a tip when those postings describe the role in more depth. A
// heuristic, not a quality guarantee.
func (s *MatchingService) SuggestImprovements(ctx context.Context, ownerID, jobID common.UUID) (*Suggestions, error) {
	p, err := s.postings.GetByOwner(ctx, ownerID, jobID)
	if err != nil {
		return nil, err
	}
	req := AnalyzeRequirements(*p)
	similar, err := s.postings.SearchSimilar(ctx, p.Position, p.Description, p.ID, 5)
	if err != nil {
		return nil, err
	}
	have := make(map[string]bool, len(req.Skills))
	for _, skill := range req.Skills {
		have[strings.ToLower(skill)] = true
	}
	suggestions := Suggestions{}
	longerDescription := false
	for _, other := range similar {
		for _, skill := range AnalyzeRequirements(other).Skills {
			key := strings.ToLower(skill)
			if have[key] {
				continue
			}
			have[key] = true
			suggestions.RecommendedSkills = append(suggestions.RecommendedSkills, skill)
		}
		if len(other.Description) > len(p.Description) {
			longerDescription = true
		}
	}
	if longerDescription {
		suggestions.OptimizationTips = append(suggestions.OptimizationTips,
			"Similar postings describe the role in more detail; a longer description tends to attract better-fitting candidates.")
	}
	return &suggestions, nil
}

// Broadcast emails the recommendation oracle's candidates about the posting,
// skipping past individual delivery failures.
func (s *MatchingService) Broadcast(ctx context.Context, ownerID, jobID common.UUID) (int, error) {
	p, err := s.postings.GetByOwner(ctx, ownerID, jobID)
	if err != nil {
		return 0, err
	}
	recommended, err := s.recommender.RecommendedCandidates(ctx, jobID)
	if err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to fetch recommended candidates", err)
	}
	subject := fmt.Sprintf("%s is hiring: %s", p.CompanyName, p.Position)
	body := fmt.Sprintf("%s is looking for a %s in %s. Apply before %s.", p.CompanyName, p.Position, p.Location, p.Deadline.Format("Jan 2, 2006"))
	sent := 0
	for _, contact := range recommended {
		if contact.Email == "" {
			continue
		}
		if err := s.email.SendEmail(ctx, contact.Email, subject, body); err != nil {
			s.logger.Warn("failed to email recommended candidate",
				zap.String("posting_id", jobID.String()),
				zap.String("candidate_id", contact.CandidateID.String()),
				zap.Error(err))
			continue
		}
		sent++
	}
	return sent, nil
}

func containsWord(text, word string) bool {
	index := 0
	for {
		found := strings.Index(text[index:], word)
		if found < 0 {
			return false
		}
		start := index + found
		end := start + len(word)
		beforeOK := start == 0 || !isAlphanumeric(text[start-1])
		afterOK := end == len(text) || !isAlphanumeric(text[end])
		if beforeOK && afterOK {
			return true
		}
		index = start + 1
	}
}

func isAlphanumeric(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
