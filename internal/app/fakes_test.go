package app

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"jobpulse/internal/common"
	"jobpulse/internal/counterstore"
	"jobpulse/internal/domain/application"
	"jobpulse/internal/domain/candidate"
	"jobpulse/internal/domain/employer"
	"jobpulse/internal/domain/event"
	"jobpulse/internal/domain/posting"
	"jobpulse/internal/domain/subscription"
)

type fakePostingRepo struct {
	mu      sync.Mutex
	items   map[common.UUID]*posting.Posting
	order   []common.UUID
	similar []posting.Posting
}

func newFakePostingRepo() *fakePostingRepo {
	return &fakePostingRepo{items: make(map[common.UUID]*posting.Posting)}
}

func (r *fakePostingRepo) add(p posting.Posting) posting.Posting {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == common.NilUUID {
		p.ID = common.NewUUID()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	stored := p
	r.items[p.ID] = &stored
	r.order = append(r.order, p.ID)
	return p
}

func (r *fakePostingRepo) Create(ctx context.Context, p posting.Posting) (*posting.Posting, error) {
	created := r.add(p)
	return &created, nil
}

func (r *fakePostingRepo) Update(ctx context.Context, p posting.Posting) (*posting.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current := r.items[p.ID]
	if current == nil || current.OwnerID != p.OwnerID {
		return nil, common.NewError(common.CodeNotFound, "posting not found", nil)
	}
	p.CreatedAt = current.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	stored := p
	r.items[p.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *fakePostingRepo) GetByOwner(ctx context.Context, ownerID, id common.UUID) (*posting.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current := r.items[id]
	if current == nil || current.OwnerID != ownerID {
		return nil, common.NewError(common.CodeNotFound, "posting not found", nil)
	}
	clone := *current
	return &clone, nil
}

func (r *fakePostingRepo) GetByID(ctx context.Context, id common.UUID) (*posting.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current := r.items[id]
	if current == nil {
		return nil, common.NewError(common.CodeNotFound, "posting not found", nil)
	}
	clone := *current
	return &clone, nil
}

func (r *fakePostingRepo) ListByOwner(ctx context.Context, ownerID common.UUID) ([]posting.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []posting.Posting
	for _, id := range r.order {
		current := r.items[id]
		if current != nil && current.OwnerID == ownerID {
			items = append(items, *current)
		}
	}
	return items, nil
}

func (r *fakePostingRepo) Delete(ctx context.Context, ownerID, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current := r.items[id]
	if current == nil || current.OwnerID != ownerID {
		return common.NewError(common.CodeNotFound, "posting not found", nil)
	}
	delete(r.items, id)
	return nil
}

func (r *fakePostingRepo) CountActiveByOwner(ctx context.Context, ownerID common.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.countActiveLocked(ownerID), nil
}

func (r *fakePostingRepo) countActiveLocked(ownerID common.UUID) int {
	count := 0
	for _, current := range r.items {
		if current.OwnerID == ownerID && current.Status == posting.StatusActive {
			count++
		}
	}
	return count
}

func (r *fakePostingRepo) SetStatus(ctx context.Context, ownerID, id common.UUID, status posting.Status) (*posting.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current := r.items[id]
	if current == nil || current.OwnerID != ownerID {
		return nil, common.NewError(common.CodeNotFound, "posting not found", nil)
	}
	current.Status = status
	current.UpdatedAt = time.Now().UTC()
	clone := *current
	return &clone, nil
}

func (r *fakePostingRepo) PublishWithinQuota(ctx context.Context, ownerID, id common.UUID, limit int) (*posting.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.countActiveLocked(ownerID) >= limit {
		return nil, common.NewError(common.CodeQuotaExceeded, "active posting limit reached", nil)
	}
	current := r.items[id]
	if current == nil || current.OwnerID != ownerID || current.Status != posting.StatusDraft {
		return nil, common.NewError(common.CodeNotFound, "posting not found", nil)
	}
	current.Status = posting.StatusActive
	current.UpdatedAt = time.Now().UTC()
	clone := *current
	return &clone, nil
}

func (r *fakePostingRepo) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]posting.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []posting.Posting
	for _, id := range r.order {
		current := r.items[id]
		if current == nil || current.Status != posting.StatusActive {
			continue
		}
		if current.Deadline.Before(from) || current.Deadline.After(to) {
			continue
		}
		items = append(items, *current)
	}
	return items, nil
}

func (r *fakePostingRepo) ListExpired(ctx context.Context, asOf time.Time) ([]posting.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []posting.Posting
	for _, id := range r.order {
		current := r.items[id]
		if current != nil && current.Status == posting.StatusActive && current.Deadline.Before(asOf) {
			items = append(items, *current)
		}
	}
	return items, nil
}

func (r *fakePostingRepo) MarkExpired(ctx context.Context, id common.UUID) (*posting.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current := r.items[id]
	if current == nil || current.Status != posting.StatusActive {
		return nil, common.NewError(common.CodeNotFound, "posting not found", nil)
	}
	current.Status = posting.StatusExpired
	current.UpdatedAt = time.Now().UTC()
	clone := *current
	return &clone, nil
}

func (r *fakePostingRepo) SearchSimilar(ctx context.Context, position, description string, excludeID common.UUID, limit int) ([]posting.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.similar
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return append([]posting.Posting(nil), items...), nil
}

type fakeSubscriptionRepo struct {
	mu   sync.Mutex
	subs map[common.UUID]*subscription.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[common.UUID]*subscription.Subscription)}
}

func (r *fakeSubscriptionRepo) set(sub subscription.Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := sub
	r.subs[sub.OwnerID] = &stored
}

func (r *fakeSubscriptionRepo) GetByOwner(ctx context.Context, ownerID common.UUID) (*subscription.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub := r.subs[ownerID]
	if sub == nil {
		return nil, common.NewError(common.CodeNotFound, "subscription not found", nil)
	}
	clone := *sub
	return &clone, nil
}

type fakeApplicationRepo struct {
	mu    sync.Mutex
	items []application.Application
}

func (r *fakeApplicationRepo) add(app application.Application) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if app.ID == common.NilUUID {
		app.ID = common.NewUUID()
	}
	r.items = append(r.items, app)
}

func (r *fakeApplicationRepo) CountByPosting(ctx context.Context, postingID common.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, app := range r.items {
		if app.PostingID == postingID {
			count++
		}
	}
	return count, nil
}

func (r *fakeApplicationRepo) ListByPosting(ctx context.Context, postingID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, app := range r.items {
		if app.PostingID == postingID {
			items = append(items, app)
		}
	}
	return items, nil
}

type fakeCandidateRepo struct {
	mu         sync.Mutex
	candidates map[common.UUID]candidate.Candidate
}

func newFakeCandidateRepo() *fakeCandidateRepo {
	return &fakeCandidateRepo{candidates: make(map[common.UUID]candidate.Candidate)}
}

func (r *fakeCandidateRepo) add(c candidate.Candidate) candidate.Candidate {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == common.NilUUID {
		c.ID = common.NewUUID()
	}
	r.candidates[c.ID] = c
	return c
}

func (r *fakeCandidateRepo) GetByID(ctx context.Context, id common.UUID) (*candidate.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.candidates[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "candidate not found", nil)
	}
	clone := c
	return &clone, nil
}

func (r *fakeCandidateRepo) ListByIDs(ctx context.Context, ids []common.UUID) ([]candidate.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []candidate.Candidate
	for _, id := range ids {
		if c, ok := r.candidates[id]; ok {
			items = append(items, c)
		}
	}
	return items, nil
}

type fakeEmployerRepo struct {
	mu        sync.Mutex
	employers map[common.UUID]employer.Employer
}

func newFakeEmployerRepo() *fakeEmployerRepo {
	return &fakeEmployerRepo{employers: make(map[common.UUID]employer.Employer)}
}

func (r *fakeEmployerRepo) add(e employer.Employer) employer.Employer {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.ID == common.NilUUID {
		e.ID = common.NewUUID()
	}
	r.employers[e.ID] = e
	return e
}

func (r *fakeEmployerRepo) GetByID(ctx context.Context, id common.UUID) (*employer.Employer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employers[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "employer not found", nil)
	}
	clone := e
	return &clone, nil
}

type fakeEventRepo struct {
	mu        sync.Mutex
	items     []event.Event
	lastLimit int
}

func (r *fakeEventRepo) Create(ctx context.Context, e event.Event) (*event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = common.NewUUID()
	e.CreatedAt = time.Now().UTC()
	r.items = append(r.items, e)
	clone := e
	return &clone, nil
}

func (r *fakeEventRepo) ListUpcoming(ctx context.Context, asOf time.Time, limit int) ([]event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastLimit = limit
	var items []event.Event
	for _, e := range r.items {
		if !e.StartsAt.Before(asOf) {
			items = append(items, e)
		}
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// memoryCounterStore mimics the counter adapter including key TTLs, which are
// checked lazily against the settable clock.
type memoryCounterStore struct {
	mu     sync.Mutex
	ints   map[string]int64
	hashes map[string]map[string]int64
	blobs  map[string]memoryBlob
	clock  func() time.Time
}

type memoryBlob struct {
	data      []byte
	expiresAt time.Time
}

func newMemoryCounterStore() *memoryCounterStore {
	return &memoryCounterStore{
		ints:   make(map[string]int64),
		hashes: make(map[string]map[string]int64),
		blobs:  make(map[string]memoryBlob),
		clock:  time.Now,
	}
}

func (s *memoryCounterStore) IncrBy(ctx context.Context, key string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ints[key] += delta
	return s.ints[key], nil
}

func (s *memoryCounterStore) GetInt(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ints[key], nil
}

func (s *memoryCounterStore) HIncrBy(ctx context.Context, key, field string, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash := s.hashes[key]
	if hash == nil {
		hash = make(map[string]int64)
		s.hashes[key] = hash
	}
	hash[field] += delta
	return nil
}

func (s *memoryCounterStore) HGetAll(ctx context.Context, key string) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fields := make(map[string]int64, len(s.hashes[key]))
	for field, value := range s.hashes[key] {
		fields[field] = value
	}
	return fields, nil
}

func (s *memoryCounterStore) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	blob := memoryBlob{data: data}
	if ttl > 0 {
		blob.expiresAt = s.clock().Add(ttl)
	}
	s.blobs[key] = blob
	return nil
}

func (s *memoryCounterStore) GetJSON(ctx context.Context, key string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob, ok := s.blobs[key]
	if !ok {
		return counterstore.ErrNotFound
	}
	if !blob.expiresAt.IsZero() && !s.clock().Before(blob.expiresAt) {
		delete(s.blobs, key)
		return counterstore.ErrNotFound
	}
	return json.Unmarshal(blob.data, value)
}

func (s *memoryCounterStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ints, key)
	delete(s.hashes, key)
	delete(s.blobs, key)
	return nil
}

func (s *memoryCounterStore) Close() error { return nil }

type sentEmail struct {
	to      string
	subject string
	body    string
}

type fakeEmailSender struct {
	mu     sync.Mutex
	sent   []sentEmail
	failTo map[string]bool
}

func (f *fakeEmailSender) SendEmail(ctx context.Context, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTo[to] {
		return common.NewError(common.CodeInternal, "mailbox unavailable", nil)
	}
	f.sent = append(f.sent, sentEmail{to: to, subject: subject, body: body})
	return nil
}

func (f *fakeEmailSender) sentTo(to string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, email := range f.sent {
		if email.to == to {
			count++
		}
	}
	return count
}

type sentNotification struct {
	ownerID common.UUID
	kind    string
	body    string
}

type fakeInAppNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (f *fakeInAppNotifier) Notify(ctx context.Context, ownerID common.UUID, kind, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentNotification{ownerID: ownerID, kind: kind, body: body})
	return nil
}

type fakePushSender struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (f *fakePushSender) SendPush(ctx context.Context, ownerID common.UUID, title, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentNotification{ownerID: ownerID, kind: title, body: body})
	return nil
}

type fakeRecommender struct {
	contacts []RecommendedCandidate
	err      error
}

func (f *fakeRecommender) RecommendedCandidates(ctx context.Context, jobID common.UUID) ([]RecommendedCandidate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]RecommendedCandidate(nil), f.contacts...), nil
}

func activeSubscription(ownerID common.UUID, tier subscription.Tier) subscription.Subscription {
	now := time.Now().UTC()
	return subscription.Subscription{
		ID:       common.NewUUID(),
		OwnerID:  ownerID,
		Tier:     tier,
		Status:   subscription.StatusActive,
		StartsAt: now.Add(-24 * time.Hour),
		EndsAt:   now.Add(30 * 24 * time.Hour),
	}
}

func validPosting(ownerID common.UUID) posting.Posting {
	return posting.Posting{
		OwnerID:        ownerID,
		CompanyName:    "Acme",
		Position:       "Backend Engineer",
		Location:       "Jakarta",
		Description:    "Build and run the posting platform. Minimum 2 years experience.",
		Qualifications: "Go, PostgreSQL",
		Deadline:       time.Now().UTC().Add(30 * 24 * time.Hour),
		Status:         posting.StatusDraft,
	}
}

func mustContain(haystack []string, needle string) bool {
	for _, item := range haystack {
		if strings.EqualFold(item, needle) {
			return true
		}
	}
	return false
}
