package matchmaking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sparkmatch/sparkmatch-backend/internal/oracle"
	"github.com/sparkmatch/sparkmatch-backend/internal/users"
)

// fakeUserStore applies the same hard filters the SQL candidate query does:
// exclude self, age window, and exclusion of already-scored targets.
type fakeUserStore struct {
	mu         sync.Mutex
	users      map[int64]*users.User
	scored     map[string]bool // "source:target"
	lastFilter *users.CandidateFilter
}

func newFakeUserStore(us ...*users.User) *fakeUserStore {
	s := &fakeUserStore{
		users:  make(map[int64]*users.User),
		scored: make(map[string]bool),
	}
	for _, u := range us {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) FindByID(_ context.Context, id int64) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, users.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeUserStore) FindCandidates(_ context.Context, filter *users.CandidateFilter) ([]*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFilter = filter

	var out []*users.User
	for _, u := range s.users {
		if u.ID == filter.ExcludeID {
			continue
		}
		if u.Age == nil || *u.Age < filter.AgeMin || *u.Age > filter.AgeMax {
			continue
		}
		if s.scored[fmt.Sprintf("%d:%d", filter.ExcludeAlreadyScoredBy, u.ID)] {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *fakeUserStore) markScored(sourceID, targetID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scored[fmt.Sprintf("%d:%d", sourceID, targetID)] = true
}

// memStore honors the store contract: one row per (source, target, algorithm),
// upserts overwrite and refresh the timestamp.
type memStore struct {
	mu   sync.Mutex
	rows map[string]*MatchRecommendation
	err  error // injected write failure
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[string]*MatchRecommendation)}
}

func storeKey(sourceID, targetID int64, algorithm string) string {
	return fmt.Sprintf("%d:%d:%s", sourceID, targetID, algorithm)
}

func (s *memStore) Upsert(_ context.Context, rec *MatchRecommendation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}

	key := storeKey(rec.SourceUserID, rec.TargetUserID, rec.Algorithm)
	now := time.Now()
	if existing, ok := s.rows[key]; ok {
		existing.Score = rec.Score
		existing.Reasoning = rec.Reasoning
		existing.MatchFactors = rec.MatchFactors
		existing.UpdatedAt = now
		return nil
	}

	stored := *rec
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.rows[key] = &stored
	return nil
}

func (s *memStore) ListForSource(_ context.Context, sourceUserID int64, algorithm string) ([]*MatchRecommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*MatchRecommendation
	for _, rec := range s.rows {
		if rec.SourceUserID == sourceUserID && rec.Algorithm == algorithm {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func (s *memStore) get(sourceID, targetID int64, algorithm string) *MatchRecommendation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows[storeKey(sourceID, targetID, algorithm)]
}

// fakeOracle scores pairs from a canned table and can fail selected targets
type fakeOracle struct {
	mu        sync.Mutex
	judgments map[string]*oracle.Judgment // keyed by target name
	failFor   map[string]bool
	calls     int
	inFlight  int
	peak      int
	delay     time.Duration
}

func newFakeOracle() *fakeOracle {
	return &fakeOracle{
		judgments: make(map[string]*oracle.Judgment),
		failFor:   make(map[string]bool),
	}
}

func (o *fakeOracle) ScorePair(ctx context.Context, req *oracle.PairRequest) (*oracle.Judgment, error) {
	o.mu.Lock()
	o.calls++
	o.inFlight++
	if o.inFlight > o.peak {
		o.peak = o.inFlight
	}
	delay := o.delay
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.inFlight--
		o.mu.Unlock()
	}()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.failFor[req.Target.Name] {
		return nil, errors.New("oracle unavailable")
	}
	if j, ok := o.judgments[req.Target.Name]; ok {
		return j, nil
	}
	return &oracle.Judgment{SourceSwipeProbability: 50, TargetSwipeProbability: 50}, nil
}

func (o *fakeOracle) callCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.calls
}

func (o *fakeOracle) peakConcurrency() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.peak
}
