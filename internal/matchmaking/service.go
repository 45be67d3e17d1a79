// internal/matchmaking/service.go

package matchmaking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sparkmatch/sparkmatch-backend/internal/oracle"
	"github.com/sparkmatch/sparkmatch-backend/internal/users"
)

var ErrInvalidAlgorithm = errors.New("algorithm must be one_way or two_way")

// Oracle is the compatibility-scoring collaborator. Calls are stateless and
// independently retryable; the pipeline never assumes identical repeat answers.
type Oracle interface {
	ScorePair(ctx context.Context, req *oracle.PairRequest) (*oracle.Judgment, error)
}

type Service interface {
	// GenerateForUser runs one full generation pass for the source user.
	// Per-candidate failures are logged and skipped; the run always
	// completes. The returned error covers only run-level failures
	// (candidate query, user lookup).
	GenerateForUser(ctx context.Context, userID int64) error

	ListRecommendations(ctx context.Context, userID int64, algorithm string) ([]*MatchRecommendation, error)
}

// ServiceConfig tunes the generation run
type ServiceConfig struct {
	Workers       int           // concurrent oracle calls per run
	OracleTimeout time.Duration // per-candidate scoring deadline
}

type service struct {
	store         Store
	userStore     UserStore
	oracle        Oracle
	selector      *CandidateSelector
	workers       int
	oracleTimeout time.Duration
}

func NewService(store Store, userStore UserStore, scoringOracle Oracle, selector *CandidateSelector, cfg ServiceConfig) Service {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.OracleTimeout <= 0 {
		cfg.OracleTimeout = 30 * time.Second
	}
	return &service{
		store:         store,
		userStore:     userStore,
		oracle:        scoringOracle,
		selector:      selector,
		workers:       cfg.Workers,
		oracleTimeout: cfg.OracleTimeout,
	}
}

func (s *service) GenerateForUser(ctx context.Context, userID int64) error {
	started := time.Now()
	log.Printf("starting match generation for user %d", userID)

	source, err := s.userStore.FindByID(ctx, userID)
	if errors.Is(err, users.ErrUserNotFound) {
		log.Printf("match generation skipped: user %d not found", userID)
		RecordRun("skipped")
		return nil
	}
	if err != nil {
		RecordRun("failed")
		return fmt.Errorf("load source user %d: %w", userID, err)
	}

	if !s.selector.Eligible(source) {
		log.Printf("user %d missing required fields for matching", userID)
		RecordRun("ineligible")
		return nil
	}

	candidates, err := s.selector.Select(ctx, source)
	if err != nil {
		RecordRun("failed")
		return fmt.Errorf("select candidates for user %d: %w", userID, err)
	}

	log.Printf("found %d new candidates to score for user %d", len(candidates), userID)
	RecordCandidatesSelected(len(candidates))

	if len(candidates) == 0 {
		RecordRun("empty")
		return nil
	}

	// Score candidates with a bounded fan-out; each candidate is independent
	// and its failure never aborts the others.
	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup
	for _, candidate := range candidates {
		wg.Add(1)
		sem <- struct{}{}
		go func(c *Candidate) {
			defer wg.Done()
			defer func() { <-sem }()
			s.scoreCandidate(ctx, source, c)
		}(candidate)
	}
	wg.Wait()

	RecordRun("completed")
	RecordRunDuration(time.Since(started))
	log.Printf("match generation complete for user %d (%d candidates, %s)",
		userID, len(candidates), time.Since(started).Round(time.Millisecond))
	return nil
}

// scoreCandidate calls the oracle for one pair and persists both algorithm
// rows. Failures are logged and counted, never propagated.
func (s *service) scoreCandidate(ctx context.Context, source *users.User, candidate *Candidate) {
	target := candidate.User

	octx, cancel := context.WithTimeout(ctx, s.oracleTimeout)
	defer cancel()

	judgment, err := s.oracle.ScorePair(octx, buildPairRequest(source, target))
	if err != nil {
		log.Printf("error scoring match for %d: %v", target.ID, err)
		RecordOracleCall("error")
		return
	}
	RecordOracleCall("ok")

	oneWay, twoWay := DeriveScores(judgment.SourceSwipeProbability, judgment.TargetSwipeProbability)

	factors, err := json.Marshal(judgment.MatchFactors)
	if err != nil {
		log.Printf("error encoding match factors for %d: %v", target.ID, err)
		return
	}

	rows := []*MatchRecommendation{
		{SourceUserID: source.ID, TargetUserID: target.ID, Algorithm: AlgorithmOneWay, Score: oneWay},
		{SourceUserID: source.ID, TargetUserID: target.ID, Algorithm: AlgorithmTwoWay, Score: twoWay},
	}
	for _, rec := range rows {
		rec.Reasoning = &judgment.Reasoning
		rec.MatchFactors = factors

		if err := s.store.Upsert(ctx, rec); err != nil {
			log.Printf("error persisting %s recommendation for pair (%d,%d): %v",
				rec.Algorithm, source.ID, target.ID, err)
			RecordPersistFailure()
			return
		}
		RecordScore(rec.Algorithm, rec.Score)
	}
}

func (s *service) ListRecommendations(ctx context.Context, userID int64, algorithm string) ([]*MatchRecommendation, error) {
	if !ValidAlgorithm(algorithm) {
		return nil, ErrInvalidAlgorithm
	}
	return s.store.ListForSource(ctx, userID, algorithm)
}

// buildPairRequest maps both profiles onto the oracle's feature bundles
func buildPairRequest(source, target *users.User) *oracle.PairRequest {
	return &oracle.PairRequest{
		Source:      toFeatures(source, true),
		Target:      toFeatures(target, false),
		SourcePhoto: derefString(source.PhotoURL),
		TargetPhoto: derefString(target.PhotoURL),
	}
}

func toFeatures(u *users.User, includeInterestedIn bool) oracle.Features {
	f := oracle.Features{
		Name:       u.Name,
		Age:        derefInt(u.Age),
		Gender:     derefString(u.Gender),
		JobTitle:   derefString(u.JobTitle),
		Bio:        derefString(u.Bio),
		Interests:  u.Interests,
		LookingFor: derefString(u.LookingForDescription),
	}
	if includeInterestedIn {
		f.InterestedIn = u.InterestedIn
	}
	return f
}

func derefString(s *string) string {
	if s != nil {
		return *s
	}
	return ""
}

func derefInt(i *int) int {
	if i != nil {
		return *i
	}
	return 0
}
