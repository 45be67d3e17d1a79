package matchmaking

import (
	"context"
	"sort"

	"github.com/sparkmatch/sparkmatch-backend/internal/geo"
	"github.com/sparkmatch/sparkmatch-backend/internal/users"
)

// unknownDistanceKm ranks candidates without coordinates last without
// excluding them; location text alone still makes a valid candidate.
const unknownDistanceKm = 999999

// UserStore is the slice of the user store the selector needs
type UserStore interface {
	FindByID(ctx context.Context, id int64) (*users.User, error)
	FindCandidates(ctx context.Context, filter *users.CandidateFilter) ([]*users.User, error)
}

// SelectorConfig tunes candidate selection
type SelectorConfig struct {
	Limit               int // max candidates per run
	MinLookingForLength int // eligibility threshold for looking-for text
	DefaultMinAge       int
	DefaultMaxAge       int
}

// CandidateSelector picks and ranks the candidates for one generation run
type CandidateSelector struct {
	store UserStore
	cfg   SelectorConfig
}

func NewCandidateSelector(store UserStore, cfg SelectorConfig) *CandidateSelector {
	if cfg.Limit <= 0 {
		cfg.Limit = 10
	}
	if cfg.MinLookingForLength <= 0 {
		cfg.MinLookingForLength = 1
	}
	if cfg.DefaultMinAge <= 0 {
		cfg.DefaultMinAge = 18
	}
	if cfg.DefaultMaxAge <= 0 {
		cfg.DefaultMaxAge = 100
	}
	return &CandidateSelector{store: store, cfg: cfg}
}

// Eligible reports whether a source user qualifies for a generation run.
// Ineligibility is a policy outcome, not an error: the run becomes a no-op.
func (s *CandidateSelector) Eligible(source *users.User) bool {
	if source.LookingForDescription == nil ||
		len([]rune(*source.LookingForDescription)) < s.cfg.MinLookingForLength {
		return false
	}
	if source.Location == nil || *source.Location == "" {
		return false
	}
	return true
}

// Select returns up to Limit candidates for the source user, hard-filtered
// by age, gender interest and prior scoring, ranked by proximity. Already
// scored candidates are excluded so repeated runs page through the pool
// instead of re-scoring it.
func (s *CandidateSelector) Select(ctx context.Context, source *users.User) ([]*Candidate, error) {
	ageMin, ageMax := source.AgeRange(s.cfg.DefaultMinAge, s.cfg.DefaultMaxAge)

	pool, err := s.store.FindCandidates(ctx, &users.CandidateFilter{
		ExcludeID:              source.ID,
		AgeMin:                 ageMin,
		AgeMax:                 ageMax,
		ExcludeAlreadyScoredBy: source.ID,
	})
	if err != nil {
		return nil, err
	}

	candidates := make([]*Candidate, 0, len(pool))
	for _, user := range pool {
		if !source.WantsGender(user.Gender) {
			continue
		}

		distance := float64(unknownDistanceKm)
		if source.HasCoordinates() && user.HasCoordinates() {
			distance = geo.Distance(
				*source.Latitude, *source.Longitude,
				*user.Latitude, *user.Longitude,
			)
		}

		candidates = append(candidates, &Candidate{User: user, DistanceKm: distance})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].DistanceKm < candidates[j].DistanceKm
	})

	if len(candidates) > s.cfg.Limit {
		candidates = candidates[:s.cfg.Limit]
	}

	return candidates, nil
}
