package matchmaking

import (
	"encoding/json"
	"time"

	"github.com/sparkmatch/sparkmatch-backend/internal/users"
)

// Scoring algorithms persisted per pair
const (
	AlgorithmOneWay = "one_way"
	AlgorithmTwoWay = "two_way"
)

// ValidAlgorithm reports whether the given name is a known algorithm
func ValidAlgorithm(algorithm string) bool {
	return algorithm == AlgorithmOneWay || algorithm == AlgorithmTwoWay
}

// MatchRecommendation is one persisted score, uniquely keyed by
// (source_user_id, target_user_id, algorithm). Re-scoring a pair overwrites
// the row and bumps updated_at; rows are never duplicated.
type MatchRecommendation struct {
	ID           int64           `json:"id" db:"id"`
	SourceUserID int64           `json:"source_user_id" db:"source_user_id"`
	TargetUserID int64           `json:"target_user_id" db:"target_user_id"`
	Algorithm    string          `json:"algorithm" db:"algorithm"`
	Score        int             `json:"score" db:"score"`
	Reasoning    *string         `json:"reasoning,omitempty" db:"reasoning"`
	MatchFactors json.RawMessage `json:"match_factors,omitempty" db:"match_factors"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`

	// Joined field
	TargetUser *users.PublicProfile `json:"target_user,omitempty"`
}

// Candidate is a prospective match for one generation run. The distance is
// transient and never persisted.
type Candidate struct {
	User       *users.User `json:"user"`
	DistanceKm float64     `json:"distance_km"`
}
