// internal/admin/repository.go
// Aggregate stats for the operator dashboard

package admin

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// DashboardStats summarizes member and recommendation activity.
// Recommendation rows stand in for swipe activity until swipes exist.
type DashboardStats struct {
	UserCount       int64 `json:"user_count" db:"user_count"`
	ActiveUserCount int64 `json:"active_user_count" db:"active_user_count"`
	MatchCount      int64 `json:"match_count" db:"match_count"`
	AvgMatchScore   int64 `json:"avg_match_score" db:"avg_match_score"`
}

type Store interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}

type postgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

func (s *postgresStore) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users) AS user_count,
			(SELECT COUNT(*) FROM users WHERE onboarding_completed) AS active_user_count,
			(SELECT COUNT(*) FROM match_recommendations) AS match_count,
			(SELECT COALESCE(ROUND(AVG(score)), 0)::BIGINT FROM match_recommendations) AS avg_match_score
	`

	var stats DashboardStats
	if err := s.db.GetContext(ctx, &stats, query); err != nil {
		return nil, err
	}
	return &stats, nil
}
