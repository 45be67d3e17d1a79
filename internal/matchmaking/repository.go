package matchmaking

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sparkmatch/sparkmatch-backend/internal/users"
)

// Store persists per-pair scores with upsert-by-natural-key semantics
type Store interface {
	Upsert(ctx context.Context, rec *MatchRecommendation) error
	ListForSource(ctx context.Context, sourceUserID int64, algorithm string) ([]*MatchRecommendation, error)
}

type postgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

// Upsert inserts the recommendation or, when the (source, target, algorithm)
// key already exists, overwrites score, reasoning and factors and refreshes
// the timestamp. Re-running generation never duplicates rows.
func (s *postgresStore) Upsert(ctx context.Context, rec *MatchRecommendation) error {
	query := `
		INSERT INTO match_recommendations (
			source_user_id, target_user_id, algorithm, score, reasoning, match_factors
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (source_user_id, target_user_id, algorithm)
		DO UPDATE SET
			score = EXCLUDED.score,
			reasoning = EXCLUDED.reasoning,
			match_factors = EXCLUDED.match_factors,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id, created_at, updated_at
	`

	return s.db.QueryRowxContext(
		ctx, query,
		rec.SourceUserID, rec.TargetUserID, rec.Algorithm,
		rec.Score, rec.Reasoning, rec.MatchFactors,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
}

// ListForSource returns the source user's recommendations under one
// algorithm, highest score first, each joined with the target's public
// profile fields.
func (s *postgresStore) ListForSource(ctx context.Context, sourceUserID int64, algorithm string) ([]*MatchRecommendation, error) {
	query := `
		SELECT mr.id, mr.source_user_id, mr.target_user_id, mr.algorithm,
		       mr.score, mr.reasoning, mr.match_factors, mr.created_at, mr.updated_at,
		       u.id AS target_id, u.name AS target_name, u.age AS target_age,
		       u.gender AS target_gender, u.location AS target_location,
		       u.job_title AS target_job_title, u.bio AS target_bio,
		       u.interests AS target_interests, u.photo_url AS target_photo_url
		FROM match_recommendations mr
		JOIN users u ON mr.target_user_id = u.id
		WHERE mr.source_user_id = $1 AND mr.algorithm = $2
		ORDER BY mr.score DESC, mr.updated_at DESC
	`

	rows, err := s.db.QueryxContext(ctx, query, sourceUserID, algorithm)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recommendations []*MatchRecommendation
	for rows.Next() {
		var rec MatchRecommendation
		var target users.PublicProfile

		err := rows.Scan(
			&rec.ID, &rec.SourceUserID, &rec.TargetUserID, &rec.Algorithm,
			&rec.Score, &rec.Reasoning, &rec.MatchFactors, &rec.CreatedAt, &rec.UpdatedAt,
			&target.ID, &target.Name, &target.Age,
			&target.Gender, &target.Location,
			&target.JobTitle, &target.Bio,
			&target.Interests, &target.PhotoURL,
		)
		if err != nil {
			return nil, err
		}

		rec.TargetUser = &target
		recommendations = append(recommendations, &rec)
	}

	return recommendations, rows.Err()
}
