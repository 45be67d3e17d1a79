package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrUserNotFound = errors.New("user not found")

// CandidateFilter holds the hard filters applied in the candidate query
type CandidateFilter struct {
	ExcludeID              int64
	AgeMin                 int
	AgeMax                 int
	ExcludeAlreadyScoredBy int64
}

type Repository interface {
	FindByID(ctx context.Context, id int64) (*User, error)
	FindCandidates(ctx context.Context, filter *CandidateFilter) ([]*User, error)
	Update(ctx context.Context, user *User) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const userColumns = `
	id, email, name, age, gender, location, latitude, longitude,
	job_title, bio, interests, looking_for_description, photo_url,
	interested_in, age_range_min, age_range_max, onboarding_completed,
	created_at, updated_at
`

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	var user User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// FindCandidates returns users passing the age window who have not yet been
// scored for the given source user. The one_way algorithm is the canonical
// marker of a scored pair; both rows are always written together.
func (r *postgresRepository) FindCandidates(ctx context.Context, filter *CandidateFilter) ([]*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		WHERE u.id <> $1
		  AND u.age IS NOT NULL
		  AND u.age BETWEEN $2 AND $3
		  AND NOT EXISTS (
		      SELECT 1 FROM match_recommendations mr
		      WHERE mr.source_user_id = $4
		        AND mr.target_user_id = u.id
		        AND mr.algorithm = 'one_way'
		  )
	`

	rows, err := r.db.QueryxContext(ctx, query,
		filter.ExcludeID, filter.AgeMin, filter.AgeMax, filter.ExcludeAlreadyScoredBy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []*User
	for rows.Next() {
		var user User
		if err := rows.StructScan(&user); err != nil {
			return nil, err
		}
		candidates = append(candidates, &user)
	}

	return candidates, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, user *User) error {
	query := `
		UPDATE users
		SET name = $2, age = $3, gender = $4, location = $5,
		    latitude = $6, longitude = $7, job_title = $8, bio = $9,
		    interests = $10, looking_for_description = $11, photo_url = $12,
		    interested_in = $13, age_range_min = $14, age_range_max = $15,
		    onboarding_completed = $16, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowxContext(
		ctx, query,
		user.ID, user.Name, user.Age, user.Gender, user.Location,
		user.Latitude, user.Longitude, user.JobTitle, user.Bio,
		pq.Array([]string(user.Interests)), user.LookingForDescription, user.PhotoURL,
		pq.Array([]string(user.InterestedIn)), user.AgeRangeMin, user.AgeRangeMax,
		user.OnboardingCompleted,
	).Scan(&user.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}

	return err
}
