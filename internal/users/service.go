// internal/users/service.go

package users

import (
	"context"
	"errors"
	"log"

	"github.com/sparkmatch/sparkmatch-backend/internal/geo"
)

var ErrInvalidAgeRange = errors.New("age range minimum exceeds maximum")

type Service interface {
	GetProfile(ctx context.Context, userID int64) (*User, error)
	UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*User, error)
}

type service struct {
	repo     Repository
	geocoder geo.Geocoder // nil when geocoding is disabled
}

func NewService(repo Repository, geocoder geo.Geocoder) Service {
	return &service{
		repo:     repo,
		geocoder: geocoder,
	}
}

func (s *service) GetProfile(ctx context.Context, userID int64) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*User, error) {
	if req.AgeRangeMin != nil && req.AgeRangeMax != nil && *req.AgeRangeMin > *req.AgeRangeMax {
		return nil, ErrInvalidAgeRange
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	locationChanged := req.Location != nil &&
		(user.Location == nil || *user.Location != *req.Location)
	coordsSupplied := req.Latitude != nil && req.Longitude != nil

	req.apply(user)

	// A changed location invalidates the old coordinates. Dropping them
	// before the lookup means a failed geocode leaves the profile on the
	// distance sentinel instead of ranking against the previous location.
	if locationChanged && !coordsSupplied {
		user.Latitude = nil
		user.Longitude = nil
	}

	// Derive coordinates from the location text when the caller didn't
	// supply them. Best effort: a failed lookup leaves coordinates unset.
	if s.geocoder != nil && !coordsSupplied && user.Location != nil && *user.Location != "" {
		if locationChanged || !user.HasCoordinates() {
			lat, lon, err := s.geocoder.Geocode(ctx, *user.Location)
			if err != nil {
				log.Printf("geocode failed for user %d (%q): %v", userID, *user.Location, err)
			} else {
				user.Latitude = &lat
				user.Longitude = &lon
			}
		}
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
