package users

import (
	"time"

	"github.com/lib/pq"
)

// Gender values accepted at the store boundary
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// User is a member profile. Interests and the gender-interest set are typed
// arrays validated at the boundary, not ad-hoc JSON blobs.
type User struct {
	ID                    int64          `json:"id" db:"id"`
	Email                 string         `json:"email" db:"email"`
	Name                  string         `json:"name" db:"name"`
	Age                   *int           `json:"age,omitempty" db:"age"`
	Gender                *string        `json:"gender,omitempty" db:"gender"`
	Location              *string        `json:"location,omitempty" db:"location"`
	Latitude              *float64       `json:"latitude,omitempty" db:"latitude"`
	Longitude             *float64       `json:"longitude,omitempty" db:"longitude"`
	JobTitle              *string        `json:"job_title,omitempty" db:"job_title"`
	Bio                   *string        `json:"bio,omitempty" db:"bio"`
	Interests             pq.StringArray `json:"interests" db:"interests"`
	LookingForDescription *string        `json:"looking_for_description,omitempty" db:"looking_for_description"`
	PhotoURL              *string        `json:"photo_url,omitempty" db:"photo_url"`
	InterestedIn          pq.StringArray `json:"interested_in" db:"interested_in"`
	AgeRangeMin           *int           `json:"age_range_min,omitempty" db:"age_range_min"`
	AgeRangeMax           *int           `json:"age_range_max,omitempty" db:"age_range_max"`
	OnboardingCompleted   bool           `json:"onboarding_completed" db:"onboarding_completed"`
	CreatedAt             time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at" db:"updated_at"`
}

// PublicProfile is the subset of a profile exposed to other members
type PublicProfile struct {
	ID        int64          `json:"id" db:"id"`
	Name      string         `json:"name" db:"name"`
	Age       *int           `json:"age,omitempty" db:"age"`
	Gender    *string        `json:"gender,omitempty" db:"gender"`
	Location  *string        `json:"location,omitempty" db:"location"`
	JobTitle  *string        `json:"job_title,omitempty" db:"job_title"`
	Bio       *string        `json:"bio,omitempty" db:"bio"`
	Interests pq.StringArray `json:"interests" db:"interests"`
	PhotoURL  *string        `json:"photo_url,omitempty" db:"photo_url"`
}

// AgeRange returns the user's preferred age range, falling back to the
// given defaults when either bound is unset
func (u *User) AgeRange(defaultMin, defaultMax int) (int, int) {
	min, max := defaultMin, defaultMax
	if u.AgeRangeMin != nil {
		min = *u.AgeRangeMin
	}
	if u.AgeRangeMax != nil {
		max = *u.AgeRangeMax
	}
	return min, max
}

// WantsGender reports whether a candidate's gender passes this user's
// gender-interest set. An empty set means no gender filter.
func (u *User) WantsGender(gender *string) bool {
	if len(u.InterestedIn) == 0 {
		return true
	}
	if gender == nil {
		return false
	}
	for _, g := range u.InterestedIn {
		if g == *gender {
			return true
		}
	}
	return false
}

// HasCoordinates reports whether the profile has a geocoded position
func (u *User) HasCoordinates() bool {
	return u.Latitude != nil && u.Longitude != nil
}

// Public projects the user onto its member-visible fields
func (u *User) Public() *PublicProfile {
	return &PublicProfile{
		ID:        u.ID,
		Name:      u.Name,
		Age:       u.Age,
		Gender:    u.Gender,
		Location:  u.Location,
		JobTitle:  u.JobTitle,
		Bio:       u.Bio,
		Interests: u.Interests,
		PhotoURL:  u.PhotoURL,
	}
}
