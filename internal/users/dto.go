// internal/users/dto.go
package users

// DTOs for API requests/responses

type UpdateProfileRequest struct {
	Name                  *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Age                   *int     `json:"age" validate:"omitempty,gte=18,lte=120"`
	Gender                *string  `json:"gender" validate:"omitempty,oneof=male female"`
	Location              *string  `json:"location" validate:"omitempty,max=200"`
	Latitude              *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude             *float64 `json:"longitude" validate:"omitempty,longitude"`
	JobTitle              *string  `json:"job_title" validate:"omitempty,max=100"`
	Bio                   *string  `json:"bio" validate:"omitempty,max=2000"`
	Interests             []string `json:"interests" validate:"omitempty,max=20,dive,min=1,max=50"`
	LookingForDescription *string  `json:"looking_for_description" validate:"omitempty,max=2000"`
	PhotoURL              *string  `json:"photo_url"`
	InterestedIn          []string `json:"interested_in" validate:"omitempty,dive,oneof=male female"`
	AgeRangeMin           *int     `json:"age_range_min" validate:"omitempty,gte=18,lte=120"`
	AgeRangeMax           *int     `json:"age_range_max" validate:"omitempty,gte=18,lte=120"`
	OnboardingCompleted   *bool    `json:"onboarding_completed"`
}

// apply copies the provided fields onto the user
func (req *UpdateProfileRequest) apply(u *User) {
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Age != nil {
		u.Age = req.Age
	}
	if req.Gender != nil {
		u.Gender = req.Gender
	}
	if req.Location != nil {
		u.Location = req.Location
	}
	if req.Latitude != nil {
		u.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		u.Longitude = req.Longitude
	}
	if req.JobTitle != nil {
		u.JobTitle = req.JobTitle
	}
	if req.Bio != nil {
		u.Bio = req.Bio
	}
	if req.Interests != nil {
		u.Interests = req.Interests
	}
	if req.LookingForDescription != nil {
		u.LookingForDescription = req.LookingForDescription
	}
	if req.PhotoURL != nil {
		u.PhotoURL = req.PhotoURL
	}
	if req.InterestedIn != nil {
		u.InterestedIn = req.InterestedIn
	}
	if req.AgeRangeMin != nil {
		u.AgeRangeMin = req.AgeRangeMin
	}
	if req.AgeRangeMax != nil {
		u.AgeRangeMax = req.AgeRangeMax
	}
	if req.OnboardingCompleted != nil {
		u.OnboardingCompleted = *req.OnboardingCompleted
	}
}
