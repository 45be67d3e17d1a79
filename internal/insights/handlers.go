// internal/insights/handlers.go
// AI profile-coaching endpoints. Thin HTTP layer over the oracle's
// analysis calls; the compatibility pipeline lives in internal/matchmaking.

package insights

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"unicode/utf8"

	"github.com/sparkmatch/sparkmatch-backend/internal/auth"
	"github.com/sparkmatch/sparkmatch-backend/internal/common/utils"
	"github.com/sparkmatch/sparkmatch-backend/internal/oracle"
	"github.com/sparkmatch/sparkmatch-backend/internal/users"
)

// minLookingForRunes is the floor below which profile analysis has nothing
// useful to work with
const minLookingForRunes = 5

// Analyzer is the slice of the oracle the insights surface needs
type Analyzer interface {
	AnalyzeProfile(ctx context.Context, req *oracle.ProfileRequest) (*oracle.ProfileAnalysis, error)
	AnalyzeImage(ctx context.Context, dataURL string) (*oracle.ImageAttributes, error)
}

// UserFinder loads the caller's stored profile
type UserFinder interface {
	FindByID(ctx context.Context, id int64) (*users.User, error)
}

type Handler struct {
	analyzer Analyzer
	users    UserFinder
}

func NewHandler(analyzer Analyzer, userFinder UserFinder) *Handler {
	return &Handler{analyzer: analyzer, users: userFinder}
}

// AnalyzeProfile runs the profile optimizer against the caller's stored
// profile and returns coaching suggestions.
func (h *Handler) AnalyzeProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.users.FindByID(r.Context(), userID)
	if errors.Is(err, users.ErrUserNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Printf("error loading user %d for profile analysis: %v", userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to analyze profile")
		return
	}

	lookingFor := ""
	if user.LookingForDescription != nil {
		lookingFor = *user.LookingForDescription
	}
	if utf8.RuneCountInString(lookingFor) < minLookingForRunes {
		utils.RespondWithError(w, http.StatusBadRequest, "Please describe who you are looking for to get AI insights.")
		return
	}

	req := &oracle.ProfileRequest{Profile: profileFeatures(user)}
	if user.PhotoURL != nil && *user.PhotoURL != "" {
		req.Photo = *user.PhotoURL
		req.IncludePhoto = true
	}

	analysis, err := h.analyzer.AnalyzeProfile(r.Context(), req)
	if err != nil {
		log.Printf("error analyzing profile for user %d: %v", userID, err)
		utils.RespondWithError(w, http.StatusBadGateway, "Profile analysis is temporarily unavailable")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, analysis)
}

// AnalyzeImage extracts physical attributes from an uploaded profile photo
func (h *Handler) AnalyzeImage(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.GetUserIDFromContext(r.Context()); !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req AnalyzeImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Image == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Image is required")
		return
	}

	attributes, err := h.analyzer.AnalyzeImage(r.Context(), req.Image)
	if err != nil {
		log.Printf("error analyzing image: %v", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Could not analyze the provided image")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, attributes)
}

func profileFeatures(u *users.User) oracle.Features {
	f := oracle.Features{
		Name:         u.Name,
		Interests:    u.Interests,
		InterestedIn: u.InterestedIn,
	}
	if u.Age != nil {
		f.Age = *u.Age
	}
	if u.Gender != nil {
		f.Gender = *u.Gender
	}
	if u.JobTitle != nil {
		f.JobTitle = *u.JobTitle
	}
	if u.Bio != nil {
		f.Bio = *u.Bio
	}
	if u.LookingForDescription != nil {
		f.LookingFor = *u.LookingForDescription
	}
	return f
}
