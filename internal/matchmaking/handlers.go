package matchmaking

import (
	"errors"
	"net/http"

	"github.com/sparkmatch/sparkmatch-backend/internal/auth"
	"github.com/sparkmatch/sparkmatch-backend/internal/common/utils"
)

type Handler struct {
	service Service
	runner  *Runner
}

func NewHandler(service Service, runner *Runner) *Handler {
	return &Handler{service: service, runner: runner}
}

// Generate schedules a background generation run and returns immediately.
// Completion is observable only by polling the recommendations endpoint.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	jobID, err := h.runner.Enqueue(userID)
	if err != nil {
		if errors.Is(err, ErrQueueFull) {
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Generation queue is full, try again later")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to schedule match generation")
		return
	}

	utils.RespondWithJSON(w, http.StatusAccepted, GenerateResponse{
		JobID:   jobID,
		Message: "Match generation started in background.",
	})
}

// GetRecommendations returns the caller's stored recommendations for one
// algorithm, highest score first.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	algorithm := r.URL.Query().Get("type")
	if algorithm == "" {
		algorithm = AlgorithmOneWay
	}

	recommendations, err := h.service.ListRecommendations(r.Context(), userID, algorithm)
	if err != nil {
		if errors.Is(err, ErrInvalidAlgorithm) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid type. Must be 'one_way' or 'two_way'.")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get recommendations")
		return
	}

	if recommendations == nil {
		recommendations = []*MatchRecommendation{}
	}

	utils.RespondWithJSON(w, http.StatusOK, RecommendationsResponse{
		Algorithm:       algorithm,
		Recommendations: recommendations,
	})
}
