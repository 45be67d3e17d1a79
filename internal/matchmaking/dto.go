// internal/matchmaking/dto.go
package matchmaking

// DTOs for API responses

type GenerateResponse struct {
	JobID   string `json:"job_id"`
	Message string `json:"message"`
}

type RecommendationsResponse struct {
	Algorithm       string                 `json:"algorithm"`
	Recommendations []*MatchRecommendation `json:"recommendations"`
}
