package matchmaking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedRequest(method, target string, userID int64) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := context.WithValue(req.Context(), "userID", userID)
	return req.WithContext(ctx)
}

func TestGenerateReturnsAccepted(t *testing.T) {
	svc := newRecordingService()
	runner := NewRunner(svc, NewLocalLocker(), RunnerConfig{QueueSize: 4})
	handler := NewHandler(svc, runner)

	rr := httptest.NewRecorder()
	handler.Generate(rr, authedRequest(http.MethodPost, "/api/v1/matches/generate", 7))

	require.Equal(t, http.StatusAccepted, rr.Code)

	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.JobID)
	assert.Equal(t, "Match generation started in background.", resp.Message)
}

func TestGenerateQueueFull(t *testing.T) {
	svc := newRecordingService()
	runner := NewRunner(svc, NewLocalLocker(), RunnerConfig{QueueSize: 1})
	handler := NewHandler(svc, runner)

	_, err := runner.Enqueue(1)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	handler.Generate(rr, authedRequest(http.MethodPost, "/api/v1/matches/generate", 7))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestGenerateRequiresAuth(t *testing.T) {
	svc := newRecordingService()
	runner := NewRunner(svc, NewLocalLocker(), RunnerConfig{})
	handler := NewHandler(svc, runner)

	rr := httptest.NewRecorder()
	handler.Generate(rr, httptest.NewRequest(http.MethodPost, "/api/v1/matches/generate", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGetRecommendationsDefaultsToOneWay(t *testing.T) {
	source := testUser(1, "Source", 30, "male", withCoords(0, 0))
	f := newServiceFixture(ServiceConfig{}, source,
		testUser(2, "Maya", 28, "female", withCoords(0.01, 0)))
	require.NoError(t, f.service.GenerateForUser(context.Background(), 1))

	handler := NewHandler(f.service, nil)

	rr := httptest.NewRecorder()
	handler.GetRecommendations(rr, authedRequest(http.MethodGet, "/api/v1/matches/recommendations", 1))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp RecommendationsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, AlgorithmOneWay, resp.Algorithm)
	require.Len(t, resp.Recommendations, 1)
	assert.Equal(t, int64(2), resp.Recommendations[0].TargetUserID)
}

func TestGetRecommendationsInvalidType(t *testing.T) {
	f := newServiceFixture(ServiceConfig{})
	handler := NewHandler(f.service, nil)

	rr := httptest.NewRecorder()
	handler.GetRecommendations(rr, authedRequest(http.MethodGet, "/api/v1/matches/recommendations?type=mutual", 1))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "one_way")
}

func TestGetRecommendationsEmptyIsArray(t *testing.T) {
	f := newServiceFixture(ServiceConfig{})
	handler := NewHandler(f.service, nil)

	rr := httptest.NewRecorder()
	handler.GetRecommendations(rr, authedRequest(http.MethodGet, "/api/v1/matches/recommendations?type=two_way", 1))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"recommendations":[]`)
}
