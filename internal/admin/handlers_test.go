package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	stats *DashboardStats
	err   error
}

func (s *fakeStore) DashboardStats(context.Context) (*DashboardStats, error) {
	return s.stats, s.err
}

func authedRequest(userID int64) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil)
	ctx := context.WithValue(req.Context(), "userID", userID)
	return req.WithContext(ctx)
}

func TestDashboardReturnsStats(t *testing.T) {
	handler := NewHandler(&fakeStore{stats: &DashboardStats{
		UserCount:       120,
		ActiveUserCount: 88,
		MatchCount:      640,
		AvgMatchScore:   57,
	}})

	rr := httptest.NewRecorder()
	handler.Dashboard(rr, authedRequest(1))

	require.Equal(t, http.StatusOK, rr.Code)

	var stats DashboardStats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, int64(120), stats.UserCount)
	assert.Equal(t, int64(88), stats.ActiveUserCount)
	assert.Equal(t, int64(640), stats.MatchCount)
	assert.Equal(t, int64(57), stats.AvgMatchScore)
}

func TestDashboardRequiresAuth(t *testing.T) {
	handler := NewHandler(&fakeStore{})

	rr := httptest.NewRecorder()
	handler.Dashboard(rr, httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestDashboardStoreFailure(t *testing.T) {
	handler := NewHandler(&fakeStore{err: errors.New("connection reset")})

	rr := httptest.NewRecorder()
	handler.Dashboard(rr, authedRequest(1))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
