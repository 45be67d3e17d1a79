package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocodeFirstResultWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Lisbon, Portugal", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Write([]byte(`[{"lat":"38.7223","lon":"-9.1393"},{"lat":"0","lon":"0"}]`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.URL, 5*time.Second)
	lat, lon, err := g.Geocode(context.Background(), "Lisbon, Portugal")

	require.NoError(t, err)
	assert.InDelta(t, 38.7223, lat, 1e-6)
	assert.InDelta(t, -9.1393, lon, 1e-6)
}

func TestGeocodeNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.URL, 5*time.Second)
	_, _, err := g.Geocode(context.Background(), "nowhere at all")

	assert.ErrorIs(t, err, ErrNoResults)
}

func TestGeocodeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.URL, 5*time.Second)
	_, _, err := g.Geocode(context.Background(), "Lisbon")

	assert.Error(t, err)
}
