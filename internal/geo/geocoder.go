package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

var ErrNoResults = errors.New("no geocoding results")

// Geocoder resolves free-text locations to coordinates
type Geocoder interface {
	Geocode(ctx context.Context, query string) (lat, lon float64, err error)
}

// NominatimGeocoder looks up locations against the OpenStreetMap Nominatim API
type NominatimGeocoder struct {
	baseURL    string
	httpClient *http.Client
}

// NewNominatimGeocoder creates a geocoder against the given Nominatim base URL
func NewNominatimGeocoder(baseURL string, timeout time.Duration) *NominatimGeocoder {
	return &NominatimGeocoder{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode returns the coordinates of the first search result for the query
func (g *NominatimGeocoder) Geocode(ctx context.Context, query string) (float64, float64, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", g.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("build geocode request: %w", err)
	}
	// Nominatim usage policy requires an identifying User-Agent
	req.Header.Set("User-Agent", "sparkmatch-backend/1.0")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("geocode request failed with status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, 0, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(results) == 0 {
		return 0, 0, ErrNoResults
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse latitude: %w", err)
	}

	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse longitude: %w", err)
	}

	return lat, lon, nil
}
