package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// MapboxDirections calls the Mapbox Directions v5 API.
type MapboxDirections struct {
	baseURL string
	token   string
	httpc   *http.Client
}

func NewMapboxDirections(baseURL, token string) *MapboxDirections {
	return &MapboxDirections{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (m *MapboxDirections) Directions(ctx context.Context, req DirectionsRequest) (*DirectionsResponse, error) {
	if m.token == "" {
		return nil, fmt.Errorf("mapbox: missing access token")
	}
	coords := fmt.Sprintf("%f,%f;%f,%f",
		req.Origin.Lng, req.Origin.Lat, req.Destination.Lng, req.Destination.Lat)

	q := url.Values{}
	q.Set("access_token", m.token)
	q.Set("geometries", "geojson")
	q.Set("steps", "true")
	q.Set("overview", "full")
	q.Set("alternatives", fmt.Sprintf("%t", req.Alternatives))
	q.Set("annotations", "distance,duration")

	endpoint := fmt.Sprintf("%s/directions/v5/mapbox/%s/%s?%s",
		m.baseURL, url.PathEscape(req.Profile), url.PathEscape(coords), q.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("mapbox: build request: %w", err)
	}
	resp, err := m.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("mapbox: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("mapbox: read response: %w", err)
	}

	var out DirectionsResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("mapbox: status %d: unmarshal response: %w", resp.StatusCode, err)
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("mapbox api error: status %d: %s", resp.StatusCode, out.Message)
	}
	switch out.Code {
	case "", "Ok":
	case "NoRoute", "NoSegment":
		return nil, fmt.Errorf("mapbox %s: %w", out.Code, ErrNoRoute)
	default:
		return nil, fmt.Errorf("mapbox api error: %s: %s", out.Code, out.Message)
	}
	return &out, nil
}
