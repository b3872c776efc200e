package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mattw23n/wayfinders/geo"
	"github.com/mattw23n/wayfinders/route"
)

const (
	// DefaultBaseURL is the public OpenRouteService endpoint.
	DefaultBaseURL = "https://api.openrouteservice.org"

	// DefaultProfile is the routing profile for pedestrian navigation.
	DefaultProfile = "foot-walking"

	// DefaultTimeout bounds a single directions request.
	DefaultTimeout = 15 * time.Second
)

// Alternatives controls how many route variants are requested. The weight and
// share factors allow meaningfully different detours while keeping the
// variants walkable.
var Alternatives = struct {
	TargetCount  int     `json:"target_count"`
	WeightFactor float64 `json:"weight_factor"`
	ShareFactor  float64 `json:"share_factor"`
}{
	TargetCount:  3,
	WeightFactor: 1.5,
	ShareFactor:  0.6,
}

// Client fetches pedestrian directions over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	profile    string
	httpClient *http.Client
}

// NewClient creates a directions client. Empty baseURL and profile select the
// public OpenRouteService endpoint and the walking profile.
func NewClient(baseURL, apiKey, profile string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if profile == "" {
		profile = DefaultProfile
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		profile:    profile,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type directionsRequest struct {
	Coordinates  [][2]float64 `json:"coordinates"`
	Alternatives interface{}  `json:"alternative_routes,omitempty"`
}

// Routes fetches walking routes from start to end, alternatives included.
// The first returned route is the provider's preferred one.
func (c *Client) Routes(ctx context.Context, start, end geo.Coordinate) ([]route.Route, error) {
	body, err := json.Marshal(directionsRequest{
		Coordinates:  [][2]float64{{start.Lon, start.Lat}, {end.Lon, end.Lat}},
		Alternatives: Alternatives,
	})
	if err != nil {
		return nil, fmt.Errorf("encode directions request: %w", err)
	}

	url := fmt.Sprintf("%s/v2/directions/%s/geojson", c.baseURL, c.profile)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build directions request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch directions: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read directions response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from directions API: %s", resp.StatusCode, truncate(data, 200))
	}

	routes, err := route.ParseFeatureCollection(data)
	if err != nil {
		return nil, err
	}
	if len(routes) == 0 {
		return nil, fmt.Errorf("directions API returned no routes")
	}
	return routes, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
