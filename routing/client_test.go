package routing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mattw23n/wayfinders/geo"
)

const directionsFixture = `{
	"type": "FeatureCollection",
	"features": [{
		"type": "Feature",
		"geometry": {
			"type": "LineString",
			"coordinates": [[103.7800, 1.3000], [103.7810, 1.3010]]
		},
		"properties": {
			"summary": {"distance": 157.2, "duration": 113.0},
			"segments": [{
				"distance": 157.2,
				"duration": 113.0,
				"steps": [
					{"instruction": "Head north", "name": "Kent Ridge Drive", "distance": 157.2, "duration": 113.0, "way_points": [0, 1]}
				]
			}]
		}
	}]
}`

func TestClientRoutes(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(directionsFixture))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "", 0)
	routes, err := c.Routes(context.Background(),
		geo.Coordinate{Lon: 103.7800, Lat: 1.3000},
		geo.Coordinate{Lon: 103.7810, Lat: 1.3010})
	if err != nil {
		t.Fatal(err)
	}

	if gotAuth != "test-key" {
		t.Errorf("expected API key in Authorization header, got %q", gotAuth)
	}
	if gotPath != "/v2/directions/foot-walking/geojson" {
		t.Errorf("unexpected path: %s", gotPath)
	}

	coords, ok := gotBody["coordinates"].([]interface{})
	if !ok || len(coords) != 2 {
		t.Fatalf("expected two coordinate pairs, got %v", gotBody["coordinates"])
	}
	first := coords[0].([]interface{})
	if first[0].(float64) != 103.7800 || first[1].(float64) != 1.3000 {
		t.Errorf("coordinates must be longitude first: %v", first)
	}
	alt, ok := gotBody["alternative_routes"].(map[string]interface{})
	if !ok {
		t.Fatal("alternative_routes missing from request")
	}
	if alt["target_count"].(float64) != 3 {
		t.Errorf("expected 3 alternatives requested, got %v", alt["target_count"])
	}

	if len(routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(routes))
	}
	if routes[0].StepCount() != 1 || routes[0].Steps[0].Instruction != "Head north" {
		t.Errorf("route decoded incorrectly: %+v", routes[0])
	}
}

func TestClientRoutes_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "quota exceeded"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "", 0)
	if _, err := c.Routes(context.Background(), geo.Coordinate{}, geo.Coordinate{}); err == nil {
		t.Fatal("expected error on HTTP 403")
	}
}

func TestClientRoutes_NoRoutes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"type": "FeatureCollection", "features": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "", 0)
	if _, err := c.Routes(context.Background(), geo.Coordinate{}, geo.Coordinate{}); err == nil {
		t.Fatal("expected error on empty feature collection")
	}
}

func TestClientRoutes_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(directionsFixture))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	c := NewClient(srv.URL, "k", "", 0)
	if _, err := c.Routes(ctx, geo.Coordinate{}, geo.Coordinate{}); err == nil {
		t.Fatal("expected context deadline error")
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("", "k", "", 0)
	if c.baseURL != DefaultBaseURL {
		t.Errorf("expected default base URL, got %s", c.baseURL)
	}
	if c.httpClient.Timeout != DefaultTimeout {
		t.Errorf("expected default timeout, got %v", c.httpClient.Timeout)
	}
}
