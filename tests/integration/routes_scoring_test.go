package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/mattw23n/wayfinders/explain"
	"github.com/mattw23n/wayfinders/geo"
	"github.com/mattw23n/wayfinders/routing"
	"github.com/mattw23n/wayfinders/tests/helpers"
	"github.com/mattw23n/wayfinders/venue"
)

// End-to-end planning pass: fetch routes from a directions double, score
// them against the venue datasets, annotate with an LLM double.
func TestRoutePlanning_FetchScoreExplain(t *testing.T) {
	ors := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(helpers.CampusRouteGeoJSON))
	}))
	defer ors.Close()

	llm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{
				{"type": "text", "text": "Route 1: Best choice: short and quiet before the lecture crowd."},
			},
		})
	}))
	defer llm.Close()

	dir := t.TempDir()
	venuesPath := filepath.Join(dir, "venues.json")
	classesPath := filepath.Join(dir, "classes.json")
	if err := os.WriteFile(venuesPath, []byte(helpers.VenuesJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(classesPath, []byte(helpers.ClassesJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	store := venue.NewStore()
	if err := store.LoadVenues(venuesPath); err != nil {
		t.Fatal(err)
	}
	if err := store.LoadClasses(classesPath); err != nil {
		t.Fatal(err)
	}

	client := routing.NewClient(ors.URL, "test-key", "", 0)
	routes, err := client.Routes(context.Background(),
		geo.Coordinate{Lon: 103.7800, Lat: 1.3000},
		geo.Coordinate{Lon: 103.7820, Lat: 1.3020})
	if err != nil {
		t.Fatal(err)
	}

	// Monday 10:00: CS1010 at LT17 is starting, its 200 students weigh on
	// any route passing the lecture theatre.
	scored := store.ScoreRoutes(routes, helpers.Monday10)
	if len(scored) != 1 {
		t.Fatalf("expected 1 scored route, got %d", len(scored))
	}
	if scored[0].PenaltyScore <= 0 {
		t.Errorf("route passes LT17 during a class start, expected a penalty, got %f", scored[0].PenaltyScore)
	}
	if len(scored[0].CriticalVenues) != 1 || scored[0].CriticalVenues[0].ID != "LT17" {
		t.Errorf("expected LT17 as the critical venue, got %+v", scored[0].CriticalVenues)
	}

	explainer := explain.New(llm.URL, "test-key", "test-model", 0)
	explainer.Annotate(context.Background(), scored)
	if scored[0].Explanation != "Best choice: short and quiet before the lecture crowd." {
		t.Errorf("unexpected explanation: %q", scored[0].Explanation)
	}

	// The busy-venue status endpoint view agrees with the scoring.
	status := store.VenueStatus(helpers.Monday10)
	if len(status) != 1 || status[0].ID != "LT17" {
		t.Errorf("expected LT17 in venue status, got %+v", status)
	}
}
