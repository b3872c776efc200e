package route

import (
	"testing"
)

const sampleGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {
        "summary": {"distance": 312.4, "duration": 225.0},
        "segments": [
          {
            "distance": 312.4,
            "duration": 225.0,
            "steps": [
              {"distance": 150.1, "duration": 108.0, "instruction": "Head north on Kent Ridge Crescent", "name": "Kent Ridge Crescent", "way_points": [0, 1]},
              {"distance": 110.3, "duration": 79.4, "instruction": "Turn right onto Lower Kent Ridge Road", "name": "Lower Kent Ridge Road", "way_points": [1, 2]},
              {"distance": 52.0, "duration": 37.6, "instruction": "Arrive at your destination", "name": "-", "way_points": [2, 3]}
            ]
          }
        ]
      },
      "geometry": {
        "type": "LineString",
        "coordinates": [
          [103.7800, 1.3000],
          [103.7810, 1.3010],
          [103.7820, 1.3020],
          [103.7825, 1.3023]
        ]
      }
    }
  ]
}`

func TestParseFeatureCollection(t *testing.T) {
	routes, err := ParseFeatureCollection([]byte(sampleGeoJSON))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(routes))
	}

	r := routes[0]
	if len(r.Geometry) != 4 {
		t.Errorf("expected 4 geometry coordinates, got %d", len(r.Geometry))
	}
	if r.StepCount() != 3 {
		t.Fatalf("expected 3 steps, got %d", r.StepCount())
	}
	if r.DistanceMeters != 312.4 {
		t.Errorf("summary distance mismatch: %f", r.DistanceMeters)
	}

	first := r.Steps[0]
	if first.Instruction != "Head north on Kent Ridge Crescent" {
		t.Errorf("unexpected instruction: %q", first.Instruction)
	}
	if first.StreetName != "Kent Ridge Crescent" {
		t.Errorf("unexpected street name: %q", first.StreetName)
	}
	if first.WaypointRange != [2]int{0, 1} {
		t.Errorf("unexpected waypoint range: %v", first.WaypointRange)
	}
}

func TestParseFeatureCollection_MalformedJSON(t *testing.T) {
	if _, err := ParseFeatureCollection([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestParseFeatureCollection_NoSegments(t *testing.T) {
	payload := `{"features":[{"geometry":{"type":"LineString","coordinates":[[103.78,1.30],[103.79,1.31]]},"properties":{}}]}`
	routes, err := ParseFeatureCollection([]byte(payload))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if routes[0].StepCount() != 0 {
		t.Errorf("expected 0 steps for feature without segments, got %d", routes[0].StepCount())
	}
}

func TestParseFirst_Empty(t *testing.T) {
	if _, err := ParseFirst([]byte(`{"features":[]}`)); err == nil {
		t.Fatal("expected error for empty feature collection")
	}
}

func TestWaypointForStep(t *testing.T) {
	r, err := ParseFirst([]byte(sampleGeoJSON))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	tests := []struct {
		name    string
		index   int
		wantOK  bool
		wantLon float64
		wantLat float64
	}{
		{name: "first step ends at second coordinate", index: 0, wantOK: true, wantLon: 103.7810, wantLat: 1.3010},
		{name: "last step ends at final coordinate", index: 2, wantOK: true, wantLon: 103.7825, wantLat: 1.3023},
		{name: "negative index", index: -1, wantOK: false},
		{name: "index past last step", index: 3, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wp, ok := r.WaypointForStep(tt.index)
			if ok != tt.wantOK {
				t.Fatalf("ok mismatch: expected %v, got %v", tt.wantOK, ok)
			}
			if !ok {
				return
			}
			if wp.Lon != tt.wantLon || wp.Lat != tt.wantLat {
				t.Errorf("expected (%f, %f), got (%f, %f)", tt.wantLon, tt.wantLat, wp.Lon, wp.Lat)
			}
		})
	}
}

func TestWaypointForStep_OutOfRangeGeometryIndex(t *testing.T) {
	r, err := ParseFirst([]byte(sampleGeoJSON))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	// Corrupt a copy: step referencing a geometry index that does not exist.
	broken := *r
	broken.Steps = append([]Step(nil), r.Steps...)
	broken.Steps[1].WaypointRange = [2]int{1, 99}

	if _, ok := broken.WaypointForStep(1); ok {
		t.Error("expected failure for waypoint index beyond geometry")
	}
}

func TestStepAt(t *testing.T) {
	r, err := ParseFirst([]byte(sampleGeoJSON))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if s := r.StepAt(1); s == nil || s.Instruction != "Turn right onto Lower Kent Ridge Road" {
		t.Errorf("unexpected step at index 1: %+v", s)
	}
	if s := r.StepAt(5); s != nil {
		t.Errorf("expected nil for out-of-range index, got %+v", s)
	}

	// Mutating the returned copy must not touch the route.
	s := r.StepAt(0)
	s.Instruction = "changed"
	if r.Steps[0].Instruction == "changed" {
		t.Error("StepAt should return a copy")
	}
}
