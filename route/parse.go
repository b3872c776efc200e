package route

import (
	"encoding/json"
	"fmt"

	"github.com/mattw23n/wayfinders/geo"
)

// Wire shapes for the ORS directions GeoJSON payload. Only the fields the
// engine consumes are decoded.
type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	Geometry struct {
		Type        string      `json:"type"`
		Coordinates [][]float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
		Segments []struct {
			Steps []struct {
				Distance    float64 `json:"distance"`
				Duration    float64 `json:"duration"`
				Instruction string  `json:"instruction"`
				Name        string  `json:"name"`
				WayPoints   []int   `json:"way_points"`
			} `json:"steps"`
		} `json:"segments"`
	} `json:"properties"`
}

// ParseFeatureCollection decodes an ORS directions GeoJSON response into
// routes. Features without a LineString geometry or without steps parse into
// routes with empty step lists; the navigation engine rejects those at start.
func ParseFeatureCollection(data []byte) ([]Route, error) {
	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("decode route geojson: %w", err)
	}

	routes := make([]Route, 0, len(fc.Features))
	for _, f := range fc.Features {
		routes = append(routes, routeFromFeature(f))
	}
	return routes, nil
}

// ParseFirst decodes a feature collection and returns the first route.
func ParseFirst(data []byte) (*Route, error) {
	routes, err := ParseFeatureCollection(data)
	if err != nil {
		return nil, err
	}
	if len(routes) == 0 {
		return nil, fmt.Errorf("route geojson contains no features")
	}
	return &routes[0], nil
}

func routeFromFeature(f feature) Route {
	r := Route{
		Geometry:        make([]geo.Coordinate, 0, len(f.Geometry.Coordinates)),
		DistanceMeters:  f.Properties.Summary.Distance,
		DurationSeconds: f.Properties.Summary.Duration,
	}
	for _, c := range f.Geometry.Coordinates {
		if len(c) < 2 {
			continue
		}
		r.Geometry = append(r.Geometry, geo.Coordinate{Lon: c[0], Lat: c[1]})
	}

	// Steps come from the first segment only; a single walking request has a
	// single segment per feature.
	if len(f.Properties.Segments) == 0 {
		return r
	}
	seg := f.Properties.Segments[0]
	r.Steps = make([]Step, 0, len(seg.Steps))
	for _, s := range seg.Steps {
		step := Step{
			Instruction:     s.Instruction,
			StreetName:      s.Name,
			DistanceMeters:  s.Distance,
			DurationSeconds: s.Duration,
		}
		if len(s.WayPoints) >= 2 {
			step.WaypointRange = [2]int{s.WayPoints[0], s.WayPoints[1]}
		}
		r.Steps = append(r.Steps, step)
	}
	return r
}
