package route

import (
	"github.com/mattw23n/wayfinders/geo"
)

// Step is one turn-by-turn instruction. WaypointRange holds the start and end
// indices of the geometry slice this step covers; the end index is the
// waypoint the navigation engine advances on.
type Step struct {
	Instruction     string  `json:"instruction"`
	StreetName      string  `json:"streetName"`
	DistanceMeters  float64 `json:"distanceMeters"`
	DurationSeconds float64 `json:"durationSeconds"`
	WaypointRange   [2]int  `json:"waypointRange"`
}

// Route is a parsed walking route. Steps are ordered consistent with the
// traversal direction of Geometry.
type Route struct {
	Geometry        []geo.Coordinate `json:"geometry"`
	Steps           []Step           `json:"steps"`
	DistanceMeters  float64          `json:"distanceMeters"`
	DurationSeconds float64          `json:"durationSeconds"`
}

// StepCount returns the number of steps.
func (r *Route) StepCount() int {
	if r == nil {
		return 0
	}
	return len(r.Steps)
}

// WaypointForStep resolves the advancement waypoint for the step at index i:
// the geometry coordinate at the end of the step's waypoint range. The second
// return value is false when the index or the referenced geometry position is
// out of range.
func (r *Route) WaypointForStep(i int) (geo.Coordinate, bool) {
	if r == nil || i < 0 || i >= len(r.Steps) {
		return geo.Coordinate{}, false
	}
	end := r.Steps[i].WaypointRange[1]
	if end < 0 || end >= len(r.Geometry) {
		return geo.Coordinate{}, false
	}
	return r.Geometry[end], true
}

// StepAt returns a copy of the step at index i, or nil when out of range.
// Returning a copy keeps the route immutable from the caller's side.
func (r *Route) StepAt(i int) *Step {
	if r == nil || i < 0 || i >= len(r.Steps) {
		return nil
	}
	s := r.Steps[i]
	return &s
}
