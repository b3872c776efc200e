package helpers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mattw23n/wayfinders/nav"
	"github.com/mattw23n/wayfinders/route"
	"github.com/mattw23n/wayfinders/speech"
)

// CampusRouteGeoJSON is a three-step walking route across Kent Ridge in the
// directions API response format.
const CampusRouteGeoJSON = `{
	"type": "FeatureCollection",
	"features": [{
		"type": "Feature",
		"geometry": {
			"type": "LineString",
			"coordinates": [[103.7800, 1.3000], [103.7810, 1.3010], [103.7820, 1.3020]]
		},
		"properties": {
			"summary": {"distance": 314.5, "duration": 226.0},
			"segments": [{
				"steps": [
					{"instruction": "Head north", "name": "Kent Ridge Drive", "distance": 157.2, "duration": 113.0, "way_points": [0, 0]},
					{"instruction": "Turn right", "name": "Science Drive", "distance": 157.3, "duration": 113.0, "way_points": [0, 1]},
					{"instruction": "Arrive at your destination", "name": "", "distance": 0, "duration": 0, "way_points": [1, 2]}
				]
			}]
		}
	}]
}`

// VenuesJSON is a small venue dataset near the campus route.
const VenuesJSON = `[
	{"_id": "LT17", "roomName": "Lecture Theatre 17", "floor": 1,
	 "location": {"type": "Point", "coordinates": [103.7800, 1.3000]}},
	{"_id": "GYM", "roomName": "Main Gym", "floor": 1,
	 "location": {"type": "Point", "coordinates": [103.7810, 1.3010]}}
]`

// ClassesJSON schedules one large Monday-morning class at LT17.
const ClassesJSON = `[
	{"venueId": "LT17", "day": "Monday", "name": "CS1010", "startTime": "1000", "endTime": "1200", "size": 200},
	{"venueId": "GYM", "day": "Monday", "name": "PE", "startTime": "1400", "endTime": "1600", "size": 80}
]`

// Monday10 is a fixed reference instant: Monday 2026-03-02 10:00 UTC.
var Monday10 = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

// MustParseRoute decodes CampusRouteGeoJSON into a route.
func MustParseRoute(t *testing.T) *route.Route {
	t.Helper()
	r, err := route.ParseFirst([]byte(CampusRouteGeoJSON))
	if err != nil {
		t.Fatalf("parse route fixture: %v", err)
	}
	return r
}

// RecordingSynth captures every utterance instead of speaking.
type RecordingSynth struct {
	mu     sync.Mutex
	spoken []string
}

func (s *RecordingSynth) Speak(_ context.Context, u speech.Utterance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spoken = append(s.spoken, u.Text)
	return nil
}

// Spoken returns the captured utterances in order.
func (s *RecordingSynth) Spoken() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.spoken...)
}

// ScriptedSource is a position source driven by the test. Emit delivers a
// fix to the active subscription.
type ScriptedSource struct {
	mu      sync.Mutex
	onFix   func(nav.Fix)
	onError func(nav.WatchError)
}

func (s *ScriptedSource) Watch(_ nav.WatchOptions, onFix func(nav.Fix), onError func(nav.WatchError)) (nav.CancelFunc, error) {
	s.mu.Lock()
	s.onFix = onFix
	s.onError = onError
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.onFix = nil
		s.onError = nil
		s.mu.Unlock()
	}, nil
}

// Emit delivers a fix to the subscriber, if any.
func (s *ScriptedSource) Emit(f nav.Fix) {
	s.mu.Lock()
	onFix := s.onFix
	s.mu.Unlock()
	if onFix != nil {
		onFix(f)
	}
}

// Fail delivers a watch error to the subscriber, if any.
func (s *ScriptedSource) Fail(we nav.WatchError) {
	s.mu.Lock()
	onError := s.onError
	s.mu.Unlock()
	if onError != nil {
		onError(we)
	}
}
