package geo

import (
	"math"
	"testing"
)

func TestHaversineMeters_Symmetry(t *testing.T) {
	a := Coordinate{Lon: 103.7764, Lat: 1.2966}
	b := Coordinate{Lon: 103.8198, Lat: 1.3521}

	ab := HaversineMeters(a, b)
	ba := HaversineMeters(b, a)
	if ab != ba {
		t.Errorf("distance not symmetric: a->b %f, b->a %f", ab, ba)
	}
}

func TestHaversineMeters_Identity(t *testing.T) {
	a := Coordinate{Lon: 103.7764, Lat: 1.2966}
	if d := HaversineMeters(a, a); d != 0 {
		t.Errorf("distance to self should be 0, got %f", d)
	}
}

func TestHaversineMeters_OneDegreeLatitude(t *testing.T) {
	// Two points one degree of latitude apart on the same meridian are
	// roughly 111.32 km apart.
	a := Coordinate{Lon: 103.78, Lat: 1.0}
	b := Coordinate{Lon: 103.78, Lat: 2.0}

	const want = 111320.0
	got := HaversineMeters(a, b)
	if math.Abs(got-want)/want > 0.005 {
		t.Errorf("1 degree latitude: expected ~%f m (±0.5%%), got %f m", want, got)
	}
}

func TestHaversineMeters_ShortDistance(t *testing.T) {
	// Adjacent waypoints on a campus path, ~157 m apart.
	a := Coordinate{Lon: 103.7800, Lat: 1.3000}
	b := Coordinate{Lon: 103.7810, Lat: 1.3010}

	got := HaversineMeters(a, b)
	if got < 140 || got > 175 {
		t.Errorf("expected ~157 m between adjacent waypoints, got %f", got)
	}
}

func TestPresentableDistance(t *testing.T) {
	tests := []struct {
		name     string
		meters   float64
		expected string
	}{
		{name: "negative clamps to zero", meters: -3, expected: "at waypoint"},
		{name: "at waypoint", meters: 8, expected: "at waypoint"},
		{name: "approaching", meters: 25, expected: "approaching"},
		{name: "meters band", meters: 420, expected: "420 m"},
		{name: "kilometers band", meters: 1530, expected: "1.5 km"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PresentableDistance(tt.meters); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
