package venue

import (
	"sort"
	"strconv"
	"time"

	"github.com/mattw23n/wayfinders/geo"
	"github.com/mattw23n/wayfinders/route"
)

const (
	// ProximityMeters is how close a venue must be to the route geometry to
	// affect its score.
	ProximityMeters = 50.0

	// CriticalWindow is how far around a class start or end the surge of
	// people moving through nearby paths is assumed to last.
	CriticalWindow = 15 * time.Minute

	// sampleStride thins the route geometry for proximity checks; the first
	// and last coordinates are always included.
	sampleStride = 10
)

// NearbyVenue is a venue within proximity of a route, with its minimum
// distance to any sampled route coordinate.
type NearbyVenue struct {
	Venue          Venue   `json:"venue"`
	DistanceMeters float64 `json:"distance"`
}

// CriticalClass is a class starting or ending inside the critical window.
type CriticalClass struct {
	Name      string `json:"name"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Size      int    `json:"size"`
}

// CriticalVenue is a venue on the route with at least one critical class.
type CriticalVenue struct {
	ID              string          `json:"_id"`
	RoomName        string          `json:"roomName"`
	Location        geo.Coordinate  `json:"location"`
	DistanceMeters  float64         `json:"distance"`
	CriticalClasses []CriticalClass `json:"criticalClasses"`
}

// ScoredRoute pairs a route with its crowd penalty. Lower is better.
type ScoredRoute struct {
	Route          route.Route     `json:"route"`
	PenaltyScore   float64         `json:"penaltyScore"`
	CriticalVenues []CriticalVenue `json:"criticalVenues"`
	Explanation    string          `json:"explanation,omitempty"`
}

// NearRoute finds venues within `within` meters of the route geometry.
// The geometry is sampled every tenth coordinate plus the endpoints; each
// venue keeps its minimum distance across the samples.
func (s *Store) NearRoute(geometry []geo.Coordinate, within float64) []NearbyVenue {
	if len(geometry) == 0 {
		return nil
	}

	samples := sampleIndices(len(geometry))

	s.mu.RLock()
	venues := append([]Venue(nil), s.venues...)
	s.mu.RUnlock()

	var out []NearbyVenue
	for _, v := range venues {
		if len(v.Location.Coordinates) < 2 {
			continue
		}
		vc := v.Coordinate()
		best := -1.0
		for _, i := range samples {
			d := geo.HaversineMeters(geometry[i], vc)
			if best < 0 || d < best {
				best = d
			}
		}
		if best >= 0 && best <= within {
			out = append(out, NearbyVenue{Venue: v, DistanceMeters: best})
		}
	}
	return out
}

// ScoreRoutes scores each route by crowdedness at `now` and returns them
// sorted ascending by penalty. The first entry is the recommended route.
func (s *Store) ScoreRoutes(routes []route.Route, now time.Time) []ScoredRoute {
	day := now.Weekday().String()

	scored := make([]ScoredRoute, 0, len(routes))
	for _, r := range routes {
		nearby := s.NearRoute(r.Geometry, ProximityMeters)

		penalty := 0.0
		var critical []CriticalVenue
		for _, nv := range nearby {
			classes := s.ClassesFor(nv.Venue.ID, day)

			var criticalClasses []CriticalClass
			for _, c := range classes {
				if !classCritical(c, now) {
					continue
				}
				criticalClasses = append(criticalClasses, CriticalClass{
					Name:      c.Name,
					StartTime: c.StartTime,
					EndTime:   c.EndTime,
					Size:      c.Size,
				})
				// Nearer venues weigh heavier; the 50 m proximity cap keeps
				// the factor within [1, 50].
				distance := nv.DistanceMeters
				if distance < 1 {
					distance = 1
				}
				penalty += float64(c.Size) * (50 / distance)
			}

			if len(criticalClasses) > 0 {
				critical = append(critical, CriticalVenue{
					ID:              nv.Venue.ID,
					RoomName:        nv.Venue.RoomName,
					Location:        nv.Venue.Coordinate(),
					DistanceMeters:  nv.DistanceMeters,
					CriticalClasses: criticalClasses,
				})
			}
		}

		scored = append(scored, ScoredRoute{Route: r, PenaltyScore: penalty, CriticalVenues: critical})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].PenaltyScore < scored[j].PenaltyScore })
	return scored
}

// Status is a venue with the classes starting or ending around a point in
// time.
type Status struct {
	ID       string          `json:"_id"`
	RoomName string          `json:"roomName"`
	Floor    int             `json:"floor"`
	Location geo.Coordinate  `json:"location"`
	Classes  []CriticalClass `json:"classes"`
}

// VenueStatus lists every venue that has a class starting or ending within
// the critical window of now.
func (s *Store) VenueStatus(now time.Time) []Status {
	day := now.Weekday().String()

	s.mu.RLock()
	venues := append([]Venue(nil), s.venues...)
	s.mu.RUnlock()

	var out []Status
	for _, v := range venues {
		var active []CriticalClass
		for _, c := range s.ClassesFor(v.ID, day) {
			if !classCritical(c, now) {
				continue
			}
			active = append(active, CriticalClass{Name: c.Name, StartTime: c.StartTime, EndTime: c.EndTime, Size: c.Size})
		}
		if len(active) == 0 {
			continue
		}
		out = append(out, Status{
			ID:       v.ID,
			RoomName: v.RoomName,
			Floor:    v.Floor,
			Location: v.Coordinate(),
			Classes:  active,
		})
	}
	return out
}

// classCritical reports whether the class is starting or ending within the
// critical window: now inside [start-15m, start+15m] or [end-15m, end].
func classCritical(c Class, now time.Time) bool {
	start, ok := atTime(c.StartTime, now)
	if !ok {
		return false
	}
	end, ok := atTime(c.EndTime, now)
	if !ok {
		return false
	}

	untilStart := start.Sub(now)
	if untilStart >= 0 && untilStart <= CriticalWindow {
		return true
	}
	sinceStart := now.Sub(start)
	if sinceStart >= 0 && sinceStart <= CriticalWindow {
		return true
	}
	untilEnd := end.Sub(now)
	return untilEnd >= 0 && untilEnd <= CriticalWindow
}

// atTime resolves an "HHMM" string onto the date of ref.
func atTime(hhmm string, ref time.Time) (time.Time, bool) {
	if len(hhmm) < 4 {
		return time.Time{}, false
	}
	hh, err := strconv.Atoi(hhmm[:2])
	if err != nil || hh < 0 || hh > 23 {
		return time.Time{}, false
	}
	mm, err := strconv.Atoi(hhmm[2:4])
	if err != nil || mm < 0 || mm > 59 {
		return time.Time{}, false
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(), hh, mm, 0, 0, ref.Location()), true
}

// sampleIndices returns the representative geometry indices to test venue
// proximity against: first, last, and every strideth in between.
func sampleIndices(n int) []int {
	idx := []int{0}
	for i := sampleStride; i < n-1; i += sampleStride {
		idx = append(idx, i)
	}
	if n > 1 {
		idx = append(idx, n-1)
	}
	return idx
}
