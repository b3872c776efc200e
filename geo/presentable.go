package geo

import "fmt"

// PresentableDistance formats a walking distance for display. Bands follow
// what a pedestrian can act on: inside the arrival radius the distance is
// noise, under a kilometer meters are enough, beyond that kilometers with one
// decimal.
func PresentableDistance(meters float64) string {
	if meters < 0 {
		meters = 0
	}
	switch {
	case meters < 15:
		return "at waypoint"
	case meters < 50:
		return "approaching"
	case meters < 1000:
		return fmt.Sprintf("%.0f m", meters)
	default:
		return fmt.Sprintf("%.1f km", meters/1000)
	}
}
