package wayfinders

import (
	"encoding/json"
	"fmt"

	"github.com/mattw23n/wayfinders/geo"
)

type RequestError struct{ Msg string }

func (e *RequestError) Error() string { return e.Msg }

// routesRequest is the POST /api/routes body.
type routesRequest struct {
	Start *geo.Coordinate `json:"start"`
	End   *geo.Coordinate `json:"end"`
}

// parseAndValidateRoutesRequest decodes and validates a directions request.
func parseAndValidateRoutesRequest(body []byte) (geo.Coordinate, geo.Coordinate, error) {
	var req routesRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return geo.Coordinate{}, geo.Coordinate{}, &RequestError{Msg: "Request body must be valid JSON."}
	}
	if req.Start == nil {
		return geo.Coordinate{}, geo.Coordinate{}, &RequestError{Msg: "You must provide a start coordinate."}
	}
	if req.End == nil {
		return geo.Coordinate{}, geo.Coordinate{}, &RequestError{Msg: "You must provide an end coordinate."}
	}
	if err := ensureCoordinateValid("start", *req.Start); err != nil {
		return geo.Coordinate{}, geo.Coordinate{}, err
	}
	if err := ensureCoordinateValid("end", *req.End); err != nil {
		return geo.Coordinate{}, geo.Coordinate{}, err
	}
	return *req.Start, *req.End, nil
}

func ensureCoordinateValid(name string, c geo.Coordinate) error {
	if c.Lat < -90 || c.Lat > 90 {
		return &RequestError{Msg: fmt.Sprintf("Invalid %s latitude: %g", name, c.Lat)}
	}
	if c.Lon < -180 || c.Lon > 180 {
		return &RequestError{Msg: fmt.Sprintf("Invalid %s longitude: %g", name, c.Lon)}
	}
	return nil
}

// buildErrorPayload formats an error response body.
func buildErrorPayload(operation, msg string) []byte {
	b, _ := json.Marshal(map[string]any{
		"error": map[string]string{
			"operation": operation,
			"message":   msg,
		},
	})
	return b
}
