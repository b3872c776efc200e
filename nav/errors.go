package nav

import "errors"

// ErrNoSteps is returned by Engine.Start when the supplied route has no
// steps to navigate.
var ErrNoSteps = errors.New("no navigation steps available")

// msgNoSteps is the user-facing session error for an empty route.
const msgNoSteps = "No navigation steps available"

// ErrorCode identifies a location watch failure.
type ErrorCode string

const (
	PermissionDenied      ErrorCode = "PERMISSION_DENIED"
	PositionUnavailable   ErrorCode = "POSITION_UNAVAILABLE"
	Timeout               ErrorCode = "TIMEOUT"
	CapabilityUnavailable ErrorCode = "CAPABILITY_UNAVAILABLE"
)

// Message maps a code to its user-facing message. Codes map 1:1 to messages;
// unknown codes fall back to a generic one.
func (c ErrorCode) Message() string {
	switch c {
	case PermissionDenied:
		return "Location permission denied"
	case PositionUnavailable:
		return "Location unavailable"
	case Timeout:
		return "Location request timed out"
	case CapabilityUnavailable:
		return "Location services are not available"
	}
	return "Location error"
}

// WatchError is a location stream failure surfaced to the engine.
type WatchError struct {
	Code    ErrorCode
	Message string
}

func (e WatchError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code.Message()
}
