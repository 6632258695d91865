package attendance

import "errors"

// Attendance domain errors
var (
	// Decoding errors
	ErrMalformedShiftTime = errors.New("malformed shift time, expected HH:MM")
	ErrMalformedDate      = errors.New("malformed attendance date")
	ErrMalformedPayload   = errors.New("malformed attendance payload")

	// Upstream errors
	ErrUpstreamUnavailable = errors.New("attendance service unavailable")
	ErrUpstreamRejected    = errors.New("attendance service rejected the request")

	// General errors
	ErrEmployeeIDMissing = errors.New("attendance record has no employee id")
)
