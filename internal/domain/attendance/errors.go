package attendance

import "errors"

// Attendance domain errors
var (
	// ErrInvalidRange covers a malformed or reversed date range, including a
	// start date past today after end-date clamping.
	ErrInvalidRange = errors.New("invalid date range")
)
