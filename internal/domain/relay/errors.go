package relay

import "errors"

var (
	// ErrUpstreamUnavailable means the HR system or the punch store could not
	// be reached; the run is aborted with no partial state kept for retry.
	ErrUpstreamUnavailable = errors.New("upstream system unavailable")
)
