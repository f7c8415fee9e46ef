package trafficctl

import "errors"

// Package-level error definitions for traffic control operations.
var (
	// ErrBadParam means the facility rejected the requested parameters
	// (invalid rate, port, address, or a nonzero tc exit status).
	ErrBadParam = errors.New("traffic control rejected parameters")

	// ErrCallFailed means the invocation itself failed: tc binary missing,
	// insufficient privilege, or another OS-level error.
	ErrCallFailed = errors.New("traffic control invocation failed")
)
