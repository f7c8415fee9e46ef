package udprate

import "errors"

// Package-level error definitions for rate computation.
var (
	// ErrRateMismatch means the computed rate count disagrees with the input
	// stream count; no partial mapping is ever returned.
	ErrRateMismatch = errors.New("computed rates do not match network inputs")

	// ErrInvalidInput means a rate computation argument is unusable
	// (non-positive frame rate, factor, or capacity, or colliding ports).
	ErrInvalidInput = errors.New("invalid rate computation input")
)
