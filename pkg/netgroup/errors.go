package netgroup

import "errors"

// Package-level error definitions for network metadata lookups.
var (
	ErrUnknownGroup  = errors.New("unknown network group")
	ErrNoStreams     = errors.New("network group has no input streams")
	ErrNotConfigured = errors.New("network is not configured")
)
