package analytics

import "errors"

var (
	// ErrInvalidResolution is returned for an unsupported chart resolution.
	ErrInvalidResolution = errors.New("analytics: invalid resolution")
)
