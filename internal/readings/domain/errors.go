package readings

import "errors"

var (
	// ErrEmptyMeterID is returned when a meter id is missing.
	ErrEmptyMeterID = errors.New("readings: empty meter id")
	// ErrInvalidTimestamp is returned when a reading timestamp is zero.
	ErrInvalidTimestamp = errors.New("readings: invalid timestamp")
	// ErrInvalidRange is returned when a query range is empty or inverted.
	ErrInvalidRange = errors.New("readings: invalid range")
)
