package tariff

import "errors"

var (
	// ErrInvalidMonth is returned when a month value is outside 1-12.
	ErrInvalidMonth = errors.New("tariff: invalid month")
	// ErrUnknownVoltageLevel is returned when the configured voltage level has no distribution rate.
	ErrUnknownVoltageLevel = errors.New("tariff: unknown voltage level")
	// ErrInvalidDemandMethod is returned when the demand estimation method is not supported.
	ErrInvalidDemandMethod = errors.New("tariff: invalid demand method")
)
