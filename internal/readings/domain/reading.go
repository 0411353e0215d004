// Package readings stores raw hourly meter readings. The tariff engine
// never touches storage itself; callers load readings here and hand them to
// the engine as plain values.
package readings

import (
	"context"
	"time"
)

// Reading is one stored hourly meter reading.
type Reading struct {
	MeterID   string
	Timestamp time.Time
	KW        float64
	KWh       float64
}

// Repository persists and loads hourly readings.
type Repository interface {
	// Insert upserts readings keyed by (meter, timestamp).
	Insert(ctx context.Context, readings []Reading) error
	// ListRange returns readings for a meter in [from, to), ascending by
	// timestamp.
	ListRange(ctx context.Context, meterID string, from, to time.Time) ([]Reading, error)
}
