package tariff

import (
	"math"
	"time"
)

// HourlyReading is one metered clock hour: instantaneous demand in kW and
// energy consumed in that hour in kWh. Readings are supplied externally and
// never generated here.
type HourlyReading struct {
	Timestamp time.Time `json:"timestamp"`
	KW        float64   `json:"kw"`
	KWh       float64   `json:"kwh"`
}

// IsValid reports whether the reading can participate in aggregation.
// Malformed readings are skipped, not fatal.
func (r HourlyReading) IsValid() bool {
	if r.Timestamp.IsZero() {
		return false
	}
	if math.IsNaN(r.KW) || math.IsInf(r.KW, 0) {
		return false
	}
	if math.IsNaN(r.KWh) || math.IsInf(r.KWh, 0) {
		return false
	}
	return true
}

// FilterValid returns only the readings that may enter aggregate or peak
// computations, preserving order.
func FilterValid(readings []HourlyReading) []HourlyReading {
	valid := make([]HourlyReading, 0, len(readings))
	for _, r := range readings {
		if r.IsValid() {
			valid = append(valid, r)
		}
	}
	return valid
}
