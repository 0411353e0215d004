// Package analytics produces resolution-aggregated cost series for charts.
// It shares the per-hour pricing rules with the tariff engine but is
// independent of the monthly bill pipeline.
package analytics

import (
	"math"
	"sort"
	"time"

	tariff "building-energy/internal/tariff/domain"
)

// Resolution is the chart bucketing granularity.
type Resolution string

const (
	ResolutionHourly  Resolution = "hourly"
	ResolutionDaily   Resolution = "daily"
	ResolutionWeekly  Resolution = "weekly"
	ResolutionMonthly Resolution = "monthly"
	ResolutionYearly  Resolution = "yearly"
)

// IsValid reports whether the resolution is supported.
func (r Resolution) IsValid() bool {
	switch r {
	case ResolutionHourly, ResolutionDaily, ResolutionWeekly, ResolutionMonthly, ResolutionYearly:
		return true
	default:
		return false
	}
}

// AggregatedPoint is a single chart bucket. Values are rounded to two
// decimal places.
type AggregatedPoint struct {
	Label     string  `json:"label"`
	EnergyKWh float64 `json:"energy"`
	CostOMR   float64 `json:"cost"`
}

// hourlyWindow bounds the hourly chart payload to one week of entries.
// Display policy, not a data-correctness rule.
const hourlyWindow = 168

// AggregateSeries buckets readings at the requested resolution and prices
// each hour with the base plus distribution rate (no adder). Buckets come
// back in ascending key order. Malformed readings are skipped.
func AggregateSeries(readings []tariff.HourlyReading, resolution Resolution, level tariff.VoltageLevel) ([]AggregatedPoint, error) {
	if !resolution.IsValid() {
		return nil, ErrInvalidResolution
	}
	if !level.IsValid() {
		return nil, tariff.ErrUnknownVoltageLevel
	}

	valid := tariff.FilterValid(readings)
	if resolution == ResolutionHourly {
		return hourlySeries(valid, level)
	}

	type bucket struct {
		start  time.Time
		energy float64
		cost   float64
	}
	buckets := make(map[time.Time]*bucket)
	for _, r := range valid {
		rate, err := tariff.EffectiveRatePerKWh(r.Timestamp, level)
		if err != nil {
			return nil, err
		}
		start := bucketStart(r.Timestamp, resolution)
		b, ok := buckets[start]
		if !ok {
			b = &bucket{start: start}
			buckets[start] = b
		}
		b.energy += r.KWh
		b.cost += r.KWh * rate
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].start.Before(ordered[j].start) })

	points := make([]AggregatedPoint, 0, len(ordered))
	for _, b := range ordered {
		points = append(points, AggregatedPoint{
			Label:     bucketLabel(b.start, resolution),
			EnergyKWh: round2(b.energy),
			CostOMR:   round2(b.cost),
		})
	}
	return points, nil
}

// hourlySeries keeps the last week of readings as-is instead of bucketing.
func hourlySeries(readings []tariff.HourlyReading, level tariff.VoltageLevel) ([]AggregatedPoint, error) {
	if len(readings) > hourlyWindow {
		readings = readings[len(readings)-hourlyWindow:]
	}
	points := make([]AggregatedPoint, 0, len(readings))
	for _, r := range readings {
		rate, err := tariff.EffectiveRatePerKWh(r.Timestamp, level)
		if err != nil {
			return nil, err
		}
		points = append(points, AggregatedPoint{
			Label:     r.Timestamp.UTC().Format("2006-01-02 15:04"),
			EnergyKWh: round2(r.KWh),
			CostOMR:   round2(r.KWh * rate),
		})
	}
	return points, nil
}

// bucketStart truncates a timestamp to its bucket boundary on the UTC
// calendar. Weekly buckets are keyed by the Monday of the ISO week.
func bucketStart(t time.Time, resolution Resolution) time.Time {
	u := t.UTC()
	switch resolution {
	case ResolutionDaily:
		return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	case ResolutionWeekly:
		day := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
		offset := (int(day.Weekday()) + 6) % 7 // days since Monday
		return day.AddDate(0, 0, -offset)
	case ResolutionMonthly:
		return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
	case ResolutionYearly:
		return time.Date(u.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return u
	}
}

func bucketLabel(start time.Time, resolution Resolution) string {
	switch resolution {
	case ResolutionDaily, ResolutionWeekly:
		return start.Format("2006-01-02")
	case ResolutionMonthly:
		return start.Format("2006-01")
	case ResolutionYearly:
		return start.Format("2006")
	default:
		return start.Format("2006-01-02 15:04")
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
