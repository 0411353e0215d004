package tariff

import "time"

// Band is the time-of-use pricing period for a single hour.
type Band string

const (
	BandOffPeak     Band = "OP"
	BandNightPeak   Band = "NP"
	BandWeekdayPeak Band = "WDP"
	BandWeekendPeak Band = "WEDP"
)

// Minute-of-day windows for band classification. Bounds are inclusive.
const (
	nightWindowStartMinute = 22 * 60          // 22:00
	nightWindowEndMinute   = 2*60 + 59        // 02:59, the night band wraps midnight
	dayPeakStartMinute     = 13 * 60          // 13:00
	dayPeakEndMinute       = 15*60 + 59       // 15:59
)

// ClassifyBand maps a timestamp to exactly one TOU band.
// Precedence matters: the night window is checked first because on a 24h
// clock it wraps midnight, and only the midday window distinguishes
// weekday from weekend.
func ClassifyBand(t time.Time) Band {
	minute := t.Hour()*60 + t.Minute()

	if minute >= nightWindowStartMinute || minute <= nightWindowEndMinute {
		return BandNightPeak
	}
	if minute >= dayPeakStartMinute && minute <= dayPeakEndMinute {
		if isWeekend(t.Weekday()) {
			return BandWeekendPeak
		}
		return BandWeekdayPeak
	}
	return BandOffPeak
}

// isWeekend reports the Omani weekend (Friday and Saturday).
func isWeekend(day time.Weekday) bool {
	return day == time.Friday || day == time.Saturday
}
