package tariff

import "time"

// SeasonBlock is a contiguous range of calendar months sharing one set of
// TOU energy rates.
type SeasonBlock string

const (
	SeasonJanMar SeasonBlock = "JAN_MAR"
	SeasonApr    SeasonBlock = "APR"
	SeasonMayJul SeasonBlock = "MAY_JUL"
	SeasonAugSep SeasonBlock = "AUG_SEP"
	SeasonOct    SeasonBlock = "OCT"
	SeasonNovDec SeasonBlock = "NOV_DEC"
)

// SeasonBlockOf maps a calendar month to its season block. A month outside
// 1-12 is a caller bug, not recoverable data; it is guarded anyway.
func SeasonBlockOf(month time.Month) (SeasonBlock, error) {
	switch {
	case month >= time.January && month <= time.March:
		return SeasonJanMar, nil
	case month == time.April:
		return SeasonApr, nil
	case month >= time.May && month <= time.July:
		return SeasonMayJul, nil
	case month >= time.August && month <= time.September:
		return SeasonAugSep, nil
	case month == time.October:
		return SeasonOct, nil
	case month >= time.November && month <= time.December:
		return SeasonNovDec, nil
	default:
		return "", ErrInvalidMonth
	}
}
