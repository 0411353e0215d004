package tariff

import "sort"

// PeakDemand carries the two monthly peak-power estimates used for the
// capacity charges.
type PeakDemand struct {
	// DCKW is the coincident demand proxy: mean of the top-3 positive kW
	// samples, peak-band hours first.
	DCKW float64
	// DNCKW is the non-coincident demand: the single largest kW sample of
	// the month.
	DNCKW float64
}

// estimatePeaks derives both peak estimates from one month of valid priced
// hours. The top-3 mean smooths single-sample demand spikes; it is part of
// the source tariff methodology, including the peak-band restriction before
// the fallback. A month with no hours yields zero demand.
func estimatePeaks(hours []PricedHour, method DemandMethod) PeakDemand {
	if len(hours) == 0 {
		return PeakDemand{}
	}

	dnc := hours[0].Reading.KW
	for _, h := range hours[1:] {
		if h.Reading.KW > dnc {
			dnc = h.Reading.KW
		}
	}

	var candidates []float64
	if method == DemandTop3PeakBands {
		for _, h := range hours {
			if (h.Band == BandWeekdayPeak || h.Band == BandWeekendPeak) && h.Reading.KW > 0 {
				candidates = append(candidates, h.Reading.KW)
			}
		}
	}
	if len(candidates) == 0 {
		for _, h := range hours {
			if h.Reading.KW > 0 {
				candidates = append(candidates, h.Reading.KW)
			}
		}
	}

	return PeakDemand{DCKW: topNMean(candidates, 3), DNCKW: dnc}
}

// topNMean averages the n largest values, or all of them when fewer
// qualify. An empty slice yields zero.
func topNMean(values []float64, n int) float64 {
	if len(values) == 0 {
		return 0
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(values)))
	if len(values) > n {
		values = values[:n]
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
