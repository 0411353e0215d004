package tariff

import "time"

// VoltageLevel selects the distribution (delivery) rate for a connection.
type VoltageLevel string

const (
	Voltage132kV VoltageLevel = "132kV"
	Voltage33kV  VoltageLevel = "33kV"
	Voltage11kV  VoltageLevel = "11kV"
	Voltage415V  VoltageLevel = "415V"
)

// Fixed tariff parameters. Capacity rates are OMR per MW per year; the
// supply charge is OMR per year.
const (
	VATRate = 0.05

	CPRRateOMRPerMWYear  = 24800.0
	NCPRRateOMRPerMWYear = 6300.0
	CGRRateOMRPerMWYear  = 2900.0

	SupplyChargeOMRPerYear = 1250.0

	// Yearly OMR/MW to monthly OMR/kW: 1000 kW per MW times 12 months.
	capacityMonthlyDivisor = 12000.0
)

// EnergyRate returns the TOU energy rate in OMR per MWh for the given season
// block and band. The switch is exhaustive over both enums; the trailing
// zero return is unreachable for values produced by ClassifyBand and
// SeasonBlockOf.
func EnergyRate(block SeasonBlock, band Band) float64 {
	switch block {
	case SeasonJanMar:
		switch band {
		case BandOffPeak:
			return 12
		case BandNightPeak:
			return 14
		case BandWeekdayPeak:
			return 16
		case BandWeekendPeak:
			return 14
		}
	case SeasonApr:
		switch band {
		case BandOffPeak:
			return 14
		case BandNightPeak:
			return 20
		case BandWeekdayPeak:
			return 26
		case BandWeekendPeak:
			return 22
		}
	case SeasonMayJul:
		switch band {
		case BandOffPeak:
			return 19
		case BandNightPeak:
			return 46
		case BandWeekdayPeak:
			return 101
		case BandWeekendPeak:
			return 58
		}
	case SeasonAugSep:
		switch band {
		case BandOffPeak:
			return 17
		case BandNightPeak:
			return 38
		case BandWeekdayPeak:
			return 76
		case BandWeekendPeak:
			return 44
		}
	case SeasonOct:
		switch band {
		case BandOffPeak:
			return 14
		case BandNightPeak:
			return 22
		case BandWeekdayPeak:
			return 30
		case BandWeekendPeak:
			return 24
		}
	case SeasonNovDec:
		switch band {
		case BandOffPeak:
			return 12
		case BandNightPeak:
			return 15
		case BandWeekdayPeak:
			return 18
		case BandWeekendPeak:
			return 15
		}
	}
	return 0
}

// DistributionRate returns the delivery rate in OMR per MWh for a voltage
// level, or ErrUnknownVoltageLevel for an unsupported tier.
func DistributionRate(level VoltageLevel) (float64, error) {
	switch level {
	case Voltage132kV:
		return 1.0, nil
	case Voltage33kV:
		return 2.5, nil
	case Voltage11kV:
		return 5.0, nil
	case Voltage415V:
		return 8.0, nil
	default:
		return 0, ErrUnknownVoltageLevel
	}
}

// IsValid reports whether the voltage level has a distribution rate.
func (v VoltageLevel) IsValid() bool {
	_, err := DistributionRate(v)
	return err == nil
}

// EffectiveRatePerKWh returns the per-kWh equivalent of the energy plus
// distribution rate at the given instant. The TOU adder is not part of this
// path; it defaults to zero for chart series.
func EffectiveRatePerKWh(t time.Time, level VoltageLevel) (float64, error) {
	distribution, err := DistributionRate(level)
	if err != nil {
		return 0, err
	}
	block, err := SeasonBlockOf(t.Month())
	if err != nil {
		return 0, err
	}
	return (EnergyRate(block, ClassifyBand(t)) + distribution) / 1000, nil
}

func capacityRateMonthlyPerKW(yearlyPerMW float64) float64 {
	return yearlyPerMW / capacityMonthlyDivisor
}
