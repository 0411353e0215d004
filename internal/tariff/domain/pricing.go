package tariff

// PricedHour is one valid reading with its classification and cost split.
type PricedHour struct {
	Reading HourlyReading
	Band    Band
	Season  SeasonBlock

	// Cost components in OMR: base supply tariff, distribution by voltage,
	// and the optional TUOS energy adder.
	BSTCost  float64
	DVCost   float64
	TUOSCost float64
}

// TotalCost is the full cost of the hour.
func (p PricedHour) TotalCost() float64 {
	return p.BSTCost + p.DVCost + p.TUOSCost
}

// PriceHour prices a single reading under the given options. The only
// failure mode is an invalid voltage level.
func PriceHour(r HourlyReading, opts CalculationOptions) (PricedHour, error) {
	distribution, err := DistributionRate(opts.VoltageLevel)
	if err != nil {
		return PricedHour{}, err
	}
	return priceHourWithRate(r, distribution, opts.TUOSEnergyAdder)
}

// priceHourWithRate prices a reading with the distribution rate already
// resolved, so bulk calculations validate the voltage level exactly once.
func priceHourWithRate(r HourlyReading, distributionRate, adderRate float64) (PricedHour, error) {
	block, err := SeasonBlockOf(r.Timestamp.Month())
	if err != nil {
		return PricedHour{}, err
	}
	band := ClassifyBand(r.Timestamp)

	mwh := r.KWh / 1000
	return PricedHour{
		Reading:  r,
		Band:     band,
		Season:   block,
		BSTCost:  mwh * EnergyRate(block, band),
		DVCost:   mwh * distributionRate,
		TUOSCost: mwh * adderRate,
	}, nil
}
