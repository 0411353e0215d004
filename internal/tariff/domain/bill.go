package tariff

// MonthlyBill is one itemized calendar month of the electricity bill.
// Computed fresh on every invocation, never partially updated.
type MonthlyBill struct {
	Month string `json:"month"`

	KWhTotal  float64          `json:"kwhTotal"`
	KWhByBand map[Band]float64 `json:"kwhByBand"`

	EnergyCostBST  float64 `json:"energyCostBst"`
	EnergyCostDV   float64 `json:"energyCostDv"`
	EnergyCostTUOS float64 `json:"energyCostTuos"`
	TOUEnergyOMR   float64 `json:"touEnergyOmr"`

	DCKW  float64 `json:"dcKw"`
	DNCKW float64 `json:"dncKw"`

	CapacityCPR  float64 `json:"capacityCpr"`
	CapacityNCPR float64 `json:"capacityNcpr"`
	CapacityCGR  float64 `json:"capacityCgr"`
	CapacityOMR  float64 `json:"capacityOmr"`

	SupplyOMR    float64 `json:"supplyOmr"`
	SubtotalOMR  float64 `json:"subtotalOmr"`
	VATOMR       float64 `json:"vatOmr"`
	TotalBillOMR float64 `json:"totalBillOmr"`

	// Configuration echoed back to the caller.
	VoltageLevel     VoltageLevel `json:"voltageLevel"`
	DistributionRate float64      `json:"distributionRateOmrPerMwh"`
	TUOSEnergyAdder  float64      `json:"tuosEnergyAdder"`
	IncludeCGR       bool         `json:"includeCgr"`
	DemandMethod     DemandMethod `json:"demandMethod"`
}

// CalculateBills converts hourly readings into one bill per calendar month
// present in the input, ascending by month. Malformed readings are skipped;
// empty input yields an empty slice. The whole computation is a pure
// function of its arguments.
func CalculateBills(readings []HourlyReading, opts CalculationOptions) ([]MonthlyBill, error) {
	opts = opts.normalized()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	distributionRate, err := DistributionRate(opts.VoltageLevel)
	if err != nil {
		return nil, err
	}

	valid := FilterValid(readings)
	priced := make([]PricedHour, 0, len(valid))
	for _, r := range valid {
		hour, err := priceHourWithRate(r, distributionRate, opts.TUOSEnergyAdder)
		if err != nil {
			return nil, err
		}
		priced = append(priced, hour)
	}

	groups := groupByMonth(priced)
	bills := make([]MonthlyBill, 0, len(groups))
	for _, group := range groups {
		peaks := estimatePeaks(group.hours, opts.DemandMethod)
		bills = append(bills, assembleBill(group, peaks, opts, distributionRate))
	}
	return bills, nil
}

// assembleBill combines energy cost, capacity cost, supply charge and VAT
// into a complete bill for one month group.
func assembleBill(group *monthGroup, peaks PeakDemand, opts CalculationOptions, distributionRate float64) MonthlyBill {
	bill := MonthlyBill{
		Month:     group.key.String(),
		KWhTotal:  group.kwhTotal,
		KWhByBand: make(map[Band]float64, len(group.kwhByBand)),

		EnergyCostBST:  group.bstCost,
		EnergyCostDV:   group.dvCost,
		EnergyCostTUOS: group.tuosCost,

		DCKW:  peaks.DCKW,
		DNCKW: peaks.DNCKW,

		VoltageLevel:     opts.VoltageLevel,
		DistributionRate: distributionRate,
		TUOSEnergyAdder:  opts.TUOSEnergyAdder,
		IncludeCGR:       opts.IncludeCGR,
		DemandMethod:     opts.DemandMethod,
	}
	for band, kwh := range group.kwhByBand {
		bill.KWhByBand[band] = kwh
	}

	bill.TOUEnergyOMR = bill.EnergyCostBST + bill.EnergyCostDV + bill.EnergyCostTUOS

	bill.CapacityCPR = peaks.DCKW * capacityRateMonthlyPerKW(CPRRateOMRPerMWYear)
	bill.CapacityNCPR = peaks.DNCKW * capacityRateMonthlyPerKW(NCPRRateOMRPerMWYear)
	if opts.IncludeCGR {
		bill.CapacityCGR = peaks.DCKW * capacityRateMonthlyPerKW(CGRRateOMRPerMWYear)
	}
	bill.CapacityOMR = bill.CapacityCPR + bill.CapacityNCPR + bill.CapacityCGR

	bill.SupplyOMR = SupplyChargeOMRPerYear / 12
	bill.SubtotalOMR = bill.TOUEnergyOMR + bill.CapacityOMR + bill.SupplyOMR
	bill.VATOMR = bill.SubtotalOMR * VATRate
	bill.TotalBillOMR = bill.SubtotalOMR + bill.VATOMR
	return bill
}
