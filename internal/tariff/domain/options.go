package tariff

// DemandMethod selects how the coincident demand proxy is derived.
type DemandMethod string

const (
	// DemandTop3PeakBands averages the three largest positive kW samples
	// among WDP/WEDP hours, widening to all hours only when no peak-band
	// sample qualifies.
	DemandTop3PeakBands DemandMethod = "top3_peakbands"
	// DemandTop3Any averages the three largest positive kW samples of the
	// whole month.
	DemandTop3Any DemandMethod = "top3_any"
)

// IsValid reports whether the method is supported.
func (m DemandMethod) IsValid() bool {
	switch m {
	case DemandTop3PeakBands, DemandTop3Any:
		return true
	default:
		return false
	}
}

// CalculationOptions is the caller-supplied configuration for one bill
// calculation. It is fixed for the duration of the call.
type CalculationOptions struct {
	VoltageLevel VoltageLevel
	// TUOSEnergyAdder is an optional extra energy charge in OMR per MWh.
	TUOSEnergyAdder float64
	IncludeCGR      bool
	DemandMethod    DemandMethod
}

// DefaultOptions returns options for a voltage level with the documented
// defaults: zero adder, CGR included, top3_peakbands demand method.
func DefaultOptions(level VoltageLevel) CalculationOptions {
	return CalculationOptions{
		VoltageLevel: level,
		IncludeCGR:   true,
		DemandMethod: DemandTop3PeakBands,
	}
}

// normalized fills the demand method default without touching the rest.
func (o CalculationOptions) normalized() CalculationOptions {
	if o.DemandMethod == "" {
		o.DemandMethod = DemandTop3PeakBands
	}
	return o
}

// Validate fails fast on configuration errors before any calculation runs.
func (o CalculationOptions) Validate() error {
	if _, err := DistributionRate(o.VoltageLevel); err != nil {
		return err
	}
	if o.DemandMethod != "" && !o.DemandMethod.IsValid() {
		return ErrInvalidDemandMethod
	}
	return nil
}
