package application

import (
	"context"
	"errors"
	"time"

	"building-energy/internal/analytics"
	"building-energy/internal/observability/metrics"
	readings "building-energy/internal/readings/domain"
	tariff "building-energy/internal/tariff/domain"
)

// BillingService loads stored readings and runs the tariff engine over
// them. The engine itself stays free of I/O; all loading happens here.
type BillingService struct {
	repo readings.Repository
	plan PlanConfig
}

// NewBillingService constructs the service.
func NewBillingService(repo readings.Repository, plan PlanConfig) (*BillingService, error) {
	if repo == nil {
		return nil, errors.New("billing service: nil repository")
	}
	return &BillingService{repo: repo, plan: plan}, nil
}

// OptionsForMeter resolves calculation options for a meter from the plan
// configuration.
func (s *BillingService) OptionsForMeter(meterID string) tariff.CalculationOptions {
	return s.plan.OptionsForMeter(meterID)
}

// BillsForRange computes monthly bills for a meter over [from, to).
func (s *BillingService) BillsForRange(ctx context.Context, meterID string, from, to time.Time, opts tariff.CalculationOptions) ([]tariff.MonthlyBill, error) {
	start := time.Now()
	bills, err := s.billsForRange(ctx, meterID, from, to, opts)
	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultError
	}
	metrics.ObserveBillCalculation(result, time.Since(start))
	return bills, err
}

func (s *BillingService) billsForRange(ctx context.Context, meterID string, from, to time.Time, opts tariff.CalculationOptions) ([]tariff.MonthlyBill, error) {
	stored, err := s.repo.ListRange(ctx, meterID, from, to)
	if err != nil {
		return nil, err
	}
	return tariff.CalculateBills(toEngineReadings(stored), opts)
}

// SeriesForRange computes a resolution-aggregated cost series for a meter
// over [from, to).
func (s *BillingService) SeriesForRange(ctx context.Context, meterID string, resolution analytics.Resolution, from, to time.Time, level tariff.VoltageLevel) ([]analytics.AggregatedPoint, error) {
	start := time.Now()
	points, err := s.seriesForRange(ctx, meterID, resolution, from, to, level)
	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultError
	}
	metrics.ObserveSeriesQuery(string(resolution), result, time.Since(start))
	return points, err
}

func (s *BillingService) seriesForRange(ctx context.Context, meterID string, resolution analytics.Resolution, from, to time.Time, level tariff.VoltageLevel) ([]analytics.AggregatedPoint, error) {
	stored, err := s.repo.ListRange(ctx, meterID, from, to)
	if err != nil {
		return nil, err
	}
	return analytics.AggregateSeries(toEngineReadings(stored), resolution, level)
}

func toEngineReadings(stored []readings.Reading) []tariff.HourlyReading {
	out := make([]tariff.HourlyReading, 0, len(stored))
	for _, r := range stored {
		out = append(out, tariff.HourlyReading{
			Timestamp: r.Timestamp,
			KW:        r.KW,
			KWh:       r.KWh,
		})
	}
	return out
}
