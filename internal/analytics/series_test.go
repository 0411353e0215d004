package analytics

import (
	"math"
	"testing"
	"time"

	tariff "building-energy/internal/tariff/domain"
)

func hourReadings(start time.Time, hours int, kwh float64) []tariff.HourlyReading {
	readings := make([]tariff.HourlyReading, 0, hours)
	for i := 0; i < hours; i++ {
		readings = append(readings, tariff.HourlyReading{
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			KW:        kwh,
			KWh:       kwh,
		})
	}
	return readings
}

func TestAggregateSeries_MonthlyConservation(t *testing.T) {
	start := time.Date(2024, time.April, 20, 0, 0, 0, 0, time.UTC)
	readings := hourReadings(start, 24*30, 12.345) // spans April and May

	points, err := AggregateSeries(readings, ResolutionMonthly, tariff.Voltage11kV)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 month buckets, got %d", len(points))
	}
	if points[0].Label != "2024-04" || points[1].Label != "2024-05" {
		t.Fatalf("bucket labels: got %s, %s", points[0].Label, points[1].Label)
	}

	var total float64
	for _, p := range points {
		total += p.EnergyKWh
	}
	want := 12.345 * 24 * 30
	// Each bucket is rounded to 2 decimals.
	if math.Abs(total-want) > 0.01*float64(len(points)) {
		t.Fatalf("energy not conserved: got %v want %v", total, want)
	}
}

func TestAggregateSeries_DailyBuckets(t *testing.T) {
	start := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	points, err := AggregateSeries(hourReadings(start, 48, 10), ResolutionDaily, tariff.Voltage11kV)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 day buckets, got %d", len(points))
	}
	if points[0].Label != "2024-05-01" || points[1].Label != "2024-05-02" {
		t.Fatalf("labels: got %s, %s", points[0].Label, points[1].Label)
	}
	if points[0].EnergyKWh != 240 {
		t.Fatalf("day energy: got %v want 240", points[0].EnergyKWh)
	}
}

func TestAggregateSeries_WeeklyKeyedByMonday(t *testing.T) {
	// 2024-05-04 is a Saturday; its ISO week starts Monday 2024-04-29.
	saturday := time.Date(2024, time.May, 4, 10, 0, 0, 0, time.UTC)
	monday := time.Date(2024, time.May, 6, 10, 0, 0, 0, time.UTC)
	readings := []tariff.HourlyReading{
		{Timestamp: saturday, KW: 1, KWh: 1},
		{Timestamp: monday, KW: 1, KWh: 1},
	}
	points, err := AggregateSeries(readings, ResolutionWeekly, tariff.Voltage11kV)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 week buckets, got %d", len(points))
	}
	if points[0].Label != "2024-04-29" {
		t.Fatalf("first week key: got %s want 2024-04-29", points[0].Label)
	}
	if points[1].Label != "2024-05-06" {
		t.Fatalf("second week key: got %s want 2024-05-06", points[1].Label)
	}
}

func TestAggregateSeries_HourlyTruncatesToLastWeek(t *testing.T) {
	start := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	readings := hourReadings(start, 200, 5)

	points, err := AggregateSeries(readings, ResolutionHourly, tariff.Voltage11kV)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(points) != 168 {
		t.Fatalf("hourly window: got %d points want 168", len(points))
	}
	wantFirst := start.Add(32 * time.Hour).Format("2006-01-02 15:04")
	if points[0].Label != wantFirst {
		t.Fatalf("first hourly label: got %s want %s", points[0].Label, wantFirst)
	}
}

func TestAggregateSeries_CostUsesEffectiveRate(t *testing.T) {
	// May off-peak at 11kV: (19 + 5) / 1000 OMR per kWh.
	ts := time.Date(2024, time.May, 6, 8, 0, 0, 0, time.UTC)
	readings := []tariff.HourlyReading{{Timestamp: ts, KW: 100, KWh: 100}}

	points, err := AggregateSeries(readings, ResolutionDaily, tariff.Voltage11kV)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if points[0].CostOMR != 2.4 {
		t.Fatalf("cost: got %v want 2.4", points[0].CostOMR)
	}
}

func TestAggregateSeries_SkipsMalformedReadings(t *testing.T) {
	ts := time.Date(2024, time.May, 6, 8, 0, 0, 0, time.UTC)
	readings := []tariff.HourlyReading{
		{Timestamp: ts, KW: 1, KWh: 10},
		{Timestamp: ts.Add(time.Hour), KW: 1, KWh: math.NaN()},
	}
	points, err := AggregateSeries(readings, ResolutionDaily, tariff.Voltage11kV)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if points[0].EnergyKWh != 10 {
		t.Fatalf("energy: got %v want 10", points[0].EnergyKWh)
	}
}

func TestAggregateSeries_InvalidInputs(t *testing.T) {
	if _, err := AggregateSeries(nil, "quarterly", tariff.Voltage11kV); err != ErrInvalidResolution {
		t.Fatalf("expected ErrInvalidResolution, got %v", err)
	}
	if _, err := AggregateSeries(nil, ResolutionDaily, "6kV"); err != tariff.ErrUnknownVoltageLevel {
		t.Fatalf("expected ErrUnknownVoltageLevel, got %v", err)
	}
}
