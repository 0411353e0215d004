package interfaces

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"building-energy/internal/readings/infrastructure/memory"
	"building-energy/internal/tariff/application"
	readings "building-energy/internal/readings/domain"
	tariff "building-energy/internal/tariff/domain"
)

func seededService(t *testing.T) *application.BillingService {
	t.Helper()
	repo := memory.NewReadingRepository()

	base := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	items := make([]readings.Reading, 0, 24*35)
	for hour := 0; hour < 24*35; hour++ {
		items = append(items, readings.Reading{
			MeterID:   "meter-1",
			Timestamp: base.Add(time.Duration(hour) * time.Hour),
			KW:        100,
			KWh:       100,
		})
	}
	if err := repo.Insert(context.Background(), items); err != nil {
		t.Fatalf("seed readings: %v", err)
	}

	plan := application.PlanConfig{
		Currency: "OMR",
		Default:  application.MeterPlan{VoltageLevel: string(tariff.Voltage11kV)},
	}
	service, err := application.NewBillingService(repo, plan)
	if err != nil {
		t.Fatalf("new billing service: %v", err)
	}
	return service
}

func TestBillsHandler_OK(t *testing.T) {
	handler, err := NewBillsHandler(seededService(t))
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bills?meter_id=meter-1&from=2024-05-01&to=2024-06-02", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var bills []tariff.MonthlyBill
	if err := json.Unmarshal(resp.Body.Bytes(), &bills); err != nil {
		t.Fatalf("decode bills: %v", err)
	}
	if len(bills) != 2 {
		t.Fatalf("expected bills for May and June, got %d", len(bills))
	}
	if bills[0].Month != "2024-05" || bills[1].Month != "2024-06" {
		t.Fatalf("months: got %s, %s", bills[0].Month, bills[1].Month)
	}
	if bills[0].VoltageLevel != tariff.Voltage11kV {
		t.Fatalf("voltage echo: got %s", bills[0].VoltageLevel)
	}
	if bills[0].TotalBillOMR <= 0 {
		t.Fatalf("expected positive total, got %v", bills[0].TotalBillOMR)
	}
}

func TestBillsHandler_QueryOverrides(t *testing.T) {
	handler, err := NewBillsHandler(seededService(t))
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/bills?meter_id=meter-1&from=2024-05-01&to=2024-05-31&voltage=33kV&include_cgr=false&method=top3_any", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var bills []tariff.MonthlyBill
	if err := json.Unmarshal(resp.Body.Bytes(), &bills); err != nil {
		t.Fatalf("decode bills: %v", err)
	}
	if bills[0].VoltageLevel != tariff.Voltage33kV {
		t.Fatalf("voltage override: got %s", bills[0].VoltageLevel)
	}
	if bills[0].IncludeCGR {
		t.Fatalf("cgr should be excluded")
	}
	if bills[0].DemandMethod != tariff.DemandTop3Any {
		t.Fatalf("method override: got %s", bills[0].DemandMethod)
	}
}

func TestBillsHandler_BadRequests(t *testing.T) {
	handler, err := NewBillsHandler(seededService(t))
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	cases := []struct {
		name string
		url  string
	}{
		{name: "missing meter", url: "/api/v1/bills?from=2024-05-01&to=2024-06-01"},
		{name: "missing from", url: "/api/v1/bills?meter_id=meter-1&to=2024-06-01"},
		{name: "inverted range", url: "/api/v1/bills?meter_id=meter-1&from=2024-06-01&to=2024-05-01"},
		{name: "unknown voltage", url: "/api/v1/bills?meter_id=meter-1&from=2024-05-01&to=2024-06-01&voltage=6kV"},
		{name: "unknown method", url: "/api/v1/bills?meter_id=meter-1&from=2024-05-01&to=2024-06-01&method=max"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.url, nil)
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.name, resp.Code)
		}
	}
}

func TestSeriesHandler_OK(t *testing.T) {
	handler, err := NewSeriesHandler(seededService(t))
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/series?meter_id=meter-1&resolution=daily&from=2024-05-01&to=2024-05-08", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var points []struct {
		Label  string  `json:"label"`
		Energy float64 `json:"energy"`
		Cost   float64 `json:"cost"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &points); err != nil {
		t.Fatalf("decode points: %v", err)
	}
	if len(points) != 7 {
		t.Fatalf("expected 7 day buckets, got %d", len(points))
	}
	if points[0].Label != "2024-05-01" {
		t.Fatalf("first label: got %s", points[0].Label)
	}
	if points[0].Energy != 2400 {
		t.Fatalf("day energy: got %v want 2400", points[0].Energy)
	}
}

func TestSeriesHandler_InvalidResolution(t *testing.T) {
	handler, err := NewSeriesHandler(seededService(t))
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/series?meter_id=meter-1&resolution=quarterly&from=2024-05-01&to=2024-05-08", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
