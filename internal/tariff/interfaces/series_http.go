package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"

	"building-energy/internal/analytics"
	"building-energy/internal/tariff/application"
	tariff "building-energy/internal/tariff/domain"
)

// SeriesHandler serves resolution-aggregated cost series for charts.
type SeriesHandler struct {
	service *application.BillingService
}

// NewSeriesHandler constructs a SeriesHandler.
func NewSeriesHandler(service *application.BillingService) (*SeriesHandler, error) {
	if service == nil {
		return nil, errors.New("series handler: nil service")
	}
	return &SeriesHandler{service: service}, nil
}

// ServeHTTP handles GET /api/v1/series.
func (h *SeriesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	meterID, from, to, err := parseRangeQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resolution := analytics.Resolution(r.URL.Query().Get("resolution"))
	if resolution == "" {
		http.Error(w, "resolution is required", http.StatusBadRequest)
		return
	}

	level := h.service.OptionsForMeter(meterID).VoltageLevel
	if v := r.URL.Query().Get("voltage"); v != "" {
		level = tariff.VoltageLevel(v)
	}

	points, err := h.service.SeriesForRange(r.Context(), meterID, resolution, from, to, level)
	if err != nil {
		respondSeriesError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(points)
}

func respondSeriesError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, analytics.ErrInvalidResolution),
		errors.Is(err, tariff.ErrUnknownVoltageLevel):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "series error", http.StatusInternalServerError)
	}
}
