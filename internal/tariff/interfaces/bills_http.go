package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"building-energy/internal/tariff/application"
	tariff "building-energy/internal/tariff/domain"
)

// BillsHandler serves monthly bill queries.
type BillsHandler struct {
	service *application.BillingService
}

// NewBillsHandler constructs a BillsHandler.
func NewBillsHandler(service *application.BillingService) (*BillsHandler, error) {
	if service == nil {
		return nil, errors.New("bills handler: nil service")
	}
	return &BillsHandler{service: service}, nil
}

// ServeHTTP handles GET /api/v1/bills.
func (h *BillsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	meterID, from, to, err := parseRangeQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	opts, err := optionsFromQuery(r, h.service.OptionsForMeter(meterID))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bills, err := h.service.BillsForRange(r.Context(), meterID, from, to, opts)
	if err != nil {
		respondCalcError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(bills)
}

// parseRangeQuery extracts the common meter_id/from/to query parameters.
func parseRangeQuery(r *http.Request) (string, time.Time, time.Time, error) {
	meterID := r.URL.Query().Get("meter_id")
	if meterID == "" {
		return "", time.Time{}, time.Time{}, errors.New("meter_id is required")
	}
	from, err := parseTimeQuery(r, "from")
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}
	to, err := parseTimeQuery(r, "to")
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}
	if !to.After(from) {
		return "", time.Time{}, time.Time{}, errors.New("to must be after from")
	}
	return meterID, from, to, nil
}

func parseTimeQuery(r *http.Request, key string) (time.Time, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return time.Time{}, errors.New(key + " is required")
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts.UTC(), nil
	}
	if ts, err := time.Parse("2006-01-02", value); err == nil {
		return ts.UTC(), nil
	}
	return time.Time{}, errors.New(key + " must be RFC3339 or YYYY-MM-DD")
}

// optionsFromQuery applies per-request overrides on top of the configured
// plan options.
func optionsFromQuery(r *http.Request, opts tariff.CalculationOptions) (tariff.CalculationOptions, error) {
	query := r.URL.Query()
	if v := query.Get("voltage"); v != "" {
		opts.VoltageLevel = tariff.VoltageLevel(v)
	}
	if v := query.Get("adder"); v != "" {
		adder, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New("adder must be a number")
		}
		opts.TUOSEnergyAdder = adder
	}
	if v := query.Get("include_cgr"); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New("include_cgr must be a boolean")
		}
		opts.IncludeCGR = include
	}
	if v := query.Get("method"); v != "" {
		opts.DemandMethod = tariff.DemandMethod(v)
	}
	return opts, nil
}

// respondCalcError maps engine configuration errors to 400 and everything
// else to 500.
func respondCalcError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tariff.ErrUnknownVoltageLevel),
		errors.Is(err, tariff.ErrInvalidDemandMethod),
		errors.Is(err, tariff.ErrInvalidMonth):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "calculation error", http.StatusInternalServerError)
	}
}
