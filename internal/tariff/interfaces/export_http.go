package interfaces

import (
	"errors"
	"net/http"
	"time"

	"building-energy/internal/observability/metrics"
	"building-energy/internal/tariff/application"
)

// ExportHandler serves itemized bill exports.
type ExportHandler struct {
	service *application.BillingService
}

// NewExportHandler constructs an ExportHandler.
func NewExportHandler(service *application.BillingService) (*ExportHandler, error) {
	if service == nil {
		return nil, errors.New("export handler: nil service")
	}
	return &ExportHandler{service: service}, nil
}

// ServeHTTP handles GET /api/v1/bills/export.
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	start := time.Now()

	format := r.URL.Query().Get("format")
	switch format {
	case "pdf", "xlsx", "csv":
	default:
		http.Error(w, "format must be pdf, xlsx or csv", http.StatusBadRequest)
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
		metrics.ObserveBillExport(format, metrics.ResultError, time.Since(start))
		respondCalcError(w, err)
		return
	}

	var payload []byte
	var contentType, filename string
	switch format {
	case "pdf":
		payload, err = BuildBillsPDF(meterID, bills)
		contentType = "application/pdf"
		filename = "bills.pdf"
	case "xlsx":
		payload, err = BuildBillsXLSX(meterID, bills)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = "bills.xlsx"
	case "csv":
		payload, err = BuildBillsCSV(bills)
		contentType = "text/csv"
		filename = "bills.csv"
	}
	if err != nil {
		metrics.ObserveBillExport(format, metrics.ResultError, time.Since(start))
		http.Error(w, "export error", http.StatusInternalServerError)
		return
	}

	metrics.ObserveBillExport(format, metrics.ResultSuccess, time.Since(start))
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(payload)
}
