package interfaces

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"building-energy/internal/observability/metrics"
	readings "building-energy/internal/readings/domain"
)

// Accepted timestamp layouts for ingested readings.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// IngestHandler handles hourly reading ingestion from the metering gateway.
type IngestHandler struct {
	repo   readings.Repository
	logger *log.Logger
}

// NewIngestHandler constructs an ingest handler.
func NewIngestHandler(repo readings.Repository, logger *log.Logger) (*IngestHandler, error) {
	if repo == nil {
		return nil, errors.New("readings ingest: nil repository")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &IngestHandler{repo: repo, logger: logger}, nil
}

// ServeHTTP ingests readings.
func (h *IngestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	start := time.Now()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Printf("readings ingest: read body error: %v", err)
		http.Error(w, "read body error", http.StatusBadRequest)
		metrics.ObserveIngest(metrics.ResultError, time.Since(start))
		return
	}
	defer r.Body.Close()

	var req ingestRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.logger.Printf("readings ingest: decode error: %v", err)
		http.Error(w, "invalid json", http.StatusBadRequest)
		metrics.ObserveIngest(metrics.ResultError, time.Since(start))
		return
	}

	items, err := req.toReadings()
	if err != nil {
		h.logger.Printf("readings ingest: invalid payload: %v", err)
		http.Error(w, "invalid payload", http.StatusBadRequest)
		metrics.ObserveIngest(metrics.ResultError, time.Since(start))
		return
	}

	if err := h.repo.Insert(r.Context(), items); err != nil {
		h.logger.Printf("readings ingest: insert error: %v", err)
		http.Error(w, "insert error", http.StatusInternalServerError)
		metrics.ObserveIngest(metrics.ResultError, time.Since(start))
		return
	}

	metrics.ObserveIngest(metrics.ResultSuccess, time.Since(start))
	metrics.AddIngestedReadings(len(items))

	resp := map[string]any{"inserted": len(items)}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

type ingestRequest struct {
	MeterID  string          `json:"meterId"`
	Readings []ingestReading `json:"readings"`
}

type ingestReading struct {
	Timestamp string  `json:"timestamp"`
	KW        float64 `json:"kw"`
	KWh       float64 `json:"kwh"`
}

func (r ingestRequest) toReadings() ([]readings.Reading, error) {
	if r.MeterID == "" {
		return nil, readings.ErrEmptyMeterID
	}
	if len(r.Readings) == 0 {
		return nil, errors.New("no readings")
	}

	items := make([]readings.Reading, 0, len(r.Readings))
	for _, in := range r.Readings {
		ts, err := parseTimestamp(in.Timestamp)
		if err != nil {
			return nil, err
		}
		items = append(items, readings.Reading{
			MeterID:   r.MeterID,
			Timestamp: ts,
			KW:        in.KW,
			KWh:       in.KWh,
		})
	}
	return items, nil
}

func parseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, readings.ErrInvalidTimestamp
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, readings.ErrInvalidTimestamp
}
