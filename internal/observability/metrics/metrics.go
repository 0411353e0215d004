package metrics

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "billing_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	ingestRequests   *prometheus.CounterVec
	ingestLatency    *prometheus.HistogramVec
	ingestedReadings prometheus.Counter

	billCalcTotal   *prometheus.CounterVec
	billCalcLatency *prometheus.HistogramVec

	seriesTotal   *prometheus.CounterVec
	seriesLatency *prometheus.HistogramVec

	billExportTotal   *prometheus.CounterVec
	billExportLatency *prometheus.HistogramVec
)

// Init registers observability metrics and DB-backed gauges.
func Init(db *sql.DB, logger *log.Logger) {
	registerOnce.Do(func() {
		ingestRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "ingest_requests_total",
				Help: "Total reading ingest requests by result",
			},
			[]string{"result"},
		)
		ingestLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "ingest_latency_seconds",
				Help:    "Reading ingest latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		ingestedReadings = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "ingested_readings_total",
				Help: "Total hourly readings accepted",
			},
		)

		billCalcTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "bill_calculations_total",
				Help: "Total monthly bill calculations by result",
			},
			[]string{"result"},
		)
		billCalcLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "bill_calculation_latency_seconds",
				Help:    "Monthly bill calculation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		seriesTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "series_queries_total",
				Help: "Total chart series queries by resolution and result",
			},
			[]string{"resolution", "result"},
		)
		seriesLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "series_query_latency_seconds",
				Help:    "Chart series query latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"resolution", "result"},
		)

		billExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "bill_export_total",
				Help: "Total bill export operations by format and result",
			},
			[]string{"format", "result"},
		)
		billExportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "bill_export_latency_seconds",
				Help:    "Bill export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			ingestRequests,
			ingestLatency,
			ingestedReadings,
			billCalcTotal,
			billCalcLatency,
			seriesTotal,
			seriesLatency,
			billExportTotal,
			billExportLatency,
		)

		if db != nil {
			registerDBMetrics(db, logger)
		}
	})
}

// ObserveIngest records ingest request duration and result.
func ObserveIngest(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if ingestRequests != nil {
		ingestRequests.WithLabelValues(result).Inc()
	}
	if ingestLatency != nil {
		ingestLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// AddIngestedReadings increments the accepted reading counter.
func AddIngestedReadings(count int) {
	if count <= 0 {
		return
	}
	if ingestedReadings != nil {
		ingestedReadings.Add(float64(count))
	}
}

// ObserveBillCalculation records bill calculation latency and result.
func ObserveBillCalculation(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if billCalcTotal != nil {
		billCalcTotal.WithLabelValues(result).Inc()
	}
	if billCalcLatency != nil {
		billCalcLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveSeriesQuery records series query latency and result.
func ObserveSeriesQuery(resolution, result string, duration time.Duration) {
	if resolution == "" {
		resolution = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if seriesTotal != nil {
		seriesTotal.WithLabelValues(resolution, result).Inc()
	}
	if seriesLatency != nil {
		seriesLatency.WithLabelValues(resolution, result).Observe(duration.Seconds())
	}
}

// ObserveBillExport records export latency and result.
func ObserveBillExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if billExportTotal != nil {
		billExportTotal.WithLabelValues(format, result).Inc()
	}
	if billExportLatency != nil {
		billExportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
