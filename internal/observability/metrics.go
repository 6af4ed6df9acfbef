package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gameday_weather"

// Metrics holds the Prometheus counters, histograms, and gauges for report runs.
type Metrics struct {
	ReportRuns        *prometheus.CounterVec // labels: outcome={success,schedule_error}
	ReportDuration    prometheus.Histogram
	ReportLastSuccess prometheus.Gauge
	RecordsEmitted    *prometheus.CounterVec // labels: degraded={true,false}
	Diagnostics       *prometheus.CounterVec // labels: stage
	RecordsPublished  prometheus.Counter
	PublishErrors     prometheus.Counter

	// Upstream metrics.
	GeocodeRequests  *prometheus.CounterVec   // labels: provider, outcome={success,error,empty}
	ForecastRequests *prometheus.CounterVec   // labels: outcome={success,error}
	CacheLookups     *prometheus.CounterVec   // labels: cache={geocode,schedule}, result={hit,miss,error}
	UpstreamDuration *prometheus.HistogramVec // labels: provider
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ReportRuns,
		m.ReportDuration,
		m.ReportLastSuccess,
		m.RecordsEmitted,
		m.Diagnostics,
		m.RecordsPublished,
		m.PublishErrors,
		m.GeocodeRequests,
		m.ForecastRequests,
		m.CacheLookups,
		m.UpstreamDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ReportRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_runs_total",
			Help:      "Report runs by outcome.",
		}, []string{"outcome"}),
		ReportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_duration_seconds",
			Help:      "Duration of a complete report run, pacing included.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		ReportLastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "report_last_success_timestamp_seconds",
			Help:      "Unix time of the last report built from a successful schedule fetch.",
		}),
		RecordsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_emitted_total",
			Help:      "Report records emitted, split by whether weather fields are degraded.",
		}, []string{"degraded"}),
		Diagnostics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagnostics_total",
			Help:      "Per-game diagnostics by join stage.",
		}, []string{"stage"}),
		RecordsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_published_total",
			Help:      "Records written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Failed report publications.",
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Geocoding requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		ForecastRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forecast_requests_total",
			Help:      "Hourly forecast requests by outcome.",
		}, []string{"outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Memoization lookups by cache and result.",
		}, []string{"cache", "result"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Outbound API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),
	}
}
