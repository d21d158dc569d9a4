// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Model metrics
	ScenarioComputations prometheus.Counter
	SweepRuns            *prometheus.CounterVec
	SweepRowsComputed    prometheus.Counter
	SweepDuration        *prometheus.HistogramVec
	ProfitableLevels     *prometheus.GaugeVec

	// HTTP metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Live session metrics
	LiveSessionsActive prometheus.Gauge
	LiveSessionsTotal  prometheus.Counter
	LiveMessages       prometheus.Counter
	LiveComputeLatency prometheus.Histogram

	// Reporting metrics
	ReportsGenerated prometheus.Counter

	// Health metrics
	LastSweepRun prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "redemption_model"
	}

	return &Metrics{
		// Model metrics
		ScenarioComputations: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "model",
			Name:      "scenario_computations_total",
			Help:      "Total number of single-scenario fee breakdowns computed",
		}),
		SweepRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sweep",
			Name:      "runs_total",
			Help:      "Total number of sweep runs by loss model",
		}, []string{"loss_model"}),
		SweepRowsComputed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sweep",
			Name:      "rows_computed_total",
			Help:      "Total number of sweep rows computed",
		}),
		SweepDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sweep",
			Name:      "duration_seconds",
			Help:      "Sweep execution duration in seconds",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		}, []string{"loss_model"}),
		ProfitableLevels: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sweep",
			Name:      "profitable_levels",
			Help:      "Profitable deposit levels found by the most recent sweep per loss model",
		}, []string{"loss_model"}),

		// HTTP metrics
		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route and status code",
		}, []string{"route", "status"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),

		// Live session metrics
		LiveSessionsActive: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "sessions_active",
			Help:      "Currently open live recompute sessions",
		}),
		LiveSessionsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "sessions_total",
			Help:      "Total number of live recompute sessions opened",
		}),
		LiveMessages: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "messages_total",
			Help:      "Total number of parameter messages processed by live sessions",
		}),
		LiveComputeLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "compute_latency_seconds",
			Help:      "Latency from receiving a live parameter message to sending the result",
			Buckets:   prometheus.DefBuckets,
		}),

		// Reporting metrics
		ReportsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reporting",
			Name:      "reports_generated_total",
			Help:      "Total number of reports generated",
		}),

		// Health metrics
		LastSweepRun: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_sweep_run_timestamp",
			Help:      "Unix timestamp of the most recent sweep run",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordScenarioComputation increments the scenario computation counter.
func RecordScenarioComputation() {
	DefaultMetrics.ScenarioComputations.Inc()
}

// RecordSweepRun records one sweep run: row count, duration, and the
// last-run timestamp.
func RecordSweepRun(lossModel string, rows int, seconds, atUnix float64) {
	DefaultMetrics.SweepRuns.WithLabelValues(lossModel).Inc()
	DefaultMetrics.SweepRowsComputed.Add(float64(rows))
	DefaultMetrics.SweepDuration.WithLabelValues(lossModel).Observe(seconds)
	DefaultMetrics.LastSweepRun.Set(atUnix)
}

// RecordProfitableLevels records how many deposit levels the analyzer found
// profitable in the most recent sweep under the given loss model.
func RecordProfitableLevels(lossModel string, profitable int) {
	DefaultMetrics.ProfitableLevels.WithLabelValues(lossModel).Set(float64(profitable))
}

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(route, status string, seconds float64) {
	DefaultMetrics.HTTPRequests.WithLabelValues(route, status).Inc()
	DefaultMetrics.HTTPRequestDuration.WithLabelValues(route).Observe(seconds)
}

// LiveSessionOpened records a new live session.
func LiveSessionOpened() {
	DefaultMetrics.LiveSessionsActive.Inc()
	DefaultMetrics.LiveSessionsTotal.Inc()
}

// LiveSessionClosed records a finished live session.
func LiveSessionClosed() {
	DefaultMetrics.LiveSessionsActive.Dec()
}

// RecordLiveMessage records one processed live parameter message.
func RecordLiveMessage(seconds float64) {
	DefaultMetrics.LiveMessages.Inc()
	DefaultMetrics.LiveComputeLatency.Observe(seconds)
}

// RecordReportGenerated increments the reports generated counter.
func RecordReportGenerated() {
	DefaultMetrics.ReportsGenerated.Inc()
}
