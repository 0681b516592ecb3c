package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the alert pipeline
type Metrics struct {
	alertsTriggered     *prometheus.CounterVec
	notificationsSent   *prometheus.CounterVec
	notificationsFailed *prometheus.CounterVec
	searchPasses        prometheus.Histogram
	searchLatency       prometheus.Histogram
	dispatchLatency     prometheus.Histogram
}

// NewMetrics creates and registers all alert metrics
func NewMetrics() *Metrics {
	return &Metrics{
		alertsTriggered: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sos_alerts_total",
				Help: "Total number of SOS alerts by workflow and outcome",
			},
			[]string{"workflow", "outcome"},
		),
		notificationsSent: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sos_notifications_sent_total",
				Help: "Total number of notifications delivered",
			},
			[]string{"workflow"},
		),
		notificationsFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sos_notifications_failed_total",
				Help: "Total number of notifications that failed to deliver",
			},
			[]string{"workflow"},
		),
		searchPasses: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sos_search_passes",
				Help:    "Radius passes needed per proximity search",
				Buckets: []float64{1, 2, 3, 4, 5},
			},
		),
		searchLatency: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sos_search_latency_ms",
				Help:    "Latency of candidate searches in milliseconds",
				Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
			},
		),
		dispatchLatency: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sos_dispatch_latency_ms",
				Help:    "Latency of notification fan-out batches in milliseconds",
				Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
			},
		),
	}
}

// IncrementAlerts increments the alert counter for a workflow outcome
func (m *Metrics) IncrementAlerts(workflow, outcome string) {
	m.alertsTriggered.WithLabelValues(workflow, outcome).Inc()
}

// AddDispatchOutcomes records delivered and failed sends for a workflow
func (m *Metrics) AddDispatchOutcomes(workflow string, sent, failed int) {
	m.notificationsSent.WithLabelValues(workflow).Add(float64(sent))
	m.notificationsFailed.WithLabelValues(workflow).Add(float64(failed))
}

// ObserveSearch records one proximity search run
func (m *Metrics) ObserveSearch(passes int, elapsed time.Duration) {
	m.searchPasses.Observe(float64(passes))
	m.searchLatency.Observe(float64(elapsed.Microseconds()) / 1000.0)
}

// ObserveDispatch records the latency of one fan-out batch
func (m *Metrics) ObserveDispatch(elapsed time.Duration) {
	m.dispatchLatency.Observe(float64(elapsed.Microseconds()) / 1000.0)
}
