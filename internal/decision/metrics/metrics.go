package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the decision module.
type Metrics struct {
	// Ingested results by severity
	ResultsIngested *prometheus.CounterVec

	// Acknowledgements by severity
	Acknowledgements *prometheus.CounterVec

	// List latency
	ListLatency prometheus.Histogram
}

// New creates a new Metrics instance with all decision module metrics registered.
func New() *Metrics {
	return &Metrics{
		ResultsIngested: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "carebase_decision_results_ingested_total",
			Help: "Total decision results ingested by severity",
		}, []string{"severity"}),

		Acknowledgements: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "carebase_decision_acknowledgements_total",
			Help: "Total decision acknowledgements by severity",
		}, []string{"severity"}),

		ListLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "carebase_decision_list_duration_seconds",
			Help:    "Duration of decision list operations",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementIngested records an ingested decision result.
func (m *Metrics) IncrementIngested(severity string) {
	if m != nil {
		m.ResultsIngested.WithLabelValues(severity).Inc()
	}
}

// IncrementAcknowledged records an acknowledgement.
func (m *Metrics) IncrementAcknowledged(severity string) {
	if m != nil {
		m.Acknowledgements.WithLabelValues(severity).Inc()
	}
}

// ObserveList records the duration of a list operation.
func (m *Metrics) ObserveList(start time.Time) {
	if m != nil {
		m.ListLatency.Observe(time.Since(start).Seconds())
	}
}
