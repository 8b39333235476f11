package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the patient module.
type Metrics struct {
	PatientsCreated prometheus.Counter
	ListDuration    prometheus.Histogram
}

// New creates a new Metrics instance with all patient module metrics registered.
func New() *Metrics {
	return &Metrics{
		PatientsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "carebase_patients_created_total",
			Help: "Total number of patient records created",
		}),
		ListDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "carebase_patient_list_duration_seconds",
			Help:    "Duration of patient list operations (dashboard critical path)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementPatientsCreated records a successful patient creation.
func (m *Metrics) IncrementPatientsCreated() {
	m.PatientsCreated.Inc()
}

// ObserveList records the duration of a list operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveList(start time.Time) {
	m.ListDuration.Observe(time.Since(start).Seconds())
}
