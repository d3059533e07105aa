package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for generation attempts.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics groups the service collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	attempts        *prometheus.CounterVec
	attemptDuration *prometheus.HistogramVec
	fulfilled       prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "generation_attempts_total",
			Help: "Generation calls per model and outcome.",
		}, []string{"kind", "model", "outcome"}),
		attemptDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "generation_attempt_duration_seconds",
			Help:    "Latency of individual generation calls.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60, 120},
		}, []string{"kind", "model"}),
		fulfilled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "product_fulfilled_total",
			Help: "Products that transitioned from Pending to Fulfilled.",
		}),
	}
	reg.MustRegister(m.attempts, m.attemptDuration, m.fulfilled)
	return m
}

// ObserveAttempt records one generation call.
func (m *Metrics) ObserveAttempt(kind, model, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(kind, model, outcome).Inc()
	m.attemptDuration.WithLabelValues(kind, model).Observe(elapsed.Seconds())
}

// Fulfilled counts a Pending to Fulfilled transition.
func (m *Metrics) Fulfilled() {
	if m == nil {
		return
	}
	m.fulfilled.Inc()
}
