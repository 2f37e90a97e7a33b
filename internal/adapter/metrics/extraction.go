package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"

	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/extract"
)

// ExtractionMetrics tracks page fetches. It implements extract.Observer.
type ExtractionMetrics struct {
	Fetches        *prometheus.CounterVec
	FetchDuration  prometheus.Histogram
	BreakerChanges *prometheus.CounterVec
}

var _ extract.Observer = (*ExtractionMetrics)(nil)

func NewExtractionMetrics(reg prometheus.Registerer) *ExtractionMetrics {
	m := &ExtractionMetrics{
		Fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "extract",
			Name:      "fetches_total",
			Help:      "Total number of URL extractions, by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "extract",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of uncached page fetches in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 16},
		}),
		BreakerChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "extract",
			Name:      "circuit_breaker_transitions_total",
			Help:      "Total number of per-host circuit breaker transitions, by new state.",
		}, []string{"state"}),
	}

	reg.MustRegister(m.Fetches, m.FetchDuration, m.BreakerChanges)
	return m
}

func (m *ExtractionMetrics) FetchCompleted(outcome string, duration time.Duration) {
	m.Fetches.WithLabelValues(outcome).Inc()
	if outcome != extract.OutcomeCached && outcome != extract.OutcomeInvalidURL {
		m.FetchDuration.Observe(duration.Seconds())
	}
}

// Hosts are left out of the labels to keep cardinality bounded.
func (m *ExtractionMetrics) BreakerStateChanged(_ string, state gobreaker.State) {
	m.BreakerChanges.WithLabelValues(state.String()).Inc()
}
