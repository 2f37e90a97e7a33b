package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/analyzer"
	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/domain"
)

// AnalysisMetrics tracks analyzer outcomes. It implements analyzer.Observer.
type AnalysisMetrics struct {
	Analyses *prometheus.CounterVec
	Failures *prometheus.CounterVec
	Scores   *prometheus.HistogramVec
}

var _ analyzer.Observer = (*AnalysisMetrics)(nil)

func NewAnalysisMetrics(reg prometheus.Registerer) *AnalysisMetrics {
	m := &AnalysisMetrics{
		Analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "completed_total",
			Help:      "Total number of completed analyses, by mode and label.",
		}, []string{"mode", "label"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "failed_total",
			Help:      "Total number of failed analyses, by reason.",
		}, []string{"reason"}),
		Scores: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "score",
			Help:      "Distribution of sentiment scores in [-1, 1], by mode.",
			Buckets:   prometheus.LinearBuckets(-1, 0.25, 9),
		}, []string{"mode"}),
	}

	reg.MustRegister(m.Analyses, m.Failures, m.Scores)
	return m
}

func (m *AnalysisMetrics) AnalysisCompleted(mode domain.Mode, label domain.Label, score float64) {
	m.Analyses.WithLabelValues(string(mode), string(label)).Inc()
	m.Scores.WithLabelValues(string(mode)).Observe(score)
}

func (m *AnalysisMetrics) AnalysisFailed(reason string) {
	m.Failures.WithLabelValues(reason).Inc()
}
