package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/adapter/redis"
)

// CacheMetrics holds Prometheus metrics for the page cache and its Redis
// connection.
type CacheMetrics struct {
	Hits            *prometheus.CounterVec
	Misses          *prometheus.CounterVec
	RedisOps        *prometheus.CounterVec
	RedisOpDuration *prometheus.HistogramVec
	RedisConnErrors prometheus.Counter
}

var (
	_ redis.CacheRecorder = (*CacheMetrics)(nil)
	_ redis.OpRecorder    = (*CacheMetrics)(nil)
)

// NewCacheMetrics creates and registers cache metrics on the given registry.
func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	m := &CacheMetrics{
		Hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "page_cache",
			Name:      "hits_total",
			Help:      "Total number of page cache hits, by layer.",
		}, []string{"layer"}),
		Misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "page_cache",
			Name:      "misses_total",
			Help:      "Total number of page cache misses, by layer.",
		}, []string{"layer"}),
		RedisOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "redis",
			Name:      "operations_total",
			Help:      "Total number of Redis commands, by operation and status.",
		}, []string{"operation", "status"}),
		RedisOpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "redis",
			Name:      "operation_duration_seconds",
			Help:      "Duration of Redis commands in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}, []string{"operation"}),
		RedisConnErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "redis",
			Name:      "connection_errors_total",
			Help:      "Total number of failed Redis dials.",
		}),
	}

	reg.MustRegister(m.Hits, m.Misses, m.RedisOps, m.RedisOpDuration, m.RedisConnErrors)
	return m
}

func (m *CacheMetrics) Hit(layer string)  { m.Hits.WithLabelValues(layer).Inc() }
func (m *CacheMetrics) Miss(layer string) { m.Misses.WithLabelValues(layer).Inc() }

func (m *CacheMetrics) RedisOp(operation, status string, duration time.Duration) {
	m.RedisOps.WithLabelValues(operation, status).Inc()
	m.RedisOpDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *CacheMetrics) RedisConnectionError() {
	m.RedisConnErrors.Inc()
}
