package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/adapter/redis"
	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/domain"
	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/extract"
)

func TestHandler_ServesRegisteredMetrics(t *testing.T) {
	reg := NewRegistry()
	NewAnalysisMetrics(reg).AnalysisCompleted(domain.ModeGeneral, domain.LabelPositive, 0.5)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `wsd_sentiment_analysis_completed_total{label="POSITIVE",mode="general"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestAnalysisMetrics(t *testing.T) {
	m := NewAnalysisMetrics(prometheus.NewRegistry())

	m.AnalysisCompleted(domain.ModeSocial, domain.LabelNegative, -0.4)
	m.AnalysisCompleted(domain.ModeSocial, domain.LabelNegative, -0.6)
	m.AnalysisFailed("empty_text")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Analyses.WithLabelValues("social", "NEGATIVE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failures.WithLabelValues("empty_text")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Scores))
}

func TestExtractionMetrics(t *testing.T) {
	m := NewExtractionMetrics(prometheus.NewRegistry())

	m.FetchCompleted(extract.OutcomeSuccess, 300*time.Millisecond)
	m.FetchCompleted(extract.OutcomeCached, 0)
	m.FetchCompleted(extract.OutcomeCached, 0)
	m.BreakerStateChanged("example.com", gobreaker.StateOpen)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Fetches.WithLabelValues(extract.OutcomeSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Fetches.WithLabelValues(extract.OutcomeCached)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BreakerChanges.WithLabelValues("open")))

	expected := `
# HELP wsd_sentiment_extract_fetch_duration_seconds Duration of uncached page fetches in seconds.
# TYPE wsd_sentiment_extract_fetch_duration_seconds histogram
wsd_sentiment_extract_fetch_duration_seconds_bucket{le="0.05"} 0
wsd_sentiment_extract_fetch_duration_seconds_bucket{le="0.1"} 0
wsd_sentiment_extract_fetch_duration_seconds_bucket{le="0.25"} 0
wsd_sentiment_extract_fetch_duration_seconds_bucket{le="0.5"} 1
wsd_sentiment_extract_fetch_duration_seconds_bucket{le="1"} 1
wsd_sentiment_extract_fetch_duration_seconds_bucket{le="2"} 1
wsd_sentiment_extract_fetch_duration_seconds_bucket{le="4"} 1
wsd_sentiment_extract_fetch_duration_seconds_bucket{le="8"} 1
wsd_sentiment_extract_fetch_duration_seconds_bucket{le="16"} 1
wsd_sentiment_extract_fetch_duration_seconds_bucket{le="+Inf"} 1
wsd_sentiment_extract_fetch_duration_seconds_sum 0.3
wsd_sentiment_extract_fetch_duration_seconds_count 1
`
	require.NoError(t, testutil.CollectAndCompare(m.FetchDuration, strings.NewReader(expected)))
}

func TestCacheMetrics(t *testing.T) {
	m := NewCacheMetrics(prometheus.NewRegistry())

	m.Hit(redis.LayerMemory)
	m.Miss(redis.LayerMemory)
	m.Miss(redis.LayerRedis)
	m.RedisOp("get", "success", time.Millisecond)
	m.RedisOp("get", "error", time.Millisecond)
	m.RedisConnectionError()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Hits.WithLabelValues("memory")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Misses.WithLabelValues("memory")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Misses.WithLabelValues("redis")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RedisOps.WithLabelValues("get", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RedisConnErrors))
}

type statusErr struct{ code int }

func (e statusErr) Error() string   { return "status" }
func (e statusErr) HTTPStatus() int { return e.code }

func TestHTTPMetrics_Middleware(t *testing.T) {
	tests := []struct {
		name       string
		route      string
		handler    echo.HandlerFunc
		wantRoute  string
		wantStatus string
		wantCount  float64
	}{
		{
			name:       "ok",
			route:      "/api/analyze",
			handler:    func(c echo.Context) error { return c.NoContent(http.StatusOK) },
			wantRoute:  "/api/analyze",
			wantStatus: "200",
			wantCount:  1,
		},
		{
			name:       "echo error",
			route:      "/api/batch",
			handler:    func(c echo.Context) error { return echo.NewHTTPError(http.StatusRequestEntityTooLarge) },
			wantRoute:  "/api/batch",
			wantStatus: "413",
			wantCount:  1,
		},
		{
			name:       "status error",
			route:      "/api/analyze_url",
			handler:    func(c echo.Context) error { return statusErr{code: http.StatusBadRequest} },
			wantRoute:  "/api/analyze_url",
			wantStatus: "400",
			wantCount:  1,
		},
		{
			name:       "plain error",
			route:      "",
			handler:    func(c echo.Context) error { return errors.New("boom") },
			wantRoute:  unmatchedRoute,
			wantStatus: "500",
			wantCount:  1,
		},
		{
			name:       "health skipped",
			route:      "/health/live",
			handler:    func(c echo.Context) error { return c.NoContent(http.StatusOK) },
			wantRoute:  "/health/live",
			wantStatus: "200",
			wantCount:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewHTTPMetrics(prometheus.NewRegistry())

			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())
			c.SetPath(tt.route)

			_ = m.Middleware()(tt.handler)(c)

			got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodPost, tt.wantRoute, tt.wantStatus))
			assert.Equal(t, tt.wantCount, got)
			assert.Equal(t, 0.0, testutil.ToFloat64(m.InFlightGauge))
		})
	}
}
