package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/domain"
	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/platform/config"
)

// --- Mock implementations ---

type mockAppService struct {
	analyzeFn      func(ctx context.Context, text string, mode domain.Mode) (domain.AnalysisResult, error)
	analyzeBatchFn func(ctx context.Context, texts []string, mode string) (domain.BatchResult, error)
	analyzeURLFn   func(ctx context.Context, url string) (domain.AnalysisResult, error)
}

func (m *mockAppService) Analyze(ctx context.Context, text string, mode domain.Mode) (domain.AnalysisResult, error) {
	if m.analyzeFn != nil {
		return m.analyzeFn(ctx, text, mode)
	}
	return domain.AnalysisResult{}, fmt.Errorf("not implemented")
}

func (m *mockAppService) AnalyzeBatch(ctx context.Context, texts []string, mode string) (domain.BatchResult, error) {
	if m.analyzeBatchFn != nil {
		return m.analyzeBatchFn(ctx, texts, mode)
	}
	return domain.BatchResult{}, fmt.Errorf("not implemented")
}

func (m *mockAppService) AnalyzeURL(ctx context.Context, url string) (domain.AnalysisResult, error) {
	if m.analyzeURLFn != nil {
		return m.analyzeURLFn(ctx, url)
	}
	return domain.AnalysisResult{}, fmt.Errorf("not implemented")
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		Port:             "0",
		RateLimitRPS:     1000,
		RateLimitBurst:   1000,
		CORSAllowOrigins: "*",
		BodyLimit:        "1M",
	}
}

func newTestServer(t *testing.T, app appService, opts ...Option) *Server {
	t.Helper()

	opts = append([]Option{WithClock(clockwork.NewFakeClockAt(testNow))}, opts...)
	return NewServer(testConfig(), app, opts...)
}

func doRequest(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func doRaw(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}
