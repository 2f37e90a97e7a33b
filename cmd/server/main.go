package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/adapter/httpserver"
	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/adapter/metrics"
	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/adapter/redis"
	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/analyzer"
	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/app"
	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/extract"
	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/lexicon"
	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/platform/config"
	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/platform/logging"
	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/scorer"
	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/wsd"
)

const (
	shutdownTimeout      = 10 * time.Second
	pageCacheEvictPeriod = time.Minute
)

func runGracefulShutdown(srv *httpserver.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// setupRedis connects the shared page cache layer. Without REDIS_URL the
// cache stays in memory.
func setupRedis(ctx context.Context, cfg *config.Config, cacheMetrics *metrics.CacheMetrics) *goredis.Client {
	if cfg.RedisURL == "" {
		slog.Info("REDIS_URL not set, page cache is in-memory only")
		return nil
	}

	client, err := redis.NewClient(ctx, cfg.RedisURL, redis.NewMetricsHook(cacheMetrics))
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func setupAnalyzer(cfg *config.Config, observer analyzer.Observer) *analyzer.Analyzer {
	lex := lexicon.Default()
	engine := wsd.Default(wsd.WithWindow(cfg.WSDWindowSize))
	sc := scorer.New(lex, scorer.DefaultTables())

	slog.Info("Analyzer ready", "lexicon_words", lex.Len(), "wsd_window", engine.Window())
	return analyzer.New(lex, engine, sc,
		analyzer.WithObserver(observer),
		analyzer.WithBatchConcurrency(cfg.BatchConcurrency),
	)
}

func extractorConfig(cfg *config.Config) extract.Config {
	ec := extract.DefaultConfig()
	ec.Timeout = cfg.FetchTimeout
	ec.UserAgent = cfg.FetchUserAgent
	ec.MaxBytes = cfg.FetchMaxBytes
	return ec
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	registry := metrics.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	analysisMetrics := metrics.NewAnalysisMetrics(registry)
	extractionMetrics := metrics.NewExtractionMetrics(registry)
	cacheMetrics := metrics.NewCacheMetrics(registry)

	cacheOpts := []redis.PageCacheOption{
		redis.WithRecorder(cacheMetrics),
		redis.WithClock(clock),
	}
	var healthChecks []httpserver.HealthCheck

	redisClient := setupRedis(context.Background(), cfg, cacheMetrics)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
		cacheOpts = append(cacheOpts, redis.WithRedis(redisClient))
		pingRedis := func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		healthChecks = append(healthChecks, httpserver.HealthCheck{Name: "redis", Check: pingRedis})
	}

	pageCache := redis.NewPageCache(cfg.PageCacheTTL, cacheOpts...)
	stopEviction := pageCache.StartEvictionTimer(pageCacheEvictPeriod)
	defer stopEviction()

	extractor := extract.New(extractorConfig(cfg),
		extract.WithCache(pageCache),
		extract.WithObserver(extractionMetrics),
	)

	appSvc := app.NewService(setupAnalyzer(cfg, analysisMetrics), extractor, app.Config{
		BatchMaxSize: cfg.BatchMaxSize,
		MinURLWords:  cfg.MinURLWords,
	})

	srv := httpserver.NewServer(cfg, appSvc,
		httpserver.WithClock(clock),
		httpserver.WithMetrics(httpMetrics, metrics.Handler(registry)),
		httpserver.WithHealthChecks(healthChecks...),
	)

	done := runGracefulShutdown(srv)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
