package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Port      string `env:"PORT" default:"5000"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	// RedisURL enables the shared page cache when set.
	RedisURL string `env:"REDIS_URL"`

	WSDWindowSize int `env:"WSD_WINDOW_SIZE" default:"5"`

	FetchTimeout   time.Duration `env:"FETCH_TIMEOUT" default:"8s"`
	FetchUserAgent string        `env:"FETCH_USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"`
	FetchMaxBytes  int64         `env:"FETCH_MAX_BYTES" default:"5242880"`
	PageCacheTTL   time.Duration `env:"PAGE_CACHE_TTL" default:"10m"`
	MinURLWords    int           `env:"MIN_URL_WORDS" default:"20"`

	BatchMaxSize     int `env:"BATCH_MAX_SIZE" default:"100"`
	BatchConcurrency int `env:"BATCH_CONCURRENCY" default:"4"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" default:"20"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" default:"40"`

	CORSAllowOrigins string `env:"CORS_ALLOW_ORIGINS" default:"*"`
	BodyLimit        string `env:"BODY_LIMIT" default:"1M"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// AllowOrigins splits CORS_ALLOW_ORIGINS on commas.
func (c *Config) AllowOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func validate(cfg *Config) error {
	if cfg.WSDWindowSize < 1 || cfg.WSDWindowSize > 50 {
		return fmt.Errorf("WSD_WINDOW_SIZE must be between 1 and 50, got %d", cfg.WSDWindowSize)
	}
	if cfg.FetchTimeout <= 0 {
		return errors.New("FETCH_TIMEOUT must be positive")
	}
	if cfg.FetchMaxBytes <= 0 {
		return errors.New("FETCH_MAX_BYTES must be positive")
	}
	if cfg.MinURLWords < 1 {
		return errors.New("MIN_URL_WORDS must be at least 1")
	}
	if cfg.BatchMaxSize < 1 {
		return errors.New("BATCH_MAX_SIZE must be at least 1")
	}
	if cfg.BatchConcurrency < 1 {
		return errors.New("BATCH_CONCURRENCY must be at least 1")
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst < 1 {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if len(cfg.AllowOrigins()) == 0 {
		return errors.New("CORS_ALLOW_ORIGINS must name at least one origin")
	}

	if cfg.RedisURL != "" {
		u, err := url.Parse(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("REDIS_URL is invalid: %w", err)
		}
		if u.Scheme != "redis" && u.Scheme != "rediss" {
			return fmt.Errorf("REDIS_URL must use redis:// or rediss://, got %q", u.Scheme)
		}
	}

	return nil
}
