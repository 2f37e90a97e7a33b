// Package extract fetches web pages and reduces them to their main text.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/domain"
	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/platform/retry"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/singleflight"
)

// Fetch outcomes reported to the Observer.
const (
	OutcomeSuccess     = "success"
	OutcomeCached      = "cached"
	OutcomeHTTPError   = "http_error"
	OutcomeNetError    = "network_error"
	OutcomeBreakerOpen = "breaker_open"
	OutcomeInvalidURL  = "invalid_url"
)

// Observer receives fetch events. Implemented by the metrics adapter.
type Observer interface {
	FetchCompleted(outcome string, duration time.Duration)
	BreakerStateChanged(host string, state gobreaker.State)
}

type noopObserver struct{}

func (noopObserver) FetchCompleted(string, time.Duration)        {}
func (noopObserver) BreakerStateChanged(string, gobreaker.State) {}

// StatusError is returned when the page answers with a non-200 status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

type Config struct {
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
	Retry     retry.Policy
}

// DefaultConfig mirrors the service defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:   8 * time.Second,
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		MaxBytes:  5 << 20,
		Retry: retry.Policy{
			MaxAttempts:      2,
			InitialBackoff:   250 * time.Millisecond,
			RateLimitBackoff: time.Second,
			MaxBackoff:       2 * time.Second,
		},
	}
}

type Option func(*Extractor)

func WithHTTPClient(c *http.Client) Option {
	return func(e *Extractor) { e.client = c }
}

func WithCache(c domain.PageCache) Option {
	return func(e *Extractor) { e.cache = c }
}

func WithObserver(o Observer) Option {
	return func(e *Extractor) { e.observer = o }
}

// Extractor implements domain.TextExtractor over HTTP.
//
// Concurrent requests for the same URL share one fetch, and every host gets
// its own circuit breaker so one dead site does not block the others.
type Extractor struct {
	cfg      Config
	client   *http.Client
	cache    domain.PageCache
	observer Observer
	group    singleflight.Group

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

var _ domain.TextExtractor = (*Extractor)(nil)

func New(cfg Config, opts ...Option) *Extractor {
	e := &Extractor{
		cfg:      cfg,
		client:   &http.Client{Timeout: cfg.Timeout},
		observer: noopObserver{},
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the main text of the page at rawURL. A page that yields no
// text is not an error; callers decide what is enough.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (string, error) {
	u, err := parseURL(rawURL)
	if err != nil {
		e.observer.FetchCompleted(OutcomeInvalidURL, 0)
		return "", err
	}
	key := u.String()

	if e.cache != nil {
		if text, ok := e.cache.Get(ctx, key); ok {
			e.observer.FetchCompleted(OutcomeCached, 0)
			return text, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	// The shared fetch outlives any single caller; a caller that goes away
	// stops waiting without failing the others.
	ch := e.group.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.fetchBudget())
		defer cancel()

		text, err := e.fetch(fetchCtx, u)
		if err == nil && e.cache != nil {
			e.cache.Set(fetchCtx, key, text)
		}
		return text, err
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// fetchBudget bounds a shared fetch: every attempt may use the full client
// timeout, separated by the longest backoff.
func (e *Extractor) fetchBudget() time.Duration {
	attempts := max(1, e.cfg.Retry.MaxAttempts)
	backoff := max(e.cfg.Retry.MaxBackoff, e.cfg.Retry.RateLimitBackoff, e.cfg.Retry.InitialBackoff)
	return time.Duration(attempts)*e.cfg.Timeout + time.Duration(attempts-1)*backoff
}

func (e *Extractor) fetch(ctx context.Context, u *url.URL) (string, error) {
	start := time.Now()
	cb := e.breaker(u.Host)

	v, err := cb.Execute(func() (any, error) {
		return retry.Do(ctx, e.retryPolicy(u.String()), classify, func(ctx context.Context) (string, error) {
			return e.get(ctx, u.String())
		})
	})
	elapsed := time.Since(start)
	if err != nil {
		e.observer.FetchCompleted(failureOutcome(err), elapsed)
		return "", fmt.Errorf("failed to fetch %s: %w", u.Redacted(), err)
	}

	e.observer.FetchCompleted(OutcomeSuccess, elapsed)
	return v.(string), nil
}

func (e *Extractor) get(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", e.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", &StatusError{StatusCode: resp.StatusCode}
	}

	var body io.Reader = resp.Body
	if e.cfg.MaxBytes > 0 {
		body = io.LimitReader(resp.Body, e.cfg.MaxBytes)
	}
	return MainText(body)
}

func (e *Extractor) retryPolicy(target string) retry.Policy {
	p := e.cfg.Retry
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	p.OnRetry = func(attempt int, err error, backoff time.Duration) {
		slog.Debug("Retrying page fetch", "url", target, "attempt", attempt, "backoff", backoff, "error", err)
	}
	return p
}

func (e *Extractor) breaker(host string) *gobreaker.CircuitBreaker {
	e.mu.Lock()
	defer e.mu.Unlock()

	if cb, ok := e.breakers[host]; ok {
		return cb
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        host,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// Client-side statuses say nothing about the host's health.
		IsSuccessful: func(err error) bool {
			var se *StatusError
			return err == nil || (errors.As(err, &se) && se.StatusCode < 500)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed", "component", "extract", "host", name, "from", from.String(), "to", to.String())
			e.observer.BreakerStateChanged(name, to)
		},
	})
	e.breakers[host] = cb
	return cb
}

func parseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme must be http or https", domain.ErrInvalidURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", domain.ErrInvalidURL)
	}
	return u, nil
}

func classify(err error) retry.Action {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return retry.Stop
	}

	var se *StatusError
	if errors.As(err, &se) {
		switch {
		case se.StatusCode == http.StatusTooManyRequests:
			return retry.After
		case se.StatusCode >= 500:
			return retry.Retry
		default:
			return retry.Stop
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return retry.Retry
	}
	return retry.Stop
}

func failureOutcome(err error) string {
	var se *StatusError
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return OutcomeBreakerOpen
	case errors.As(err, &se):
		return OutcomeHTTPError
	default:
		return OutcomeNetError
	}
}
