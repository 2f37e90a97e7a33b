package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/domain"
)

// Cache layers reported to the CacheRecorder.
const (
	LayerMemory = "memory"
	LayerRedis  = "redis"
)

// CacheRecorder counts lookups per layer.
type CacheRecorder interface {
	Hit(layer string)
	Miss(layer string)
}

type noopRecorder struct{}

func (noopRecorder) Hit(string)  {}
func (noopRecorder) Miss(string) {}

type PageCacheOption func(*PageCache)

// WithRedis adds a shared second layer behind the in-memory one.
func WithRedis(rdb goredis.Cmdable) PageCacheOption {
	return func(c *PageCache) { c.rdb = rdb }
}

func WithRecorder(rec CacheRecorder) PageCacheOption {
	return func(c *PageCache) { c.rec = rec }
}

func WithClock(clock clockwork.Clock) PageCacheOption {
	return func(c *PageCache) { c.clock = clock }
}

// PageCache keeps extracted page text in process memory and, when
// configured, in Redis. Redis failures degrade to misses.
type PageCache struct {
	rdb   goredis.Cmdable
	ttl   time.Duration
	clock clockwork.Clock
	rec   CacheRecorder
	mem   *memoryCache
}

var _ domain.PageCache = (*PageCache)(nil)

func NewPageCache(ttl time.Duration, opts ...PageCacheOption) *PageCache {
	c := &PageCache{
		ttl:   ttl,
		clock: clockwork.NewRealClock(),
		rec:   noopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.mem = newMemoryCache(ttl, c.clock)
	return c
}

// StartEvictionTimer runs a periodic goroutine that drops expired in-memory
// entries. Returns a stop function that should be deferred.
func (c *PageCache) StartEvictionTimer(interval time.Duration) func() {
	ticker := c.clock.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.Chan():
				if evicted := c.mem.evictExpired(); evicted > 0 {
					slog.Debug("Evicted expired page cache entries", "count", evicted, "remaining", c.mem.size())
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

func (c *PageCache) Get(ctx context.Context, url string) (string, bool) {
	if text, ok := c.mem.get(url); ok {
		c.rec.Hit(LayerMemory)
		return text, true
	}
	c.rec.Miss(LayerMemory)

	if c.rdb == nil {
		return "", false
	}

	text, ok := c.getCached(ctx, url)
	if !ok {
		c.rec.Miss(LayerRedis)
		return "", false
	}
	c.rec.Hit(LayerRedis)
	c.mem.set(url, text)
	return text, true
}

func (c *PageCache) Set(ctx context.Context, url, text string) {
	c.mem.set(url, text)
	if c.rdb != nil {
		c.writeCache(ctx, url, text)
	}
}

type cachedPage struct {
	URL       string    `json:"url"`
	Text      string    `json:"text"`
	FetchedAt time.Time `json:"fetched_at"`
}

func (c *PageCache) writeCache(ctx context.Context, url, text string) {
	encoded, err := json.Marshal(cachedPage{URL: url, Text: text, FetchedAt: c.clock.Now().UTC()})
	if err != nil {
		slog.Warn("Failed to marshal page for Redis cache", "url", url, "error", err)
		return
	}

	if err := c.rdb.Set(ctx, pageCacheKey(url), encoded, c.ttl).Err(); err != nil {
		slog.Warn("Failed to populate Redis page cache", "url", url, "error", err)
	}
}

func (c *PageCache) getCached(ctx context.Context, url string) (string, bool) {
	data, err := c.rdb.Get(ctx, pageCacheKey(url)).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			slog.Warn("Redis page cache GET failed", "url", url, "error", err)
		}
		return "", false
	}

	var page cachedPage
	if err := json.Unmarshal(data, &page); err != nil {
		slog.Warn("Failed to unmarshal cached page", "url", url, "error", err)
		return "", false
	}
	// A digest collision reads as a miss.
	if page.URL != url {
		return "", false
	}
	return page.Text, true
}

// pageCacheKey keys pages by the SHA-256 of their URL.
func pageCacheKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "page_cache:" + hex.EncodeToString(sum[:])
}

// memoryCache is an in-memory L1 cache with TTL-based expiry.
type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryCacheEntry
	ttl     time.Duration
	clock   clockwork.Clock
}

type memoryCacheEntry struct {
	text      string
	expiresAt time.Time
}

func newMemoryCache(ttl time.Duration, clock clockwork.Clock) *memoryCache {
	return &memoryCache{
		entries: make(map[string]memoryCacheEntry),
		ttl:     ttl,
		clock:   clock,
	}
}

func (c *memoryCache) get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || c.clock.Now().After(entry.expiresAt) {
		return "", false
	}
	return entry.text, true
}

func (c *memoryCache) set(key, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryCacheEntry{
		text:      text,
		expiresAt: c.clock.Now().Add(c.ttl),
	}
}

func (c *memoryCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *memoryCache) evictExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	evicted := 0
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}
	return evicted
}
