// Package cache holds recently built analysis reports so repeat requests
// for the same URL and options skip the fetch and analysis phases.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/RickBillie-pixel/scraper/config"
	"github.com/RickBillie-pixel/scraper/models"
)

// janitorInterval is how often expired entries are swept out.
const janitorInterval = 5 * time.Minute

// entry holds a cached response with its creation timestamp.
type entry struct {
	response  *models.AnalyzeResponse
	createdAt time.Time
}

// Cache is an in-memory TTL cache for analysis responses.
// It is safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	store      map[string]*entry
	maxEntries int
	ttl        time.Duration

	hits   atomic.Int64
	misses atomic.Int64

	done chan struct{}
}

// New creates a Cache sized and aged per cfg. A background janitor evicts
// expired entries until Stop is called.
func New(cfg config.CacheConfig) *Cache {
	c := &Cache{
		store:      make(map[string]*entry),
		maxEntries: cfg.MaxEntries,
		ttl:        cfg.TTL,
		done:       make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Key derives the cache key from the URL and every request option that
// changes the report's content. Timeout is excluded: it bounds the fetch,
// it does not shape the result.
func Key(url string, req *models.AnalyzeRequest) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%v|%d|%d|%v|%v",
		url,
		req.FetchMode,
		req.FetchScripts != nil && *req.FetchScripts,
		req.TopTechnologies,
		req.MinConfidence,
		req.IncludeContent != nil && *req.IncludeContent,
		req.Probe != nil && *req.Probe,
	)
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns a fresh cached response for key. The returned value is a
// shallow copy: callers overwrite CacheStatus and Timing per request, and
// the shared Report pointer is read-only after build.
func (c *Cache) Get(key string) (*models.AnalyzeResponse, bool) {
	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()

	if !ok || time.Since(e.createdAt) > c.ttl {
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	cp := *e.response
	return &cp, true
}

// Set stores a response. At capacity one arbitrary entry is evicted first
// (map iteration order is random in Go).
func (c *Cache) Set(key string, resp *models.AnalyzeResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.store) >= c.maxEntries {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}

	c.store[key] = &entry{
		response:  resp,
		createdAt: time.Now(),
	}
}

// Stats reports current size and hit/miss counters.
func (c *Cache) Stats() models.CacheStats {
	c.mu.RLock()
	entries := len(c.store)
	c.mu.RUnlock()

	return models.CacheStats{
		Entries: entries,
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}

// Stop terminates the janitor goroutine.
func (c *Cache) Stop() {
	close(c.done)
}

func (c *Cache) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-c.ttl)
			c.mu.Lock()
			for k, e := range c.store {
				if e.createdAt.Before(cutoff) {
					delete(c.store, k)
				}
			}
			c.mu.Unlock()
		case <-c.done:
			return
		}
	}
}
