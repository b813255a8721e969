package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Fetch   FetchConfig
	Browser BrowserConfig
	Probe   ProbeConfig
	Cache   CacheConfig
	Batch   BatchConfig
	Webhook WebhookConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// FetchConfig controls the snapshot fetch pipeline.
type FetchConfig struct {
	// Strategy selects the default fetch path: "auto" races the HTTP
	// engine against the browser, "http" and "browser" pin one engine.
	Strategy string // default: "auto"

	// NavigationTimeout is the max time for browser navigation alone.
	NavigationTimeout time.Duration // default: 15s

	// EscalationDelay is how long auto mode gives the HTTP engine
	// before starting the browser.
	EscalationDelay time.Duration // default: 2s

	// ScriptFetchLimit caps how many external script bodies are fetched
	// per page on the HTTP path.
	ScriptFetchLimit int // default: 10

	// ScriptMaxBytes caps the bytes read per external script.
	ScriptMaxBytes int64 // default: 512 KiB

	// DomainMemoryTTL is how long a needs-browser verdict for a domain
	// is remembered.
	DomainMemoryTTL time.Duration // default: 1h
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// PoolSize is the page pool capacity (max concurrent tabs).
	PoolSize int // default: 5

	// BlockResources lists CDP resource types to abort during page load
	// ("Image", "Media", "Font"). Scripts are never blocked: the
	// detection pipelines need them. Empty by default.
	BlockResources []string

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string
}

// ProbeConfig controls the robots.txt / sitemap.xml probes.
type ProbeConfig struct {
	// Timeout is the per-probe request deadline.
	Timeout time.Duration // default: 5s

	// Rate is the sustained probe rate per host, requests per second.
	Rate float64 // default: 2
}

// CacheConfig controls the report cache.
type CacheConfig struct {
	// Enabled toggles the cache; requests opt in per call.
	Enabled bool // default: true

	// TTL is how long a cached report stays fresh.
	TTL time.Duration // default: 15m

	// MaxEntries is the maximum number of cached reports.
	MaxEntries int // default: 1000
}

// BatchConfig controls batch analysis jobs.
type BatchConfig struct {
	// MaxURLs is the most URLs accepted in one batch.
	MaxURLs int // default: 10

	// Concurrency is the number of URLs analyzed in parallel per job.
	Concurrency int // default: 3

	// JobTTL is how long finished jobs stay queryable.
	JobTTL time.Duration // default: 1h
}

// WebhookConfig controls batch completion callbacks.
type WebhookConfig struct {
	// Timeout is the per-delivery request deadline.
	Timeout time.Duration // default: 10s

	// MaxRetries is how many times a failed delivery is retried.
	MaxRetries int // default: 3
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("HOST", "0.0.0.0"),
			Port: envIntOr("PORT", 8080),
			Mode: envOr("GIN_MODE", "release"),
		},
		Log: LogConfig{
			Level:  envOr("LOG_LEVEL", "info"),
			Format: envOr("LOG_FORMAT", "json"),
		},
		Fetch: FetchConfig{
			Strategy:          envOr("FETCH_STRATEGY", "auto"),
			NavigationTimeout: envDurationOr("NAV_TIMEOUT", 15*time.Second),
			EscalationDelay:   envDurationOr("ESCALATION_DELAY", 2*time.Second),
			ScriptFetchLimit:  envIntOr("SCRIPT_FETCH_LIMIT", 10),
			ScriptMaxBytes:    int64(envIntOr("SCRIPT_MAX_BYTES", 512*1024)),
			DomainMemoryTTL:   envDurationOr("DOMAIN_MEMORY_TTL", time.Hour),
		},
		Browser: BrowserConfig{
			Headless:       envBoolOr("BROWSER_HEADLESS", true),
			PoolSize:       envIntOr("BROWSER_POOL_SIZE", 5),
			BlockResources: envSliceOr("BLOCK_RESOURCES", nil),
			NoSandbox:      envBoolOr("BROWSER_NO_SANDBOX", false),
			BrowserBin:     os.Getenv("BROWSER_BIN"),
		},
		Probe: ProbeConfig{
			Timeout: envDurationOr("PROBE_TIMEOUT", 5*time.Second),
			Rate:    envFloatOr("PROBE_RATE", 2.0),
		},
		Cache: CacheConfig{
			Enabled:    envBoolOr("CACHE_ENABLED", true),
			TTL:        envDurationOr("CACHE_TTL", 15*time.Minute),
			MaxEntries: envIntOr("CACHE_MAX_ENTRIES", 1000),
		},
		Batch: BatchConfig{
			MaxURLs:     envIntOr("BATCH_MAX_URLS", 10),
			Concurrency: envIntOr("BATCH_CONCURRENCY", 3),
			JobTTL:      envDurationOr("BATCH_JOB_TTL", time.Hour),
		},
		Webhook: WebhookConfig{
			Timeout:    envDurationOr("WEBHOOK_TIMEOUT", 10*time.Second),
			MaxRetries: envIntOr("WEBHOOK_MAX_RETRIES", 3),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
