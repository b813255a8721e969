// Package browser is the headless-browser fetch engine. It renders
// pages in a pooled Chrome instance with stealth patches applied and
// captures the document response, rendered DOM, script bodies and
// navigation timing into page snapshots.
package browser

import (
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"

	"github.com/RickBillie-pixel/scraper/config"
	"github.com/RickBillie-pixel/scraper/models"
)

// Browser manages the Chrome process and the page pool. Safe for
// concurrent use; each fetch borrows one tab.
type Browser struct {
	browser        *rod.Browser
	launch         *launcher.Launcher
	pool           *pagePool
	blockedTypes   []string
	navTimeout     time.Duration
	scriptMaxBytes int64
	pid            int
	poolSize       int
}

// New launches a headless Chrome and prepares the page pool.
func New(cfg config.BrowserConfig, fetchCfg config.FetchConfig) (*Browser, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox)

	if cfg.BrowserBin != "" {
		l = l.Bin(cfg.BrowserBin)
	}

	// ── Stealth flags ────────────────────────────────────────────────
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
	l.Set(flags.Flag("disable-ipc-flooding-protection"))
	l.Set(flags.Flag("disable-popup-blocking"))
	l.Set(flags.Flag("disable-prompt-on-repost"))
	l.Set(flags.Flag("disable-renderer-backgrounding"))
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewAnalysisError(models.ErrCodeBrowserCrash, "failed to launch browser", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return nil, models.NewAnalysisError(models.ErrCodeBrowserCrash, "failed to connect to browser", err)
	}

	pid := l.PID()
	slog.Info("browser launched", "controlURL", controlURL, "pid", pid, "poolSize", cfg.PoolSize)

	return &Browser{
		browser:        b,
		launch:         l,
		pool:           newPagePool(b, cfg.PoolSize),
		blockedTypes:   cfg.BlockResources,
		navTimeout:     fetchCfg.NavigationTimeout,
		scriptMaxBytes: fetchCfg.ScriptMaxBytes,
		pid:            pid,
		poolSize:       cfg.PoolSize,
	}, nil
}

// Name implements the engine interface.
func (b *Browser) Name() string { return "browser" }

// Stats reports the pool's current occupancy.
func (b *Browser) Stats() models.PoolStats {
	return models.PoolStats{
		MaxPages:    b.poolSize,
		ActivePages: b.pool.activeCount(),
		BrowserPID:  b.pid,
	}
}

// Close drains the page pool and kills the Chrome process. Call on
// graceful shutdown to avoid orphaned browser processes.
func (b *Browser) Close() {
	slog.Info("browser shutting down: draining page pool")
	b.pool.close()
	if err := b.browser.Close(); err != nil {
		slog.Warn("browser close", "error", err)
	}
	b.launch.Kill()
	slog.Info("browser shutdown complete")
}
