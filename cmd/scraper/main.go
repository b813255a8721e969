package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RickBillie-pixel/scraper/analyzer"
	"github.com/RickBillie-pixel/scraper/api"
	"github.com/RickBillie-pixel/scraper/api/handler"
	"github.com/RickBillie-pixel/scraper/browser"
	"github.com/RickBillie-pixel/scraper/cache"
	"github.com/RickBillie-pixel/scraper/config"
	"github.com/RickBillie-pixel/scraper/engine"
	"github.com/RickBillie-pixel/scraper/probe"
	"github.com/RickBillie-pixel/scraper/techstack"
	"github.com/RickBillie-pixel/scraper/webhook"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("scraper starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"strategy", cfg.Fetch.Strategy,
	)

	// ── 3. Compile the signature registry ───────────────────────────
	registry, err := techstack.NewDefaultRegistry()
	if err != nil {
		slog.Error("signature registry rejected", "error", err)
		os.Exit(1)
	}
	slog.Info("signature registry compiled",
		"signatures", registry.Len(),
		"version", registry.Version(),
	)

	// ── 4. Launch the browser engine ────────────────────────────────
	// A launch failure only kills the service when the strategy pins
	// the browser; auto degrades to http-only.
	var b *browser.Browser
	var browserEng engine.Engine
	if cfg.Fetch.Strategy != engine.StrategyHTTP {
		b, err = browser.New(cfg.Browser, cfg.Fetch)
		switch {
		case err == nil:
			browserEng = b
			defer b.Close()
		case cfg.Fetch.Strategy == engine.StrategyBrowser:
			slog.Error("browser engine required but failed to start", "error", err)
			os.Exit(1)
		default:
			slog.Warn("browser engine unavailable, continuing http-only", "error", err)
			b = nil
		}
	}

	// ── 5. Build the fetch dispatcher ───────────────────────────────
	httpEng := engine.NewHTTPEngine(cfg.Fetch)
	memory := engine.NewDomainMemory(cfg.Fetch.DomainMemoryTTL)
	defer memory.Stop()
	dispatcher := engine.NewDispatcher(httpEng, browserEng, memory, cfg.Fetch)

	// ── 6. Analysis pipeline and plumbing ───────────────────────────
	var cc *cache.Cache
	if cfg.Cache.Enabled {
		cc = cache.New(cfg.Cache)
		defer cc.Stop()
	}

	deps := handler.Deps{
		Dispatcher: dispatcher,
		Analyzer:   analyzer.New(registry),
		Prober:     probe.New(cfg.Probe.Timeout, cfg.Probe.Rate),
		Cache:      cc,
		Notifier:   webhook.NewNotifier(cfg.Webhook),
		Registry:   registry,
		Browser:    b,
		Config:     cfg,
		StartTime:  time.Now(),
	}

	// ── 7. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: api.NewRouter(deps),
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 8. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Give in-flight requests 5 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	// Deferred closes drain the tab pool and kill Chrome.
	slog.Info("scraper stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
