package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/RickBillie-pixel/scraper/config"
	"github.com/RickBillie-pixel/scraper/models"
)

// Dispatcher coordinates the two engines. In auto mode the HTTP engine
// gets a head start; the browser joins after the escalation delay, or
// immediately when the HTTP attempt fails or yields a JavaScript shell.
// The first clean snapshot wins. Domains that needed the browser are
// remembered so their next fetch skips the doomed HTTP attempt.
type Dispatcher struct {
	http       Engine
	browser    Engine // nil when no browser is available
	memory     *DomainMemory
	strategy   string
	escalation time.Duration
}

// NewDispatcher wires the engines together. browser may be nil, in
// which case every fetch is HTTP-only best effort and shells are
// returned as-is.
func NewDispatcher(httpEng, browserEng Engine, memory *DomainMemory, cfg config.FetchConfig) *Dispatcher {
	return &Dispatcher{
		http:       httpEng,
		browser:    browserEng,
		memory:     memory,
		strategy:   cfg.Strategy,
		escalation: cfg.EscalationDelay,
	}
}

// defaultFetchTimeout applies when a request carries none.
const defaultFetchTimeout = 45 * time.Second

// Fetch resolves the request's strategy and runs it under the request
// timeout. Deadline overruns come back as FETCH_TIMEOUT regardless of
// which engine was in flight.
func (d *Dispatcher) Fetch(ctx context.Context, req *FetchRequest) (*models.PageSnapshot, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	mode := req.Mode
	if mode == "" {
		mode = d.strategy
	}

	var snap *models.PageSnapshot
	var err error
	switch mode {
	case StrategyHTTP:
		snap, err = d.httpOnly(ctx, req)
	case StrategyBrowser:
		snap, err = d.browserOnly(ctx, req)
	default:
		snap, err = d.race(ctx, req)
	}
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, models.NewAnalysisError(models.ErrCodeFetchTimeout,
				fmt.Sprintf("fetch did not finish within %s", timeout), err)
		}
		return nil, err
	}
	return snap, nil
}

// httpOnly never escalates. A JavaScript shell is still a result: the
// caller pinned the engine, so they get whatever the server returned.
func (d *Dispatcher) httpOnly(ctx context.Context, req *FetchRequest) (*models.PageSnapshot, error) {
	snap, err := d.http.Fetch(ctx, req)
	var shell *NeedsBrowserError
	if errors.As(err, &shell) {
		slog.Debug("pinned http mode returning javascript shell", "url", req.URL)
		return shell.Snapshot, nil
	}
	return snap, err
}

func (d *Dispatcher) browserOnly(ctx context.Context, req *FetchRequest) (*models.PageSnapshot, error) {
	if d.browser == nil {
		return nil, models.NewAnalysisError(models.ErrCodeBrowserCrash, "browser engine unavailable", nil)
	}
	return d.browser.Fetch(ctx, req)
}

// raceOutcome is one engine's verdict inside the auto-mode race.
type raceOutcome struct {
	snap *models.PageSnapshot
	err  error
}

// race implements auto mode for one request.
func (d *Dispatcher) race(ctx context.Context, req *FetchRequest) (*models.PageSnapshot, error) {
	if d.browser == nil {
		return d.httpOnly(ctx, req)
	}

	domain := domainOf(req.URL)
	if d.memory.Get(domain) == StrategyBrowser {
		slog.Debug("domain memory: skipping http attempt", "domain", domain)
		snap, err := d.browser.Fetch(ctx, req)
		if err == nil {
			return snap, nil
		}
		d.memory.Delete(domain)
		slog.Info("remembered engine failed, racing both",
			"domain", domain, "error", err)
	}

	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	httpCh := make(chan raceOutcome, 1)
	browserCh := make(chan raceOutcome, 1)
	go func() {
		snap, err := d.http.Fetch(raceCtx, req)
		httpCh <- raceOutcome{snap, err}
	}()

	// The shell capture survives as a last resort if the browser dies.
	var fallback *models.PageSnapshot
	var httpErr, browserErr error
	httpOpen, browserOpen := true, false

	browserStarted := false
	startBrowser := func() {
		if browserStarted {
			return
		}
		browserStarted = true
		browserOpen = true
		slog.Debug("escalating to browser engine", "url", req.URL)
		go func() {
			snap, err := d.browser.Fetch(raceCtx, req)
			browserCh <- raceOutcome{snap, err}
		}()
	}

	escalate := time.NewTimer(d.escalation)
	defer escalate.Stop()

	for httpOpen || browserOpen {
		select {
		case out := <-httpCh:
			httpOpen = false
			if out.err == nil {
				d.memory.Set(domain, StrategyHTTP)
				return out.snap, nil
			}
			var shell *NeedsBrowserError
			if errors.As(out.err, &shell) {
				fallback = shell.Snapshot
			} else {
				httpErr = out.err
			}
			startBrowser()
		case out := <-browserCh:
			browserOpen = false
			if out.err == nil {
				d.memory.Set(domain, StrategyBrowser)
				return out.snap, nil
			}
			browserErr = out.err
		case <-escalate.C:
			startBrowser()
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if fallback != nil {
		slog.Warn("browser render failed, keeping static shell capture",
			"url", req.URL, "error", browserErr)
		return fallback, nil
	}
	if browserErr != nil {
		return nil, browserErr
	}
	return nil, httpErr
}

// domainOf parses the hostname out of a URL string.
func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Hostname()
}
