package browser

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/RickBillie-pixel/scraper/engine"
	"github.com/RickBillie-pixel/scraper/models"
)

// domStableWindow is how long the DOM must stay quiet before the page
// counts as rendered.
const domStableWindow = 300 * time.Millisecond

// Fetch renders the page in a pooled tab and captures the snapshot.
//
// Lifecycle (numbered steps match the inline comments):
//
//  1. Acquire tab           – borrow from the pool, health-tracked
//  2. DEFER: cleanup        – about:blank + pool return (leak prevention)
//  3. Stealth injection     – mask navigator.webdriver etc. (before navigation!)
//  4. Referer + blocking    – Google referer, optional resource blocks
//  5. Capture listener      – network events MUST be subscribed before
//     Navigate or the document response is missed
//  6. Navigate              – triggers the page load
//  7. Wait                  – DOM stable inside the navigation timeout
//  8. Extract               – HTML, text, scripts, headers, timing
func (b *Browser) Fetch(ctx context.Context, req *engine.FetchRequest) (*models.PageSnapshot, error) {
	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// ── 1. Acquire tab from pool ─────────────────────────────────────
	handle, err := b.pool.get(fetchCtx)
	if err != nil {
		return nil, models.NewAnalysisError(models.ErrCodeBrowserCrash, "failed to acquire browser tab", err)
	}

	// ── 2. CRITICAL DEFER: reset tab and guarantee pool return ───────
	// about:blank uses the original page reference, not the context-bound
	// one, so cleanup still works after the request context has expired.
	ok := false
	defer func() {
		if navErr := handle.page.Navigate("about:blank"); navErr != nil {
			slog.Warn("cleanup: failed to reset tab", "error", navErr)
		}
		b.pool.put(handle, ok)
	}()

	// ── 3. Stealth injection, once per tab lifetime ──────────────────
	if !handle.stealthed {
		if _, evalErr := handle.page.EvalOnNewDocument(stealth.JS); evalErr != nil {
			slog.Warn("stealth injection failed, proceeding without", "error", evalErr)
		} else {
			handle.stealthed = true
		}
	}

	p := handle.page.Context(fetchCtx)

	// ── 4. Referer disguise and resource blocking ────────────────────
	if u, parseErr := url.Parse(req.URL); parseErr == nil {
		_ = proto.NetworkSetExtraHTTPHeaders{
			Headers: toHeadersMap(map[string]string{
				"Referer": "https://www.google.com/search?q=" + url.QueryEscape(u.Hostname()),
			}),
		}.Call(p)
	}
	applyResourceBlocks(p, b.blockedTypes)

	// ── 5. Subscribe the capture listener BEFORE navigation ──────────
	capture := &networkCapture{}
	go capture.listen(p)()

	// ── 6. Navigate ──────────────────────────────────────────────────
	navCtx, navCancel := context.WithTimeout(fetchCtx, b.navTimeout)
	defer navCancel()
	nav := handle.page.Context(navCtx)
	if navErr := nav.Navigate(req.URL); navErr != nil {
		return nil, categorizeError(navErr, "navigation to target URL failed")
	}

	// ── 7. Wait for the DOM to settle ────────────────────────────────
	if stableErr := nav.WaitDOMStable(domStableWindow, 0.1); stableErr != nil {
		slog.Debug("DOM did not converge, proceeding with current state", "error", stableErr)
	}

	// ── 8. Extract the snapshot ──────────────────────────────────────
	html, htmlErr := p.HTML()
	if htmlErr != nil {
		return nil, categorizeError(htmlErr, "failed to extract rendered markup")
	}

	status := capture.documentStatus()
	if status == 0 {
		status = perfStatus(p)
	}

	finalURL := evalStringOrEmpty(p, `() => window.location.href`)
	if finalURL == "" {
		finalURL = req.URL
	}

	snap := &models.PageSnapshot{
		URL:          req.URL,
		FinalURL:     finalURL,
		StatusCode:   status,
		Headers:      capture.documentHeader(),
		HTML:         html,
		RenderedText: evalStringOrEmpty(p, `() => document.body ? document.body.innerText : ""`),
		Scripts:      collectScripts(p, capture.scriptBodies(p, b.scriptMaxBytes)),
		Timing:       collectTiming(p),
		Engine:       b.Name(),
		FetchedAt:    time.Now(),
	}
	ok = true
	return snap, nil
}

// evalStringOrEmpty evaluates a JS expression and returns its string
// result, swallowing errors. For best-effort metadata only.
func evalStringOrEmpty(p *rod.Page, js string) string {
	res, err := p.Eval(js)
	if err != nil {
		return ""
	}
	return res.Value.Str()
}

// categorizeError wraps raw rod errors into typed analysis errors so
// the API layer can map them to HTTP statuses.
func categorizeError(err error, msg string) *models.AnalysisError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewAnalysisError(models.ErrCodeNavigation, "navigation timed out", err)
	case errors.Is(err, context.Canceled):
		return models.NewAnalysisError(models.ErrCodeNavigation, "navigation canceled", err)
	default:
		return models.NewAnalysisError(models.ErrCodeNavigation, msg, err)
	}
}
