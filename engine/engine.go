// Package engine turns URLs into page snapshots. Two engines exist: a
// fast HTTP path with a Chrome TLS fingerprint, and a headless-browser
// path for pages that only render under JavaScript. The Dispatcher
// decides which to run and when to escalate from one to the other.
package engine

import (
	"context"
	"time"

	"github.com/RickBillie-pixel/scraper/models"
)

// Fetch strategies understood by the dispatcher.
const (
	// StrategyAuto starts the HTTP engine and escalates to the browser
	// when the page turns out to be a JavaScript shell or the HTTP
	// attempt is slow or fails.
	StrategyAuto = "auto"

	// StrategyHTTP pins the HTTP engine. JavaScript shells are returned
	// as-is rather than escalated.
	StrategyHTTP = "http"

	// StrategyBrowser pins the browser engine.
	StrategyBrowser = "browser"
)

// Engine is one way of turning a URL into a page snapshot.
type Engine interface {
	// Name returns the engine identifier, "http" or "browser".
	Name() string

	// Fetch retrieves and renders the page. The context carries the
	// overall deadline for the fetch.
	Fetch(ctx context.Context, req *FetchRequest) (*models.PageSnapshot, error)
}

// FetchRequest carries everything an engine needs for one fetch.
type FetchRequest struct {
	// URL is the page to fetch. Must be absolute http or https.
	URL string

	// Mode overrides the dispatcher's default strategy for this request.
	// Empty means use the default.
	Mode string

	// Timeout bounds the whole fetch, rendering and script capture
	// included. The dispatcher enforces it; engines just honor ctx.
	Timeout time.Duration

	// FetchScripts controls whether the HTTP engine downloads external
	// script bodies. The browser engine captures bodies regardless,
	// since they arrive over the wire anyway.
	FetchScripts bool
}

// NeedsBrowserError reports that the fetched markup is a JavaScript
// shell the HTTP path cannot render. Snapshot carries the shell capture
// so auto mode can keep it as a last-resort fallback when the browser
// is unavailable or fails.
type NeedsBrowserError struct {
	Snapshot *models.PageSnapshot
}

func (e *NeedsBrowserError) Error() string {
	return "page requires JavaScript rendering"
}
