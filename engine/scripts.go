package engine

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"

	"github.com/RickBillie-pixel/scraper/models"
)

// Per-host politeness budget for script downloads.
const (
	scriptHostRate  rate.Limit = 8
	scriptHostBurst            = 4
)

// cdnHosts are third-party script origins worth downloading from: the
// bodies of library bundles served from these hosts carry strong
// technology evidence that the markup alone does not.
var cdnHosts = map[string]struct{}{
	"cdn.jsdelivr.net":         {},
	"cdnjs.cloudflare.com":     {},
	"unpkg.com":                {},
	"code.jquery.com":          {},
	"ajax.googleapis.com":      {},
	"cdn.shopify.com":          {},
	"static.parastorage.com":   {},
	"www.googletagmanager.com": {},
	"www.google-analytics.com": {},
	"connect.facebook.net":     {},
}

// scriptFetcher downloads external script bodies for the HTTP engine.
// It shares the engine's client so scripts carry the same TLS
// fingerprint as the document fetch.
type scriptFetcher struct {
	client   *http.Client
	limit    int
	maxBytes int64

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newScriptFetcher(client *http.Client, limit int, maxBytes int64) *scriptFetcher {
	return &scriptFetcher{
		client:   client,
		limit:    limit,
		maxBytes: maxBytes,
		limiters: make(map[string]*rate.Limiter),
	}
}

// fill downloads bodies for the external scripts in place, concurrently.
// Only same-site hosts and known CDN origins are fetched, at most limit
// of them; the rest keep their URL as evidence with an empty body.
func (f *scriptFetcher) fill(ctx context.Context, page *url.URL, scripts []models.Script) {
	var wg sync.WaitGroup
	started := 0
	for i := range scripts {
		sc := &scripts[i]
		if sc.Inline || sc.URL == "" {
			continue
		}
		u, err := url.Parse(sc.URL)
		if err != nil || !fetchableHost(page.Hostname(), u.Hostname()) {
			continue
		}
		if started == f.limit {
			break
		}
		started++
		wg.Add(1)
		go func(s *models.Script) {
			defer wg.Done()
			s.Content = f.download(ctx, s.URL)
		}(sc)
	}
	wg.Wait()
}

// fetchableHost decides whether a script host is worth a request: the
// page's own host, anything under the same registrable domain, or a
// known CDN origin.
func fetchableHost(pageHost, scriptHost string) bool {
	if strings.EqualFold(pageHost, scriptHost) {
		return true
	}
	if _, ok := cdnHosts[strings.ToLower(scriptHost)]; ok {
		return true
	}
	pageSite, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(pageHost))
	if err != nil {
		return false
	}
	scriptSite, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(scriptHost))
	if err != nil {
		return false
	}
	return pageSite == scriptSite
}

// download returns the script body, or "" on any failure. Script fetch
// problems never fail the page fetch.
func (f *scriptFetcher) download(ctx context.Context, rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	if err := f.limiter(u.Hostname()).Wait(ctx); err != nil {
		return ""
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", chromeUA)

	resp, err := f.client.Do(req)
	if err != nil {
		slog.Debug("script fetch failed", "url", rawURL, "error", err)
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		slog.Debug("script read failed", "url", rawURL, "error", err)
		return ""
	}
	return string(body)
}

func (f *scriptFetcher) limiter(host string) *rate.Limiter {
	f.mu.Lock()
	defer f.mu.Unlock()
	lim, ok := f.limiters[host]
	if !ok {
		lim = rate.NewLimiter(scriptHostRate, scriptHostBurst)
		f.limiters[host] = lim
	}
	return lim
}
