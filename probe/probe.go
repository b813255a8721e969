// Package probe checks a site's well-known files: robots.txt and
// sitemap.xml. Probes are courteous (per-host rate limit, small read
// caps) and never fail an analysis; a missing or broken file degrades
// to an exists=false result.
package probe

import (
	"context"
	"encoding/xml"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/RickBillie-pixel/scraper/models"
)

// maxProbeBytes caps how much of a probed body is read. Sitemaps larger
// than this still report exists=true, but their entry count may be lost
// to XML truncation.
const maxProbeBytes = 64 * 1024

const probeUA = "scraper-probe/1.0"

// Prober fetches robots.txt and sitemap.xml for a page's origin.
type Prober struct {
	client  *http.Client
	timeout time.Duration

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
}

// New creates a Prober. timeout bounds each probe request; perHostRate
// is the sustained requests per second allowed against one host. The
// limiter burst is 2 so the robots+sitemap pair of a single analysis
// never waits on itself.
func New(timeout time.Duration, perHostRate float64) *Prober {
	return &Prober{
		client:   &http.Client{Timeout: timeout},
		timeout:  timeout,
		limiters: map[string]*rate.Limiter{},
		rate:     rate.Limit(perHostRate),
	}
}

// Site probes both well-known files for the page's origin, in parallel.
// Returns nil results when the page URL has no probeable origin.
func (p *Prober) Site(ctx context.Context, pageURL string) (*models.RobotsTxtInfo, *models.SitemapInfo) {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, nil
	}
	origin := u.Scheme + "://" + u.Host

	var (
		wg      sync.WaitGroup
		robots  *models.RobotsTxtInfo
		sitemap *models.SitemapInfo
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		robots = p.robots(ctx, origin)
	}()
	go func() {
		defer wg.Done()
		sitemap = p.sitemap(ctx, origin)
	}()
	wg.Wait()

	return robots, sitemap
}

// robots fetches /robots.txt and collects its Sitemap: directives.
func (p *Prober) robots(ctx context.Context, origin string) *models.RobotsTxtInfo {
	resp, body, err := p.get(ctx, origin+"/robots.txt")
	if err != nil {
		slog.Debug("robots probe failed", "origin", origin, "error", err)
		return &models.RobotsTxtInfo{}
	}

	info := &models.RobotsTxtInfo{StatusCode: resp.StatusCode}
	if resp.StatusCode != http.StatusOK {
		return info
	}
	info.Exists = true
	info.Size = len(body)
	info.Sitemaps = sitemapDirectives(string(body))
	return info
}

// sitemapXML matches both urlset and sitemapindex documents; only the
// root element name and the entry count matter here.
type sitemapXML struct {
	XMLName  xml.Name
	URLs     []struct{} `xml:"url"`
	Sitemaps []struct{} `xml:"sitemap"`
}

// sitemap fetches /sitemap.xml and counts its entries.
func (p *Prober) sitemap(ctx context.Context, origin string) *models.SitemapInfo {
	resp, body, err := p.get(ctx, origin+"/sitemap.xml")
	if err != nil {
		slog.Debug("sitemap probe failed", "origin", origin, "error", err)
		return &models.SitemapInfo{}
	}

	info := &models.SitemapInfo{StatusCode: resp.StatusCode}
	if resp.StatusCode != http.StatusOK {
		return info
	}
	info.Exists = true
	info.Size = len(body)
	info.ContentType = resp.Header.Get("Content-Type")

	var doc sitemapXML
	if err := xml.Unmarshal(body, &doc); err != nil {
		// Malformed or truncated XML still proves the file exists.
		slog.Debug("sitemap parse failed", "origin", origin, "error", err)
		return info
	}
	info.IsIndex = doc.XMLName.Local == "sitemapindex"
	if info.IsIndex {
		info.URLCount = len(doc.Sitemaps)
	} else {
		info.URLCount = len(doc.URLs)
	}
	return info
}

// get performs one rate-limited GET, reading at most maxProbeBytes.
func (p *Prober) get(ctx context.Context, rawURL string) (*http.Response, []byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, nil, err
	}
	if err := p.limiter(u.Host).Wait(ctx); err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("User-Agent", probeUA)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProbeBytes))
	if err != nil {
		return nil, nil, err
	}
	return resp, body, nil
}

// limiter returns the per-host limiter, creating it on first use.
func (p *Prober) limiter(host string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.limiters[host]
	if !ok {
		l = rate.NewLimiter(p.rate, 2)
		p.limiters[host] = l
	}
	return l
}

// sitemapDirectives extracts the URLs of Sitemap: lines, in file order.
func sitemapDirectives(body string) []string {
	var refs []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 8 || !strings.EqualFold(line[:8], "sitemap:") {
			continue
		}
		if ref := strings.TrimSpace(line[8:]); ref != "" {
			refs = append(refs, ref)
		}
	}
	return refs
}
