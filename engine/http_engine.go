package engine

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	tls "github.com/refraction-networking/utls"

	"github.com/RickBillie-pixel/scraper/config"
	"github.com/RickBillie-pixel/scraper/models"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// maxDocumentBytes caps the document body read.
const maxDocumentBytes = 10 << 20

// HTTPEngine fetches pages with plain requests behind a Chrome TLS
// fingerprint. It is the fast path for server-rendered pages; pages
// that need JavaScript are reported via NeedsBrowserError so the
// dispatcher can escalate.
type HTTPEngine struct {
	client  *http.Client
	scripts *scriptFetcher
}

// chromeH1Spec is a Chrome ClientHello with ALPN forced to http/1.1
// only. Computed once at init time and reused for every connection.
var chromeH1Spec tls.ClientHelloSpec

func init() {
	spec, err := tls.UTLSIdToSpec(tls.HelloChrome_Auto)
	if err != nil {
		return
	}
	// Strip h2 from ALPN so the server never negotiates HTTP/2, which
	// Go's http.Transport cannot speak over a utls connection.
	for i, ext := range spec.Extensions {
		if alpn, ok := ext.(*tls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
			spec.Extensions[i] = alpn
			break
		}
	}
	chromeH1Spec = spec
}

// NewHTTPEngine creates the HTTP engine.
func NewHTTPEngine(cfg config.FetchConfig) *HTTPEngine {
	transport := &http.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			dialer := &net.Dialer{Timeout: 10 * time.Second}
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			host, _, _ := net.SplitHostPort(addr)
			tlsConn := tls.UClient(conn, &tls.Config{ServerName: host}, tls.HelloCustom)
			if err := tlsConn.ApplyPreset(&chromeH1Spec); err != nil {
				conn.Close()
				return nil, fmt.Errorf("apply tls spec: %w", err)
			}
			if err := tlsConn.HandshakeContext(ctx); err != nil {
				conn.Close()
				return nil, err
			}
			return tlsConn, nil
		},
		ForceAttemptHTTP2: false,
	}
	client := &http.Client{
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("stopped after 10 redirects")
			}
			return nil
		},
	}
	return &HTTPEngine{
		client:  client,
		scripts: newScriptFetcher(client, cfg.ScriptFetchLimit, cfg.ScriptMaxBytes),
	}
}

func (e *HTTPEngine) Name() string { return "http" }

// Fetch retrieves the document, derives its visible text, and collects
// the page's scripts. A JavaScript shell comes back as a
// NeedsBrowserError carrying the shell snapshot; error statuses and
// non-HTML responses are plain failures so the dispatcher can escalate.
func (e *HTTPEngine) Fetch(ctx context.Context, req *FetchRequest) (*models.PageSnapshot, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, models.NewAnalysisError(models.ErrCodeInvalidInput, "invalid URL", err)
	}
	setChromeHeaders(httpReq.Header)

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, models.NewAnalysisError(models.ErrCodeFetchFailed, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return nil, models.NewAnalysisError(models.ErrCodeFetchFailed, "read body", err)
	}

	// Error statuses and non-HTML bodies are failures here: sites that
	// block non-browser clients often serve the real page to the
	// browser engine.
	ct := resp.Header.Get("Content-Type")
	if resp.StatusCode >= 400 {
		return nil, models.NewAnalysisError(models.ErrCodeFetchFailed,
			fmt.Sprintf("status %d", resp.StatusCode), nil)
	}
	if !isHTMLContentType(ct) {
		return nil, models.NewAnalysisError(models.ErrCodeFetchFailed,
			fmt.Sprintf("unsupported content type %q", ct), nil)
	}

	doc := string(body)
	snap := &models.PageSnapshot{
		URL:          req.URL,
		FinalURL:     resp.Request.URL.String(),
		StatusCode:   resp.StatusCode,
		Headers:      resp.Header.Clone(),
		HTML:         doc,
		RenderedText: visibleText(doc),
		Engine:       e.Name(),
		FetchedAt:    time.Now(),
	}

	finalURL, _ := url.Parse(snap.FinalURL)
	for _, tag := range documentScripts(doc) {
		if tag.src == "" {
			snap.Scripts = append(snap.Scripts, models.Script{Inline: true, Content: tag.body})
			continue
		}
		resolved := tag.src
		if finalURL != nil {
			if u, err := finalURL.Parse(tag.src); err == nil {
				resolved = u.String()
			}
		}
		snap.Scripts = append(snap.Scripts, models.Script{URL: resolved})
	}

	// Shells skip the external body downloads: the browser engine will
	// recapture everything, and the inline bootstrap scripts already
	// carry the framework evidence a fallback analysis needs.
	if needsBrowser(doc, snap.RenderedText) {
		return nil, &NeedsBrowserError{Snapshot: snap}
	}

	if req.FetchScripts && finalURL != nil {
		e.scripts.fill(ctx, finalURL, snap.Scripts)
	}
	return snap, nil
}

// setChromeHeaders mirrors the headers Chrome sends on a top-level
// navigation, matching the TLS-level disguise.
func setChromeHeaders(h http.Header) {
	h.Set("User-Agent", chromeUA)
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	h.Set("Accept-Language", "en-US,en;q=0.9")
	h.Set("Accept-Encoding", "gzip, br")
	h.Set("Upgrade-Insecure-Requests", "1")
}

// readBody decompresses and reads the response body, capped at
// maxDocumentBytes. Setting Accept-Encoding by hand disables the
// transport's transparent gzip, so decoding is on us.
func readBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body
	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	case "br":
		r = brotli.NewReader(resp.Body)
	}
	return io.ReadAll(io.LimitReader(r, maxDocumentBytes))
}

// isHTMLContentType reports whether the content-type header looks like HTML.
func isHTMLContentType(ct string) bool {
	ct = strings.ToLower(ct)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml+xml")
}
