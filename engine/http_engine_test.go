package engine

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/andybalholm/brotli"

	"github.com/RickBillie-pixel/scraper/config"
	"github.com/RickBillie-pixel/scraper/models"
)

const staticPage = `<!DOCTYPE html>
<html><head><title>Static</title></head>
<body>
<h1>Delivery schedules</h1>
<p>Orders placed before noon ship the same day from our Rotterdam warehouse. Orders placed later ship the next morning. Saturday deliveries cover the Randstad only, and public holidays push every schedule back by one working day.</p>
<script src="/js/app.js"></script>
<script>window.__bootstrap = {"locale": "nl"};</script>
</body></html>`

func newTestEngine() *HTTPEngine {
	return NewHTTPEngine(config.FetchConfig{ScriptFetchLimit: 5, ScriptMaxBytes: 64 << 10})
}

func TestHTTPEngineFetch(t *testing.T) {
	var acceptEncoding atomic.Value
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/page", http.StatusFound)
	})
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		acceptEncoding.Store(r.Header.Get("Accept-Encoding"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Server", "nginx/1.24")
		w.Write([]byte(staticPage))
	})
	mux.HandleFunc("/js/app.js", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("console.log('app');"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	eng := newTestEngine()
	snap, err := eng.Fetch(context.Background(), &FetchRequest{URL: server.URL + "/start", FetchScripts: true})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if snap.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d", snap.StatusCode)
	}
	if snap.URL != server.URL+"/start" {
		t.Errorf("URL = %q", snap.URL)
	}
	if snap.FinalURL != server.URL+"/page" {
		t.Errorf("FinalURL = %q, want redirect target", snap.FinalURL)
	}
	if got := snap.Header("Server"); got != "nginx/1.24" {
		t.Errorf("Server header = %q", got)
	}
	if !strings.Contains(snap.HTML, "<h1>Delivery schedules</h1>") {
		t.Error("HTML missing document markup")
	}
	if !strings.Contains(snap.RenderedText, "Rotterdam warehouse") {
		t.Errorf("RenderedText missing paragraph text: %q", snap.RenderedText)
	}
	if strings.Contains(snap.RenderedText, "__bootstrap") {
		t.Error("RenderedText leaked script content")
	}
	if snap.Timing != nil {
		t.Error("Timing should be nil for http fetches")
	}
	if snap.Engine != "http" {
		t.Errorf("Engine = %q, want http", snap.Engine)
	}
	if snap.FetchedAt.IsZero() {
		t.Error("FetchedAt not set")
	}
	if got := acceptEncoding.Load(); got != "gzip, br" {
		t.Errorf("Accept-Encoding = %v", got)
	}

	if len(snap.Scripts) != 2 {
		t.Fatalf("got %d scripts, want 2: %+v", len(snap.Scripts), snap.Scripts)
	}
	ext := snap.Scripts[0]
	if ext.Inline || ext.URL != server.URL+"/js/app.js" {
		t.Errorf("external script = %+v", ext)
	}
	if ext.Content != "console.log('app');" {
		t.Errorf("external script body = %q", ext.Content)
	}
	inline := snap.Scripts[1]
	if !inline.Inline || !strings.Contains(inline.Content, "__bootstrap") {
		t.Errorf("inline script = %+v", inline)
	}
}

func TestHTTPEngineFetch_Gzip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		gz.Write([]byte(staticPage))
		gz.Close()
		w.Header().Set("Content-Type", "text/html")
		w.Header().Set("Content-Encoding", "gzip")
		w.Write(buf.Bytes())
	}))
	defer server.Close()

	snap, err := newTestEngine().Fetch(context.Background(), &FetchRequest{URL: server.URL})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.Contains(snap.HTML, "Delivery schedules") {
		t.Error("gzip body not decoded")
	}
	// FetchScripts was false: external bodies stay empty, URLs remain.
	if len(snap.Scripts) != 2 || snap.Scripts[0].Content != "" {
		t.Errorf("scripts = %+v", snap.Scripts)
	}
}

func TestHTTPEngineFetch_Brotli(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		br := brotli.NewWriter(&buf)
		br.Write([]byte(staticPage))
		br.Close()
		w.Header().Set("Content-Type", "text/html")
		w.Header().Set("Content-Encoding", "br")
		w.Write(buf.Bytes())
	}))
	defer server.Close()

	snap, err := newTestEngine().Fetch(context.Background(), &FetchRequest{URL: server.URL})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.Contains(snap.HTML, "Delivery schedules") {
		t.Error("brotli body not decoded")
	}
}

func TestHTTPEngineFetch_Shell(t *testing.T) {
	var bundleHits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html><html><body><div id="root"></div><script src="/js/bundle.js"></script><script>window.__PRELOADED__ = {};</script></body></html>`))
	})
	mux.HandleFunc("/js/bundle.js", func(w http.ResponseWriter, r *http.Request) {
		bundleHits.Add(1)
		w.Write([]byte("bundle"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	_, err := newTestEngine().Fetch(context.Background(), &FetchRequest{URL: server.URL, FetchScripts: true})
	var shell *NeedsBrowserError
	if !errors.As(err, &shell) {
		t.Fatalf("err = %v, want NeedsBrowserError", err)
	}
	if shell.Snapshot == nil || !strings.Contains(shell.Snapshot.HTML, `id="root"`) {
		t.Fatal("shell snapshot missing markup")
	}
	// Shell detection short-circuits external downloads; inline evidence
	// is still captured.
	if bundleHits.Load() != 0 {
		t.Errorf("bundle fetched %d times for a shell page", bundleHits.Load())
	}
	foundInline := false
	for _, sc := range shell.Snapshot.Scripts {
		if sc.Inline && strings.Contains(sc.Content, "__PRELOADED__") {
			foundInline = true
		}
		if !sc.Inline && sc.Content != "" {
			t.Errorf("external body downloaded for shell: %+v", sc)
		}
	}
	if !foundInline {
		t.Error("inline bootstrap script not captured")
	}
}

func TestHTTPEngineFetch_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestEngine().Fetch(context.Background(), &FetchRequest{URL: server.URL})
	var ae *models.AnalysisError
	if !errors.As(err, &ae) || ae.Code != models.ErrCodeFetchFailed {
		t.Fatalf("err = %v, want FETCH_FAILED", err)
	}
}

func TestHTTPEngineFetch_NonHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	_, err := newTestEngine().Fetch(context.Background(), &FetchRequest{URL: server.URL})
	var ae *models.AnalysisError
	if !errors.As(err, &ae) || ae.Code != models.ErrCodeFetchFailed {
		t.Fatalf("err = %v, want FETCH_FAILED", err)
	}
}

func TestHTTPEngineFetch_BadURL(t *testing.T) {
	_, err := newTestEngine().Fetch(context.Background(), &FetchRequest{URL: "://not-a-url"})
	var ae *models.AnalysisError
	if !errors.As(err, &ae) || ae.Code != models.ErrCodeInvalidInput {
		t.Fatalf("err = %v, want INVALID_INPUT", err)
	}
}
