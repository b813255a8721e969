package models

import (
	"net/http"
	"sort"
	"strings"
	"time"
)

// PageSnapshot is the immutable capture of one fetched, rendered page.
// It is produced by a fetch engine and consumed read-only by the analysis
// pipelines; nothing downstream may mutate it.
type PageSnapshot struct {
	// URL is the originally requested URL.
	URL string

	// FinalURL is the URL after following all redirects.
	FinalURL string

	// StatusCode is the HTTP status of the document response.
	StatusCode int

	// Headers are the document response headers. http.Header canonicalizes
	// names, so lookups via Header() are case-insensitive.
	Headers http.Header

	// HTML is the raw (post-render when a browser was used) document markup.
	HTML string

	// RenderedText is the visible text content of the rendered DOM.
	RenderedText string

	// Scripts holds every script that executed on the page: inline blocks
	// plus the bodies of external scripts the fetcher captured.
	Scripts []Script

	// Timing carries navigation timing when the browser engine produced
	// the snapshot; nil for plain HTTP fetches.
	Timing *PerfTiming

	// Engine names the fetch engine that produced the snapshot
	// ("http" or "browser").
	Engine string

	// FetchedAt is when the snapshot was taken.
	FetchedAt time.Time
}

// Script is one script source attached to a snapshot.
type Script struct {
	// URL is the script's resolved source URL; empty for inline scripts.
	URL string

	// Inline is true for <script> blocks without a src attribute.
	Inline bool

	// Content is the script text. May be empty if the body could not be
	// captured (the URL is still useful evidence).
	Content string
}

// Header returns the value of the named response header, case-insensitively.
func (s *PageSnapshot) Header(name string) string {
	if s.Headers == nil {
		return ""
	}
	return s.Headers.Get(name)
}

// HasHeader reports whether the named response header is present.
func (s *PageSnapshot) HasHeader(name string) bool {
	if s.Headers == nil {
		return false
	}
	_, ok := s.Headers[http.CanonicalHeaderKey(name)]
	return ok
}

// ScriptText returns the concatenation of all script contents, newline
// separated. Built fresh on each call so the snapshot stays read-only.
func (s *PageSnapshot) ScriptText() string {
	if len(s.Scripts) == 0 {
		return ""
	}
	var b strings.Builder
	for i, sc := range s.Scripts {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(sc.Content)
	}
	return b.String()
}

// HeaderLines returns the headers flattened to sorted "Name: value" lines,
// one per value. Used for pattern matching across all headers.
func (s *PageSnapshot) HeaderLines() string {
	if len(s.Headers) == 0 {
		return ""
	}
	keys := make([]string, 0, len(s.Headers))
	for k := range s.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		for _, v := range s.Headers[k] {
			b.WriteString(k)
			b.WriteString(": ")
			b.WriteString(v)
			b.WriteByte('\n')
		}
	}
	return b.String()
}
