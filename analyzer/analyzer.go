// Package analyzer turns a fetched page snapshot into the full analysis
// report: page identity, meta data, the tech-stack and structured-data
// reports, fourteen supplemental sections and the cross-section summary.
//
// Analysis is a pure function of the snapshot and options: no network
// access, no clock reads, deterministic output for identical input. The
// robots.txt and sitemap probes are I/O and live in the probe package;
// the API layer attaches their results to ExternalResources afterwards.
package analyzer

import (
	"math"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/PuerkitoBio/goquery"

	"github.com/RickBillie-pixel/scraper/models"
	"github.com/RickBillie-pixel/scraper/structured"
	"github.com/RickBillie-pixel/scraper/techstack"
)

// Options tune a single analysis run.
type Options struct {
	// TopTechnologies caps the cms and framework categories of the tech
	// report to the K highest confidences; 0 keeps all.
	TopTechnologies int

	// MinConfidence excludes tech detections scoring below it.
	MinConfidence int

	// IncludeContent enables the readability main-content extraction,
	// the most expensive part of the content section.
	IncludeContent bool
}

// Analyzer runs the full report pipeline. The markdown converter is
// created once and reused across all requests (goroutine-safe).
type Analyzer struct {
	registry *techstack.Registry
	markdown *converter.Converter
}

// New initialises an Analyzer over a validated signature registry.
func New(registry *techstack.Registry) *Analyzer {
	return &Analyzer{
		registry: registry,
		markdown: newMarkdownConverter(),
	}
}

// page bundles the per-request inputs shared by the section extractors:
// the snapshot, the document parsed once, the base URL for resolving
// relative references, and the whitespace-collapsed visible text.
type page struct {
	snap *models.PageSnapshot
	doc  *goquery.Document
	base *url.URL
	text string
}

// Analyze builds the complete report for one snapshot. It errors only on
// a nil snapshot or an unusable registry; page content, however broken,
// degrades sections to their zero shapes instead of failing.
func (a *Analyzer) Analyze(snap *models.PageSnapshot, opts Options) (*models.AnalysisReport, error) {
	if snap == nil {
		return nil, models.NewAnalysisError(models.ErrCodeInvalidInput, "nil snapshot", nil)
	}

	// ── 1. Parse once, derive shared inputs ─────────────────────────
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snap.HTML))
	if err != nil {
		return nil, models.NewAnalysisError(models.ErrCodeInternal, "parsing document", err)
	}

	base, err := url.Parse(snap.FinalURL)
	if err != nil {
		base = &url.URL{}
	}

	text := strings.TrimSpace(snap.RenderedText)
	if text == "" {
		text = docText(doc)
	}
	p := &page{snap: snap, doc: doc, base: base, text: collapseWhitespace(text)}

	// ── 2. Core reports ─────────────────────────────────────────────
	sd, err := structured.Analyze(snap)
	if err != nil {
		return nil, err
	}

	ts, err := techstack.AnalyzeTechStack(snap, a.registry, techstack.Options{
		MinConfidence: opts.MinConfidence,
		TopK:          opts.TopTechnologies,
	})
	if err != nil {
		return nil, err
	}

	// ── 3. Supplemental sections ────────────────────────────────────
	report := &models.AnalysisReport{
		URL:        snap.URL,
		FinalURL:   snap.FinalURL,
		StatusCode: snap.StatusCode,
		FetchedAt:  snap.FetchedAt,

		PageInfo:       pageInfo(p),
		MetaData:       metaData(p),
		StructuredData: sd,
		TechStack:      ts,

		ContentAnalysis:       a.contentAnalysis(p, opts.IncludeContent),
		SEOAnalysis:           seoAnalysis(p),
		TechnicalAnalysis:     technicalAnalysis(p),
		LinksAnalysis:         linksAnalysis(p),
		ImagesAnalysis:        imagesAnalysis(p),
		FormsAnalysis:         formsAnalysis(p),
		BusinessInfo:          businessInfo(p),
		ContactInfo:           contactInfo(p),
		PageStructure:         pageStructure(p),
		ExternalResources:     externalResources(p),
		SecurityAnalysis:      securityAnalysis(p),
		PerformanceAnalysis:   performanceAnalysis(p),
		AccessibilityAnalysis: accessibilityAnalysis(p),
		MobileAnalysis:        mobileAnalysis(p),
	}

	// ── 4. Cross-section summary ────────────────────────────────────
	report.Summary = buildSummary(report)

	return report, nil
}

// --- shared helpers ---

// collapseWhitespace folds runs of whitespace into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// runeLen counts characters, not bytes.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// clip returns at most n characters of s.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// excerpt clips to n characters, appending an ellipsis when shortened.
func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// isExternalRef reports whether a src/href points off-document: absolute
// http(s) or protocol-relative.
func isExternalRef(ref string) bool {
	return strings.HasPrefix(ref, "http") || strings.HasPrefix(ref, "//")
}
