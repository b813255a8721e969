// Package techstack detects the technologies powering a page through
// signature-based evidence matching: an immutable registry of per-layer
// patterns is scanned against a snapshot's headers, markup and scripts,
// evidence is aggregated into bounded confidence scores, and the results
// are classified into a category-partitioned report.
package techstack

import (
	"fmt"
	"regexp"

	"github.com/RickBillie-pixel/scraper/models"
)

// Category partitions signatures. The set is closed; NewRegistry rejects
// anything else.
type Category string

const (
	CategoryCMS          Category = "cms"
	CategoryFramework    Category = "framework"
	CategoryCSSFramework Category = "css_framework"
	CategoryAnalytics    Category = "analytics"
	CategorySEO          Category = "seo"
	CategoryLibrary      Category = "library"
	CategoryCDN          Category = "cdn"
	CategorySecurity     Category = "security"
	CategoryPerformance  Category = "performance"
)

var validCategories = map[Category]bool{
	CategoryCMS:          true,
	CategoryFramework:    true,
	CategoryCSSFramework: true,
	CategoryAnalytics:    true,
	CategorySEO:          true,
	CategoryLibrary:      true,
	CategoryCDN:          true,
	CategorySecurity:     true,
	CategoryPerformance:  true,
}

// HeaderRule tests one response header's value against a pattern.
type HeaderRule struct {
	Header  string // header name, matched case-insensitively
	Pattern string // regex over the header value
}

// Indicator is a confirmation pattern carrying its own weight. Indicators
// raise confidence for a technology already suggested by other layers
// (a generator meta tag, a vendor-specific attribute) and are tagged as
// the meta layer in evidence.
type Indicator struct {
	Pattern string
	Weight  int
}

// Signature describes how one technology is detected across layers.
// Pattern sets may be empty, but a signature must declare at least one
// pattern somewhere.
type Signature struct {
	Name     string
	Category Category

	// Headers are header-name→pattern rules.
	Headers []HeaderRule

	// HTML patterns run against the raw body and the rendered text.
	HTML []string

	// Scripts patterns run against the concatenated script contents.
	Scripts []string

	// Indicators are high-weight confirmation patterns (meta layer).
	Indicators []Indicator

	// Versions are capture patterns tried in declared order; the first
	// non-empty captured group becomes the detected version.
	Versions []string
}

type compiledHeaderRule struct {
	header  string
	pattern string // identity string, "Name~pattern"
	re      *regexp.Regexp
}

type compiledPattern struct {
	pattern string
	re      *regexp.Regexp
}

type compiledIndicator struct {
	pattern string
	weight  int
	re      *regexp.Regexp
}

type compiledSignature struct {
	name     string
	category Category

	headers    []compiledHeaderRule
	html       []compiledPattern
	scripts    []compiledPattern
	indicators []compiledIndicator
	versions   []*regexp.Regexp
}

// Registry is the immutable, versioned signature table. Constructed once
// at process start and shared read-only across concurrent analyses.
type Registry struct {
	version    string
	signatures []compiledSignature // declared order, preserved
}

// NewRegistry compiles the given signatures. Any invalid definition
// (unknown category, empty name, unparseable pattern, no patterns at all)
// fails construction with a REGISTRY_INVALID error; nothing is validated
// lazily at analysis time.
func NewRegistry(version string, sigs []Signature) (*Registry, error) {
	if len(sigs) == 0 {
		return nil, models.NewAnalysisError(models.ErrCodeRegistry, "registry has no signatures", nil)
	}
	r := &Registry{
		version:    version,
		signatures: make([]compiledSignature, 0, len(sigs)),
	}
	for _, sig := range sigs {
		cs, err := compileSignature(sig)
		if err != nil {
			return nil, err
		}
		r.signatures = append(r.signatures, cs)
	}
	return r, nil
}

func compileSignature(sig Signature) (compiledSignature, error) {
	var cs compiledSignature
	if sig.Name == "" {
		return cs, models.NewAnalysisError(models.ErrCodeRegistry, "signature with empty name", nil)
	}
	if !validCategories[sig.Category] {
		return cs, models.NewAnalysisError(models.ErrCodeRegistry,
			fmt.Sprintf("signature %q: unknown category %q", sig.Name, sig.Category), nil)
	}
	if len(sig.Headers)+len(sig.HTML)+len(sig.Scripts)+len(sig.Indicators) == 0 {
		return cs, models.NewAnalysisError(models.ErrCodeRegistry,
			fmt.Sprintf("signature %q declares no patterns", sig.Name), nil)
	}

	cs.name = sig.Name
	cs.category = sig.Category

	for _, h := range sig.Headers {
		re, err := compilePattern(sig.Name, h.Pattern)
		if err != nil {
			return cs, err
		}
		cs.headers = append(cs.headers, compiledHeaderRule{
			header:  h.Header,
			pattern: h.Header + "~" + h.Pattern,
			re:      re,
		})
	}
	for _, p := range sig.HTML {
		re, err := compilePattern(sig.Name, p)
		if err != nil {
			return cs, err
		}
		cs.html = append(cs.html, compiledPattern{pattern: p, re: re})
	}
	for _, p := range sig.Scripts {
		re, err := compilePattern(sig.Name, p)
		if err != nil {
			return cs, err
		}
		cs.scripts = append(cs.scripts, compiledPattern{pattern: p, re: re})
	}
	for _, ind := range sig.Indicators {
		re, err := compilePattern(sig.Name, ind.Pattern)
		if err != nil {
			return cs, err
		}
		w := ind.Weight
		if w <= 0 {
			w = weightIndicator
		}
		cs.indicators = append(cs.indicators, compiledIndicator{pattern: ind.Pattern, weight: w, re: re})
	}
	for _, v := range sig.Versions {
		re, err := compilePattern(sig.Name, v)
		if err != nil {
			return cs, err
		}
		cs.versions = append(cs.versions, re)
	}
	return cs, nil
}

// compilePattern compiles case-insensitively. Page authors are not
// consistent about casing and neither are header values.
func compilePattern(sigName, pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, models.NewAnalysisError(models.ErrCodeRegistry,
			fmt.Sprintf("signature %q: bad pattern %q", sigName, pattern), err)
	}
	return re, nil
}

// Version returns the registry's version label.
func (r *Registry) Version() string { return r.version }

// Len returns the number of signatures.
func (r *Registry) Len() int { return len(r.signatures) }
