package analyzer

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/RickBillie-pixel/scraper/models"
)

var doctypeRe = regexp.MustCompile(`(?i)<!doctype\s+([^>]+)>`)

// technicalAnalysis reports markup-level technical facts: document size,
// validation signals, resource mix, response headers, plus browser timing
// when the snapshot carries it.
func technicalAnalysis(p *page) models.TechnicalAnalysis {
	size := len(p.snap.HTML)

	headers := map[string]string{}
	for name := range p.snap.Headers {
		headers[name] = p.snap.Headers.Get(name)
	}

	scripts := p.doc.FindMatcher(selScript).Length()
	srcScripts := p.doc.FindMatcher(selScriptSrc).Length()

	return models.TechnicalAnalysis{
		HTMLSize: models.HTMLSize{
			Bytes: size,
			KB:    round2(float64(size) / 1024),
			MB:    round2(float64(size) / (1024 * 1024)),
		},
		HTMLValidation: models.HTMLValidation{
			Doctype:         doctype(p.snap.HTML),
			LangAttribute:   p.doc.FindMatcher(selHTMLLang).Length() > 0,
			CharsetDeclared: p.doc.FindMatcher(selMetaCharset).Length() > 0,
		},
		Resources: models.ResourceAnalysis{
			ExternalStylesheets: countExternal(p.doc.FindMatcher(selStylesheet), "href"),
			ExternalScripts:     countExternal(p.doc.FindMatcher(selScriptSrc), "src"),
			InlineStyles:        p.doc.FindMatcher(selStyle).Length(),
			InlineScripts:       scripts - srcScripts,
		},
		Performance:    p.snap.Timing,
		ResponseHeader: headers,
	}
}

// doctype reads the doctype declaration from the raw document prefix.
// "html" is reported as "html5"; a missing declaration as "none".
func doctype(raw string) string {
	head := raw
	if len(head) > 1024 {
		head = head[:1024]
	}
	m := doctypeRe.FindStringSubmatch(head)
	if m == nil {
		return "none"
	}
	decl := strings.ToLower(strings.TrimSpace(m[1]))
	if decl == "html" {
		return "html5"
	}
	return decl
}

// countExternal counts selection members whose ref attribute points
// off-document.
func countExternal(sel *goquery.Selection, attr string) int {
	n := 0
	sel.Each(func(_ int, s *goquery.Selection) {
		if v, _ := s.Attr(attr); isExternalRef(v) {
			n++
		}
	})
	return n
}
