// Package structured extracts embedded structured-data markup from a
// page: JSON-LD, Microdata, OpenGraph, Twitter Cards, RDFa and generic
// meta tags. Each format is parsed independently, so a malformed
// fragment in one never degrades another; bad fragments are dropped and
// counted, never fatal.
package structured

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/RickBillie-pixel/scraper/models"
)

// Analyze extracts every supported structured-data format from the
// snapshot's markup. It errors only on a nil snapshot; malformed page
// content always yields a best-effort report.
func Analyze(snap *models.PageSnapshot) (*models.StructuredDataReport, error) {
	if snap == nil {
		return nil, models.NewAnalysisError(models.ErrCodeInvalidInput, "nil snapshot", nil)
	}

	report := &models.StructuredDataReport{
		JSONLD:       []models.JSONLDItem{},
		Microdata:    []models.MicrodataItem{},
		OpenGraph:    map[string]string{},
		TwitterCards: map[string]string{},
		RDFa:         []models.RDFaItem{},
		MetaTags:     map[string]string{},
		SchemaTypes:  []string{},
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snap.HTML))
	if err != nil {
		// Unreadable document: the empty report stands.
		report.Summary = summarize(report)
		return report, nil
	}

	types := newTypeSet()
	report.JSONLD, report.ParseErrors = extractJSONLD(doc, types)
	report.Microdata = extractMicrodata(doc, types)
	report.OpenGraph = extractMetaPrefix(doc, "meta[property]", "property", "og:")
	report.TwitterCards = extractMetaPrefix(doc, "meta[name]", "name", "twitter:")
	report.RDFa = extractRDFa(doc)
	report.MetaTags = extractMetaTags(doc)
	report.SchemaTypes = types.sorted()

	report.Summary = summarize(report)
	return report, nil
}

func summarize(r *models.StructuredDataReport) models.StructuredDataSummary {
	s := models.StructuredDataSummary{
		TotalJSONLD:       len(r.JSONLD),
		TotalMicrodata:    len(r.Microdata),
		TotalOpenGraph:    len(r.OpenGraph),
		TotalTwitterCards: len(r.TwitterCards),
		TotalRDFa:         len(r.RDFa),
		TotalSchemaTypes:  len(r.SchemaTypes),
	}
	s.HasSocialMeta = s.TotalOpenGraph > 0 || s.TotalTwitterCards > 0
	s.QualityScore = qualityScore(s)
	s.HasStructuredData = s.QualityScore > 0
	return s
}

// qualityScore weights formats by how much machine-readable signal they
// carry. Each format's contribution is capped, so items beyond the cap
// add nothing; the total clamps to 100. Generic meta tags contribute 0.
func qualityScore(s models.StructuredDataSummary) int {
	score := 20*min(s.TotalJSONLD, 3) +
		10*min(s.TotalMicrodata, 3) +
		5*min(s.TotalOpenGraph, 4) +
		3*min(s.TotalTwitterCards, 4) +
		2*min(s.TotalRDFa, 3)
	if score > 100 {
		score = 100
	}
	return score
}

// typeSet accumulates schema type strings without duplicates.
type typeSet struct {
	seen map[string]bool
}

func newTypeSet() *typeSet {
	return &typeSet{seen: map[string]bool{}}
}

func (t *typeSet) add(s string) {
	s = strings.TrimSpace(s)
	if s != "" {
		t.seen[s] = true
	}
}

func (t *typeSet) sorted() []string {
	out := make([]string, 0, len(t.seen))
	for s := range t.seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// truncate clips s to at most n runes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
