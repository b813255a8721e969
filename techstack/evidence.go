package techstack

import "github.com/RickBillie-pixel/scraper/models"

// Layer identifies where a piece of evidence was found.
type Layer string

const (
	LayerHeader Layer = "header"
	LayerHTML   Layer = "html"
	LayerScript Layer = "script"
	LayerMeta   Layer = "meta"
)

// Per-layer evidence weights. Script presence scores lowest: unrelated
// third-party embeds also load scripts.
const (
	weightHeader    = 30
	weightHTML      = 25
	weightScript    = 15
	weightIndicator = 30
)

// evidence is one concrete pattern match supporting a signature.
type evidence struct {
	layer   Layer
	pattern string
	weight  int
}

// collect scans one snapshot against every signature and returns the
// evidence found, indexed like r.signatures. Pure function of its inputs.
//
// Within a signature each (layer, pattern) match counts once no matter
// how often it recurs in content, and a pattern string that appears in
// several layers counts only at the strongest layer. Records are emitted
// in fixed layer order (header, html, script, meta) with declared pattern
// order inside each layer, which pins the evidence ordering of the final
// report.
func (r *Registry) collect(snap *models.PageSnapshot) [][]evidence {
	body := snap.HTML
	text := snap.RenderedText
	scripts := snap.ScriptText()
	headerLines := snap.HeaderLines()

	out := make([][]evidence, len(r.signatures))
	for i := range r.signatures {
		sig := &r.signatures[i]
		var found []evidence
		seen := make(map[string]bool)

		for _, h := range sig.headers {
			val := snap.Header(h.header)
			if val == "" || seen[h.pattern] {
				continue
			}
			if h.re.MatchString(val) {
				seen[h.pattern] = true
				found = append(found, evidence{LayerHeader, h.pattern, weightHeader})
			}
		}
		for _, p := range sig.html {
			if seen[p.pattern] {
				continue
			}
			if p.re.MatchString(body) || p.re.MatchString(text) {
				seen[p.pattern] = true
				found = append(found, evidence{LayerHTML, p.pattern, weightHTML})
			}
		}
		for _, p := range sig.scripts {
			if seen[p.pattern] {
				continue
			}
			if scripts != "" && p.re.MatchString(scripts) {
				seen[p.pattern] = true
				found = append(found, evidence{LayerScript, p.pattern, weightScript})
			}
		}
		for _, ind := range sig.indicators {
			if seen[ind.pattern] {
				continue
			}
			if ind.re.MatchString(body) || ind.re.MatchString(text) || ind.re.MatchString(headerLines) {
				seen[ind.pattern] = true
				found = append(found, evidence{LayerMeta, ind.pattern, ind.weight})
			}
		}
		out[i] = found
	}
	return out
}

// describe renders one evidence record for the report.
func (e evidence) describe() string {
	return string(e.layer) + ": " + e.pattern
}
