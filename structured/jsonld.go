package structured

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/RickBillie-pixel/scraper/models"
)

// extractJSONLD parses every JSON-LD script block into a generic content
// tree. A top-level array yields one item per element. Malformed blocks
// are skipped and counted; they never abort the rest.
func extractJSONLD(doc *goquery.Document, types *typeSet) ([]models.JSONLDItem, int) {
	items := make([]models.JSONLDItem, 0, 2)
	parseErrors := 0

	doc.Find("script[type]").Each(func(_ int, s *goquery.Selection) {
		typ, _ := s.Attr("type")
		if !strings.Contains(strings.ToLower(typ), "ld+json") {
			return
		}
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return
		}

		var tree any
		if err := json.Unmarshal([]byte(stripJSONComments(raw)), &tree); err != nil {
			parseErrors++
			return
		}

		switch v := tree.(type) {
		case []any:
			for _, el := range v {
				items = append(items, newJSONLDItem(el, types))
			}
		default:
			items = append(items, newJSONLDItem(tree, types))
		}
	})

	return items, parseErrors
}

func newJSONLDItem(tree any, types *typeSet) models.JSONLDItem {
	local := newTypeSet()
	collectTypes(tree, local)
	item := models.JSONLDItem{Data: tree, Types: local.sorted()}
	for _, t := range item.Types {
		types.add(t)
	}
	return item
}

// collectTypes walks the content tree gathering @type values, nested
// objects and @graph members included. @type may be a string or a list.
func collectTypes(tree any, out *typeSet) {
	switch v := tree.(type) {
	case map[string]any:
		switch t := v["@type"].(type) {
		case string:
			out.add(t)
		case []any:
			for _, el := range t {
				if s, ok := el.(string); ok {
					out.add(s)
				}
			}
		}
		for _, child := range v {
			collectTypes(child, out)
		}
	case []any:
		for _, el := range v {
			collectTypes(el, out)
		}
	}
}

// stripJSONComments removes // and /* */ comments that template engines
// leave inside JSON-LD blocks. Markers inside JSON strings are kept.
func stripJSONComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch {
		case c == '"':
			inString = true
			b.WriteByte(c)
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			for i < len(s) && s[i] != '\n' {
				i++
			}
			if i < len(s) {
				b.WriteByte('\n')
			}
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			i += 2
			for i+1 < len(s) && !(s[i] == '*' && s[i+1] == '/') {
				i++
			}
			i++
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
