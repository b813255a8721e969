package structured

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractMetaPrefix collects meta tags whose key attribute starts with
// prefix into a flat map, keys lowercased. Duplicate keys resolve to the
// last occurrence, matching how renderers treat repeated meta tags.
func extractMetaPrefix(doc *goquery.Document, selector, keyAttr, prefix string) map[string]string {
	out := map[string]string{}
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		key, _ := s.Attr(keyAttr)
		key = strings.ToLower(strings.TrimSpace(key))
		if !strings.HasPrefix(key, prefix) {
			return
		}
		content, _ := s.Attr("content")
		out[key] = content
	})
	return out
}

// extractMetaTags collects the remaining named meta tags as data. Twitter
// keys live in their own map; these contribute nothing to the quality
// score.
func extractMetaTags(doc *goquery.Document) map[string]string {
	out := map[string]string{}
	doc.Find("meta[name]").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		name = strings.TrimSpace(name)
		if name == "" || strings.HasPrefix(strings.ToLower(name), "twitter:") {
			return
		}
		content, _ := s.Attr("content")
		out[name] = content
	})
	return out
}
