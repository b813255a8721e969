package structured

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/RickBillie-pixel/scraper/models"
)

// extractMicrodata builds one item per top-level itemscope (scopes nested
// inside another scope belong to their parent, not the report). Property
// values follow the microdata value rules: content, href, src, datetime,
// then element text. A repeated property name becomes an array.
func extractMicrodata(doc *goquery.Document, types *typeSet) []models.MicrodataItem {
	items := make([]models.MicrodataItem, 0, 2)

	doc.Find("[itemscope]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.ParentsFiltered("[itemscope]").Length() == 0
	}).Each(func(_ int, scope *goquery.Selection) {
		item := models.MicrodataItem{Properties: map[string]any{}}

		if t, ok := scope.Attr("itemtype"); ok {
			item.Type = strings.TrimSpace(t)
		}

		scope.Find("[itemprop]").Each(func(_ int, prop *goquery.Selection) {
			name, _ := prop.Attr("itemprop")
			name = strings.TrimSpace(name)
			if name == "" {
				return
			}
			val := microdataValue(prop)
			if val == "" {
				return
			}
			switch existing := item.Properties[name].(type) {
			case nil:
				item.Properties[name] = val
			case string:
				item.Properties[name] = []string{existing, val}
			case []string:
				item.Properties[name] = append(existing, val)
			}
		})

		// A scope with no usable properties carries no data.
		if len(item.Properties) > 0 {
			items = append(items, item)
			if item.Type != "" {
				types.add(typeTail(item.Type))
			}
		}
	})

	return items
}

func microdataValue(s *goquery.Selection) string {
	for _, attr := range []string{"content", "href", "src", "datetime"} {
		if v, ok := s.Attr(attr); ok && v != "" {
			return v
		}
	}
	return truncate(strings.TrimSpace(s.Text()), 200)
}

// typeTail returns the bare type name at the end of an itemtype URL,
// e.g. "https://schema.org/Product" -> "Product".
func typeTail(itemtype string) string {
	t := strings.TrimRight(itemtype, "/")
	if i := strings.LastIndexAny(t, "/#"); i >= 0 {
		t = t[i+1:]
	}
	return t
}
