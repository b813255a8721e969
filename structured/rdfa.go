package structured

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/RickBillie-pixel/scraper/models"
)

// extractRDFa records each typeof-carrying element with the property
// values found beneath it: content attribute when present, element text
// otherwise. A nested typeof element is reported on its own as well.
func extractRDFa(doc *goquery.Document) []models.RDFaItem {
	items := make([]models.RDFaItem, 0, 2)

	doc.Find("[typeof]").Each(func(_ int, s *goquery.Selection) {
		to, _ := s.Attr("typeof")
		item := models.RDFaItem{
			Typeof:     strings.TrimSpace(to),
			Properties: map[string]string{},
		}
		s.Find("[property]").Each(func(_ int, p *goquery.Selection) {
			name, _ := p.Attr("property")
			name = strings.TrimSpace(name)
			if name == "" {
				return
			}
			if v, ok := p.Attr("content"); ok && v != "" {
				item.Properties[name] = v
				return
			}
			if text := truncate(strings.TrimSpace(p.Text()), 100); text != "" {
				item.Properties[name] = text
			}
		})
		if len(item.Properties) > 0 {
			items = append(items, item)
		}
	})

	return items
}
