package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/RickBillie-pixel/scraper/models"
)

// flexibleLayoutTerms mark class names that suggest responsive layout.
var flexibleLayoutTerms = []string{"flex", "grid", "responsive"}

// mobileAnalysis reports mobile-optimization signals.
func mobileAnalysis(p *page) models.MobileAnalysis {
	var ma models.MobileAnalysis

	viewport := p.doc.FindMatcher(selMetaViewport)
	if viewport.Length() > 0 {
		content := viewport.AttrOr("content", "")
		ma.ViewportMeta = models.ViewportMeta{
			Exists:       true,
			Content:      content,
			IsResponsive: strings.Contains(content, "width=device-width"),
		}
	}

	ma.MobileElements.TouchIcons = p.doc.FindMatcher(selTouchIcon).Length()
	p.doc.FindMatcher(selMeta).Each(func(_ int, s *goquery.Selection) {
		if strings.Contains(strings.ToLower(s.AttrOr("name", "")), "mobile") {
			ma.MobileElements.MobileMetaTags++
		}
	})

	ma.ResponsiveIndicators.StyleBlocks = p.doc.FindMatcher(selStyle).Length()
	p.doc.FindMatcher(selImage).Each(func(_ int, s *goquery.Selection) {
		if s.AttrOr("srcset", "") != "" {
			ma.ResponsiveIndicators.ResponsiveImages++
		}
	})
	p.doc.FindMatcher(selClassed).Each(func(_ int, s *goquery.Selection) {
		class := strings.ToLower(s.AttrOr("class", ""))
		for _, term := range flexibleLayoutTerms {
			if strings.Contains(class, term) {
				ma.ResponsiveIndicators.FlexibleLayouts++
				break
			}
		}
	})

	return ma
}
