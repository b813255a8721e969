package analyzer

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/RickBillie-pixel/scraper/models"
)

// accessibilityAnalysis reports the signals behind the accessibility
// score: alt coverage, link text, heading structure, form labels, ARIA
// usage and the language declaration. An empty alt counts as both
// "without alt" and "empty alt".
func accessibilityAnalysis(p *page) models.AccessibilityAnalysis {
	var aa models.AccessibilityAnalysis

	p.doc.FindMatcher(selImage).Each(func(_ int, s *goquery.Selection) {
		aa.Images.TotalImages++
		alt, ok := s.Attr("alt")
		switch {
		case alt != "":
			aa.Images.ImagesWithAlt++
		case ok:
			aa.Images.ImagesWithEmptyAlt++
			aa.Images.ImagesWithoutAlt++
		default:
			aa.Images.ImagesWithoutAlt++
		}
	})

	p.doc.FindMatcher(selAnchor).Each(func(_ int, s *goquery.Selection) {
		aa.Links.TotalLinks++
		if collapseWhitespace(s.Text()) != "" {
			aa.Links.LinksWithText++
		} else {
			aa.Links.LinksWithoutText++
		}
		if s.AttrOr("title", "") != "" {
			aa.Links.LinksWithTitle++
		}
	})

	h1 := p.doc.FindMatcher(selHeadingLevel[0]).Length()
	aa.Headings.HeadingStructureExists = p.doc.FindMatcher(selHeading).Length() > 0
	aa.Headings.H1Count = h1
	aa.Headings.ProperH1Usage = h1 == 1

	p.doc.FindMatcher(selForm).Each(func(_ int, s *goquery.Selection) {
		aa.Forms.TotalForms++
		if s.FindMatcher(selLabel).Length() > 0 {
			aa.Forms.FormsWithLabels++
		}
	})

	aa.ARIA.ElementsWithAriaLabel = p.doc.FindMatcher(selAriaLabel).Length()
	aa.ARIA.ElementsWithRole = p.doc.FindMatcher(selRole).Length()

	lang, _ := p.doc.FindMatcher(selHTMLLang).Attr("lang")
	aa.Language.HTMLHasLang = lang != ""

	return aa
}
