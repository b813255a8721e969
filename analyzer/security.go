package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/RickBillie-pixel/scraper/models"
	"github.com/RickBillie-pixel/scraper/techstack"
)

// securityAnalysis reports transport and markup security signals. The
// header presence map uses the same names as the tech report's
// server_info so both views agree.
func securityAnalysis(p *page) models.SecurityAnalysis {
	sa := models.SecurityAnalysis{
		HTTPSUsage:      p.base.Scheme == "https",
		SecurityHeaders: map[string]bool{},
	}

	for _, name := range techstack.SecurityHeaderNames() {
		value := p.snap.Header(name)
		sa.SecurityHeaders[name] = value != ""
		if value != "" {
			if sa.SecurityHeaderValues == nil {
				sa.SecurityHeaderValues = map[string]string{}
			}
			sa.SecurityHeaderValues[name] = value
		}
	}

	p.doc.Find("img, script, link").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		href, _ := s.Attr("href")
		if strings.HasPrefix(src, "http://") || strings.HasPrefix(href, "http://") {
			sa.MixedContent.HTTPResources++
		}
	})

	p.doc.FindMatcher(selForm).Each(func(_ int, s *goquery.Selection) {
		sa.FormSecurity.TotalForms++
		if strings.HasPrefix(s.AttrOr("action", ""), "https://") {
			sa.FormSecurity.FormsWithHTTPSAction++
		}
	})

	return sa
}
