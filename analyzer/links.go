package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/RickBillie-pixel/scraper/models"
)

// maxLinkEntries caps the per-partition link samples in the report.
const maxLinkEntries = 20

// linksAnalysis partitions a[href] into internal/external/email/phone
// groups, resolving relative hrefs against the final URL. Counts cover
// everything; the Links samples keep the first entries only.
func linksAnalysis(p *page) models.LinksAnalysis {
	la := models.LinksAnalysis{}
	la.InternalLinks.Links = []models.LinkEntry{}
	la.ExternalLinks.Links = []models.LinkEntry{}
	la.EmailLinks.Links = []models.EmailLink{}
	la.PhoneLinks.Links = []models.PhoneLink{}

	domains := map[string]struct{}{}

	p.doc.FindMatcher(selAnchorHref).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		la.TotalLinks++
		text := collapseWhitespace(s.Text())

		if href == "#" {
			la.BrokenLinkIndicators++
		}
		if rel, _ := s.Attr("rel"); strings.Contains(rel, "nofollow") {
			la.NofollowLinks++
		}

		switch {
		case strings.HasPrefix(href, "mailto:"):
			la.EmailLinks.Count++
			la.EmailLinks.Links = append(la.EmailLinks.Links, models.EmailLink{
				Email: strings.TrimPrefix(href, "mailto:"),
				Text:  text,
			})
		case strings.HasPrefix(href, "tel:"):
			la.PhoneLinks.Count++
			la.PhoneLinks.Links = append(la.PhoneLinks.Links, models.PhoneLink{
				Phone: strings.TrimPrefix(href, "tel:"),
				Text:  text,
			})
		default:
			resolved, err := p.base.Parse(href)
			if err != nil || (resolved.Scheme != "http" && resolved.Scheme != "https") {
				return
			}
			domains[strings.ToLower(resolved.Host)] = struct{}{}

			entry := models.LinkEntry{
				URL:   resolved.String(),
				Text:  text,
				Title: s.AttrOr("title", ""),
			}

			group := &la.ExternalLinks
			if strings.EqualFold(resolved.Host, p.base.Host) {
				group = &la.InternalLinks
			}
			group.Count++
			if len(group.Links) < maxLinkEntries {
				group.Links = append(group.Links, entry)
			}
		}
	})

	la.UniqueDomains = len(domains)
	return la
}
