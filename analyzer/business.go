package analyzer

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/RickBillie-pixel/scraper/models"
)

// Phone patterns, most specific first: Dutch numbers, generic
// international, bare local formats.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+31\s?(?:\(0\)\s?)?[1-9](?:\s?\d){8}`),
	regexp.MustCompile(`\+\d{1,3}\s?\d{1,14}`),
	regexp.MustCompile(`\b\d{3,4}[-\s]?\d{6,7}\b`),
}

var emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

var addressPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d+\s+[A-Za-z\s]+(?:street|str|avenue|ave|road|rd|drive|dr|lane|ln)\s*,?\s*\d{4,5}`),
	regexp.MustCompile(`(?i)[A-Za-z\s]+\s+\d+[A-Za-z]?\s*,\s*\d{4,5}\s+[A-Za-z\s]+`),
}

// socialDomains are the profile hosts recognised as social links; the
// platform name is the host minus its TLD.
var socialDomains = []string{
	"facebook.com", "twitter.com", "linkedin.com", "instagram.com",
	"youtube.com", "tiktok.com", "pinterest.com",
}

// businessInfo scans the visible text for identity signals: phone
// numbers, email addresses, street addresses and social profile links.
// Matches keep first-seen order so repeated runs report identically.
func businessInfo(p *page) models.BusinessInfo {
	info := models.BusinessInfo{
		CompanyName:    strings.TrimSpace(p.doc.FindMatcher(selTitle).First().Text()),
		PhoneNumbers:   []string{},
		EmailAddresses: []string{},
		Addresses:      []string{},
		SocialLinks:    socialLinks(p),
	}

	for _, re := range phonePatterns {
		for _, m := range re.FindAllString(p.text, 5) {
			info.PhoneNumbers = appendUnique(info.PhoneNumbers, m, 0)
		}
	}
	for _, m := range emailPattern.FindAllString(p.text, -1) {
		info.EmailAddresses = appendUnique(info.EmailAddresses, m, 5)
	}
	for _, re := range addressPatterns {
		info.Addresses = append(info.Addresses, re.FindAllString(p.text, 3)...)
	}

	return info
}

// socialLinks collects anchors pointing at recognised social platforms.
func socialLinks(p *page) []models.SocialLink {
	links := []models.SocialLink{}
	p.doc.FindMatcher(selAnchorHref).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		for _, domain := range socialDomains {
			if strings.Contains(href, domain) {
				links = append(links, models.SocialLink{
					Platform: strings.TrimSuffix(domain, ".com"),
					URL:      href,
					Text:     collapseWhitespace(s.Text()),
				})
				break
			}
		}
	})
	return links
}

// contactInfo counts the page's contact affordances.
func contactInfo(p *page) models.ContactInfo {
	ci := models.ContactInfo{
		ContactForms: p.doc.FindMatcher(selForm).Length(),
	}

	p.doc.FindMatcher(selAnchorHref).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		switch {
		case strings.HasPrefix(href, "mailto:"):
			ci.EmailLinks++
		case strings.HasPrefix(href, "tel:"):
			ci.PhoneLinks++
		}
		if strings.Contains(strings.ToLower(href), "contact") ||
			strings.Contains(strings.ToLower(s.Text()), "contact") {
			ci.ContactPageLinks++
		}
	})

	p.doc.FindMatcher(selIframe).Each(func(_ int, s *goquery.Selection) {
		if src, _ := s.Attr("src"); strings.Contains(strings.ToLower(src), "maps") {
			ci.MapEmbeds++
		}
	})

	return ci
}

// appendUnique appends v unless already present; max 0 means unbounded.
func appendUnique(list []string, v string, max int) []string {
	if max > 0 && len(list) >= max {
		return list
	}
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}
