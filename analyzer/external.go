package analyzer

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/RickBillie-pixel/scraper/models"
)

// externalResources lists the third-party hosts referenced by scripts,
// stylesheets and iframes. The robots.txt and sitemap fields involve
// network probes; the API layer fills them from the probe package.
func externalResources(p *page) models.ExternalResources {
	scripts := externalHosts(p, p.doc.FindMatcher(selScriptSrc), "src")
	styles := externalHosts(p, p.doc.FindMatcher(selStylesheet), "href")
	iframes := externalHosts(p, p.doc.FindMatcher(selIframe), "src")

	union := map[string]struct{}{}
	for _, list := range [][]string{scripts, styles, iframes} {
		for _, h := range list {
			union[h] = struct{}{}
		}
	}

	return models.ExternalResources{
		ExternalDomains: sortedKeys(union),
		ScriptDomains:   scripts,
		StyleDomains:    styles,
		IframeDomains:   iframes,
	}
}

// externalHosts collects the distinct off-origin hosts referenced by a
// selection's ref attribute, sorted.
func externalHosts(p *page, sel *goquery.Selection, attr string) []string {
	hosts := map[string]struct{}{}
	sel.Each(func(_ int, s *goquery.Selection) {
		ref, _ := s.Attr(attr)
		if ref == "" {
			return
		}
		resolved, err := p.base.Parse(ref)
		if err != nil || resolved.Host == "" {
			return
		}
		host := strings.ToLower(resolved.Host)
		if strings.EqualFold(host, p.base.Host) {
			return
		}
		hosts[host] = struct{}{}
	})
	return sortedKeys(hosts)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
