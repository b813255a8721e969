package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/RickBillie-pixel/scraper/models"
)

// seoMetaNames and technicalMetaNames route meta tags into their report
// buckets; og:/twitter: prefixes route to social, everything else to basic.
var seoMetaNames = map[string]bool{
	"description": true,
	"keywords":    true,
	"robots":      true,
	"author":      true,
}

var technicalMetaNames = map[string]bool{
	"viewport": true,
	"charset":  true,
}

// metaData buckets the document's meta tags and inventories the head
// resources: stylesheets, scripts with src, and favicons.
func metaData(p *page) models.MetaData {
	md := models.MetaData{
		BasicMeta:     map[string]string{},
		SocialMeta:    map[string]string{},
		SEOMeta:       map[string]string{},
		TechnicalMeta: map[string]string{},
		Stylesheets:   []models.StylesheetRef{},
		Scripts:       []models.ScriptRef{},
		Favicons:      []models.FaviconRef{},
	}

	p.doc.FindMatcher(selMeta).Each(func(_ int, s *goquery.Selection) {
		name, fromHTTPEquiv := metaName(s)
		content, _ := s.Attr("content")
		if name == "" || content == "" {
			return
		}
		lower := strings.ToLower(name)
		switch {
		case strings.HasPrefix(lower, "og:") || strings.HasPrefix(lower, "twitter:"):
			md.SocialMeta[name] = content
		case seoMetaNames[lower]:
			md.SEOMeta[name] = content
		case fromHTTPEquiv || technicalMetaNames[lower]:
			md.TechnicalMeta[name] = content
		default:
			md.BasicMeta[name] = content
		}
	})

	p.doc.FindMatcher(selStylesheet).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if href == "" {
			return
		}
		md.Stylesheets = append(md.Stylesheets, models.StylesheetRef{
			Href:       href,
			Media:      s.AttrOr("media", "all"),
			IsExternal: isExternalRef(href),
		})
	})

	p.doc.FindMatcher(selScriptSrc).Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		_, async := s.Attr("async")
		_, deferred := s.Attr("defer")
		md.Scripts = append(md.Scripts, models.ScriptRef{
			Src:        src,
			Async:      async,
			Defer:      deferred,
			IsExternal: isExternalRef(src),
		})
	})

	p.doc.FindMatcher(selFavicon).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if href == "" {
			return
		}
		md.Favicons = append(md.Favicons, models.FaviconRef{
			Rel:   s.AttrOr("rel", ""),
			Href:  href,
			Sizes: s.AttrOr("sizes", ""),
		})
	})

	return md
}

// metaName resolves a meta tag's key: name first, then property, then
// http-equiv. The second return reports that the key came from http-equiv,
// which routes the tag to the technical bucket.
func metaName(s *goquery.Selection) (string, bool) {
	if v, ok := s.Attr("name"); ok && v != "" {
		return v, false
	}
	if v, ok := s.Attr("property"); ok && v != "" {
		return v, false
	}
	if v, ok := s.Attr("http-equiv"); ok && v != "" {
		return v, true
	}
	return "", false
}
