package analyzer

import (
	"strings"

	"github.com/RickBillie-pixel/scraper/models"
)

// pageInfo extracts page identity: title, URL parts, language, charset
// and the page-type classification.
func pageInfo(p *page) models.PageInfo {
	title := strings.TrimSpace(p.doc.FindMatcher(selTitle).First().Text())

	lang, _ := p.doc.FindMatcher(selHTMLLang).Attr("lang")
	if lang == "" {
		lang, _ = p.doc.FindMatcher(selContentLanguage).Attr("content")
	}

	charset, _ := p.doc.FindMatcher(selMetaCharset).Attr("charset")
	if charset == "" {
		charset = "utf-8"
	}

	return models.PageInfo{
		Title:       title,
		TitleLength: runeLen(title),
		Domain:      p.base.Host,
		Path:        p.base.Path,
		Protocol:    p.base.Scheme,
		Language:    lang,
		Charset:     charset,
		IsSSL:       p.base.Scheme == "https",
		URLLength:   len(p.snap.FinalURL),
		PageType:    pageType(p),
	}
}

// pageType classifies the page from its path, falling back to the
// presence of an article element.
func pageType(p *page) string {
	path := strings.ToLower(p.base.Path)
	switch {
	case path == "" || path == "/" || path == "/index.html" || path == "/index.php":
		return "homepage"
	case strings.Contains(path, "/blog") || strings.Contains(path, "/artikel"):
		return "blog"
	case strings.Contains(path, "/product") || strings.Contains(path, "/shop"):
		return "product"
	case strings.Contains(path, "/contact"):
		return "contact"
	case strings.Contains(path, "/about") || strings.Contains(path, "/over"):
		return "about"
	case p.doc.Find("article").Length() > 0:
		return "article"
	default:
		return "page"
	}
}
