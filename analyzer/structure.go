package analyzer

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/RickBillie-pixel/scraper/models"
	"github.com/RickBillie-pixel/scraper/simhash"
)

// pageStructure reports the document's structural shape and the layout
// fingerprint used for template-level duplicate grouping.
func pageStructure(p *page) models.PageStructure {
	return models.PageStructure{
		Semantic: models.SemanticStructure{
			HasHeader:  p.doc.Find("header").Length() > 0,
			HasNav:     p.doc.Find("nav").Length() > 0,
			HasMain:    p.doc.Find("main").Length() > 0,
			HasArticle: p.doc.Find("article").Length() > 0,
			HasSection: p.doc.Find("section").Length() > 0,
			HasAside:   p.doc.Find("aside").Length() > 0,
			HasFooter:  p.doc.Find("footer").Length() > 0,
		},
		ContentSections:   p.doc.Find("article, section").Length(),
		NavigationItems:   p.doc.FindMatcher(selNavLink).Length(),
		TotalElements:     p.doc.FindMatcher(selAnyElement).Length(),
		NestingDepth:      nestingDepth(p.doc),
		LayoutFingerprint: simhash.Hex(simhash.FingerprintLayout(p.snap.HTML)),
	}
}

// nestingDepth is the maximum element depth below body.
func nestingDepth(doc *goquery.Document) int {
	body := doc.Find("body")
	if body.Length() == 0 {
		return 0
	}
	return elementDepth(body.Get(0))
}

// elementDepth walks element children only; text and comment nodes do
// not add depth.
func elementDepth(n *html.Node) int {
	depth := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if d := 1 + elementDepth(c); d > depth {
			depth = d
		}
	}
	return depth
}
