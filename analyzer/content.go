package analyzer

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/RickBillie-pixel/scraper/models"
	"github.com/RickBillie-pixel/scraper/simhash"
)

// semanticSections are the elements measured in content_sections.
var semanticSections = []string{"main", "article", "section", "aside", "header", "footer", "nav"}

// contentAnalysis builds the content section: text metrics, headings,
// paragraphs, lists, tables, multimedia counts, semantic section usage,
// density and the content fingerprint.
func (a *Analyzer) contentAnalysis(p *page, includeContent bool) models.ContentAnalysis {
	words := strings.Fields(p.text)

	ca := models.ContentAnalysis{
		TextExcerpt:    excerpt(p.text, 1000),
		WordCount:      len(words),
		CharacterCount: runeLen(p.text),
		ReadingTime:    readingTime(len(words)),
		Headings:       headingsInfo(p),
		Paragraphs:     paragraphsInfo(p),
		Lists:          listsInfo(p),
		Tables:         tablesInfo(p),
		Multimedia: models.MultimediaCounts{
			Images:  p.doc.FindMatcher(selImage).Length(),
			Videos:  p.doc.FindMatcher(selVideo).Length(),
			Audio:   p.doc.FindMatcher(selAudio).Length(),
			Iframes: p.doc.FindMatcher(selIframe).Length(),
		},
		ContentSections: contentSections(p),
		TextDensity:     textDensity(p),
		Fingerprint:     simhash.Hex(simhash.Fingerprint(p.text)),
	}

	if includeContent {
		ca.MainContent = a.mainContent(p)
	}
	return ca
}

// readingTime estimates minutes at 200 words per minute, minimum 1.
func readingTime(words int) int {
	if t := words / 200; t > 1 {
		return t
	}
	return 1
}

// headingsInfo collects h1..h6 usage, keeping the first 10 entries per
// level and only levels that occur.
func headingsInfo(p *page) models.HeadingsInfo {
	info := models.HeadingsInfo{ByLevel: map[string][]models.HeadingEntry{}}

	for i, sel := range selHeadingLevel {
		found := p.doc.FindMatcher(sel)
		n := found.Length()
		if n == 0 {
			continue
		}
		info.TotalHeadings += n

		entries := make([]models.HeadingEntry, 0, 10)
		found.EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := collapseWhitespace(s.Text())
			entries = append(entries, models.HeadingEntry{Text: text, Length: runeLen(text)})
			return len(entries) < 10
		})
		info.ByLevel[fmt.Sprintf("h%d", i+1)] = entries

		if i == 0 {
			info.H1Count = n
		}
	}
	info.ProperH1Usage = info.H1Count == 1
	return info
}

// paragraphsInfo keeps paragraphs with more than 10 characters of text,
// reporting the first 20 and the average word count over all of them.
func paragraphsInfo(p *page) models.ParagraphsInfo {
	info := models.ParagraphsInfo{Paragraphs: []models.ParagraphEntry{}}
	totalWords := 0

	p.doc.FindMatcher(selParagraph).Each(func(_ int, s *goquery.Selection) {
		text := collapseWhitespace(s.Text())
		if runeLen(text) <= 10 {
			return
		}
		wc := len(strings.Fields(text))
		info.TotalParagraphs++
		totalWords += wc
		if len(info.Paragraphs) < 20 {
			info.Paragraphs = append(info.Paragraphs, models.ParagraphEntry{
				Text:      excerpt(text, 200),
				WordCount: wc,
				HasLinks:  s.FindMatcher(selAnchor).Length() > 0,
			})
		}
	})

	if info.TotalParagraphs > 0 {
		info.AverageLength = float64(totalWords) / float64(info.TotalParagraphs)
	}
	return info
}

// listsInfo inventories ul/ol elements that have direct li children.
func listsInfo(p *page) models.ListsInfo {
	info := models.ListsInfo{Lists: []models.ListEntry{}}

	p.doc.FindMatcher(selList).Each(func(_ int, s *goquery.Selection) {
		items := s.ChildrenMatcher(selListItem)
		n := items.Length()
		if n == 0 {
			return
		}
		info.TotalLists++
		info.TotalListItems += n
		if len(info.Lists) < 10 {
			entry := models.ListEntry{Type: goquery.NodeName(s), ItemCount: n, Items: []string{}}
			items.EachWithBreak(func(_ int, li *goquery.Selection) bool {
				entry.Items = append(entry.Items, clip(collapseWhitespace(li.Text()), 100))
				return len(entry.Items) < 10
			})
			info.Lists = append(info.Lists, entry)
		}
	})
	return info
}

// tablesInfo inventories table elements.
func tablesInfo(p *page) models.TablesInfo {
	info := models.TablesInfo{Tables: []models.TableEntry{}}

	p.doc.FindMatcher(selTable).Each(func(_ int, s *goquery.Selection) {
		headers := s.FindMatcher(selTableHead).Length()
		entry := models.TableEntry{
			RowCount:    s.FindMatcher(selTableRow).Length(),
			HasHeaders:  headers > 0,
			HeaderCount: headers,
			Caption:     collapseWhitespace(s.FindMatcher(selCaption).First().Text()),
		}
		info.Tables = append(info.Tables, entry)
		info.TotalTables++
		if entry.HasHeaders {
			info.TablesWithHeaders++
		}
	})
	return info
}

// contentSections measures text volume per semantic element type,
// reporting only the types that occur.
func contentSections(p *page) map[string]models.SectionUsage {
	sections := map[string]models.SectionUsage{}
	for _, name := range semanticSections {
		found := p.doc.Find(name)
		if found.Length() == 0 {
			continue
		}
		usage := models.SectionUsage{Count: found.Length()}
		found.Each(func(_ int, s *goquery.Selection) {
			usage.TotalTextLength += runeLen(strings.TrimSpace(s.Text()))
		})
		sections[name] = usage
	}
	return sections
}

// textDensity is the visible-text to raw-HTML size ratio, 3 decimals.
func textDensity(p *page) float64 {
	if len(p.snap.HTML) == 0 {
		return 0
	}
	return round3(float64(len(p.text)) / float64(len(p.snap.HTML)))
}

// docText extracts visible text straight from the parsed tree, skipping
// non-rendered containers. Fallback for snapshots without RenderedText.
func docText(doc *goquery.Document) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		case n.Type == html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript", "template", "head":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return b.String()
}
