package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/RickBillie-pixel/scraper/models"
)

// performanceAnalysis reports page weight, resource counts and static
// optimization indicators; browser timing is attached when the snapshot
// carries it.
func performanceAnalysis(p *page) models.PerformanceAnalysis {
	size := len(p.snap.HTML)

	opt := models.OptimizationIndicators{}
	p.doc.FindMatcher(selImage).Each(func(_ int, s *goquery.Selection) {
		if s.AttrOr("loading", "") == "lazy" {
			opt.LazyLoadedImages++
		}
		if s.AttrOr("srcset", "") != "" {
			opt.ResponsiveImages++
		}
	})
	p.doc.FindMatcher(selStylesheet).Each(func(_ int, s *goquery.Selection) {
		if strings.Contains(s.AttrOr("href", ""), "min.css") {
			opt.Minified.CSS++
		}
	})
	p.doc.FindMatcher(selScriptSrc).Each(func(_ int, s *goquery.Selection) {
		if strings.Contains(s.AttrOr("src", ""), "min.js") {
			opt.Minified.JS++
		}
	})

	return models.PerformanceAnalysis{
		PageSize: models.PageSize{
			HTMLSizeBytes: size,
			HTMLSizeKB:    round2(float64(size) / 1024),
		},
		Resources: models.ResourceCounts{
			TotalImages:           p.doc.FindMatcher(selImage).Length(),
			ExternalScripts:       countExternal(p.doc.FindMatcher(selScriptSrc), "src"),
			ExternalStylesheets:   countExternal(p.doc.FindMatcher(selStylesheet), "href"),
			TotalRequestsEstimate: p.doc.Find("img, script, link, iframe").Length(),
		},
		Optimization: opt,
		Timing:       p.snap.Timing,
	}
}
