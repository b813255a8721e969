package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/RickBillie-pixel/scraper/models"
)

// seoAnalysis runs the on-page SEO checks and computes the weighted score.
func seoAnalysis(p *page) models.SEOAnalysis {
	title := strings.TrimSpace(p.doc.FindMatcher(selTitle).First().Text())
	titleLen := runeLen(title)

	descSel := p.doc.FindMatcher(selMetaDescription)
	desc := descSel.AttrOr("content", "")
	descLen := runeLen(desc)

	robots := p.doc.FindMatcher(selMetaRobots).AttrOr("content", "")
	robotsLower := strings.ToLower(robots)

	canonical, hasCanonical := p.doc.FindMatcher(selCanonical).Attr("href")

	h1 := p.doc.FindMatcher(selHeadingLevel[0]).Length()
	wc := len(strings.Fields(p.text))

	sa := models.SEOAnalysis{
		TitleAnalysis: models.TitleAnalysis{
			Title:           title,
			Length:          titleLen,
			WordCount:       len(strings.Fields(title)),
			IsOptimalLength: titleLen >= 30 && titleLen <= 60,
		},
		MetaDescription: models.MetaDescription{
			Description:     desc,
			Length:          descLen,
			IsOptimalLength: descLen >= 120 && descLen <= 160,
			Exists:          descSel.Length() > 0,
		},
		RobotsMeta: models.RobotsMeta{
			Content:      robots,
			IsIndexable:  !strings.Contains(robotsLower, "noindex"),
			IsFollowable: !strings.Contains(robotsLower, "nofollow"),
		},
		CanonicalURL: models.CanonicalInfo{
			Exists: hasCanonical,
			URL:    canonical,
		},
		HeadingStruct: models.HeadingStructure{
			H1Count:       h1,
			H2Count:       p.doc.FindMatcher(selHeadingLevel[1]).Length(),
			H3Count:       p.doc.FindMatcher(selHeadingLevel[2]).Length(),
			ProperH1Usage: h1 == 1,
		},
		ImageSEO: imageSEO(p),
		ContentMetrics: models.ContentMetrics{
			WordCount:           wc,
			IsSufficientContent: wc >= 300,
		},
		StructuredSEO: structuredSEO(p),
	}

	sa.SEOScore = seoScore(&sa)
	return sa
}

// imageSEO measures alt coverage. An image counts as having alt when the
// attribute is present, even empty; the quality breakdown separates the
// empty case.
func imageSEO(p *page) models.ImageSEO {
	imgs := p.doc.FindMatcher(selImage)
	quality := models.AltQuality{}
	withAlt := 0

	imgs.Each(func(_ int, s *goquery.Selection) {
		alt, ok := s.Attr("alt")
		switch {
		case !ok:
			quality.MissingAlt++
		case alt == "":
			quality.EmptyAlt++
			withAlt++
		default:
			withAlt++
			if n := runeLen(alt); n >= 10 && n <= 125 {
				quality.OptimalLengthAlt++
			}
			if len(strings.Fields(alt)) >= 3 {
				quality.DescriptiveAlt++
			}
		}
	})

	return models.ImageSEO{
		TotalImages:      imgs.Length(),
		ImagesWithAlt:    withAlt,
		ImagesWithoutAlt: imgs.Length() - withAlt,
		AltTextQuality:   quality,
	}
}

// structuredSEO checks the presence of the formats search engines read.
func structuredSEO(p *page) models.StructuredDataSEO {
	hasJSONLD := false
	p.doc.FindMatcher(selScript).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(s.AttrOr("type", "")), "ld+json") {
			hasJSONLD = true
			return false
		}
		return true
	})

	hasOG := false
	p.doc.FindMatcher(selMeta).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.HasPrefix(strings.ToLower(s.AttrOr("property", "")), "og:") {
			hasOG = true
			return false
		}
		return true
	})

	return models.StructuredDataSEO{
		HasJSONLD:    hasJSONLD,
		HasMicrodata: p.doc.FindMatcher(selItemscope).Length() > 0,
		HasOpenGraph: hasOG,
	}
}

// seoScore weighs the checks into [0,100]: title 20, description 15,
// h1 usage 15, image alt coverage 10, content length 10, structured data
// 15, robots 5, canonical 10.
func seoScore(sa *models.SEOAnalysis) int {
	score := 0

	switch {
	case sa.TitleAnalysis.IsOptimalLength:
		score += 20
	case sa.TitleAnalysis.Title != "":
		score += 10
	}

	switch {
	case sa.MetaDescription.IsOptimalLength:
		score += 15
	case sa.MetaDescription.Exists:
		score += 8
	}

	switch {
	case sa.HeadingStruct.ProperH1Usage:
		score += 15
	case sa.HeadingStruct.H1Count > 0:
		score += 8
	}

	if total := sa.ImageSEO.TotalImages; total > 0 {
		score += int(float64(sa.ImageSEO.ImagesWithAlt) / float64(total) * 10)
	}

	if sa.ContentMetrics.IsSufficientContent {
		score += 10
	}

	if sa.StructuredSEO.HasJSONLD {
		score += 8
	}
	if sa.StructuredSEO.HasMicrodata {
		score += 4
	}
	if sa.StructuredSEO.HasOpenGraph {
		score += 3
	}

	if sa.RobotsMeta.IsIndexable {
		score += 5
	}

	if sa.CanonicalURL.Exists {
		score += 10
	}

	return min(score, 100)
}
