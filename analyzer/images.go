package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/RickBillie-pixel/scraper/models"
)

// maxImageEntries caps the per-image samples in the report.
const maxImageEntries = 30

// imageFormats are the extensions recognised in src paths, checked in
// declaration order.
var imageFormats = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".avif"}

// imagesAnalysis inventories img elements: sources resolved absolute,
// alt coverage, loading behaviour and the format distribution. Detail
// entries exist only for images with a src; total counts cover all.
func imagesAnalysis(p *page) models.ImagesAnalysis {
	ia := models.ImagesAnalysis{
		Images:             []models.ImageEntry{},
		FormatDistribution: map[string]int{},
	}

	imgs := p.doc.FindMatcher(selImage)
	ia.TotalImages = imgs.Length()

	imgs.Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if src == "" {
			return
		}

		abs := src
		if resolved, err := p.base.Parse(src); err == nil {
			abs = resolved.String()
		}

		alt := s.AttrOr("alt", "")
		loading := s.AttrOr("loading", "")

		entry := models.ImageEntry{
			Src:          abs,
			Alt:          alt,
			AltLength:    runeLen(alt),
			HasAlt:       alt != "",
			Title:        s.AttrOr("title", ""),
			Width:        s.AttrOr("width", ""),
			Height:       s.AttrOr("height", ""),
			Loading:      loading,
			Format:       imageFormat(src),
			IsLazyLoaded: loading == "lazy",
			HasSrcset:    s.AttrOr("srcset", "") != "",
		}

		if entry.HasAlt {
			ia.ImagesWithAlt++
		} else {
			ia.ImagesWithoutAlt++
		}
		if entry.IsLazyLoaded {
			ia.LazyLoadedImages++
		}
		if entry.HasSrcset {
			ia.ResponsiveImages++
		}
		ia.FormatDistribution[entry.Format]++

		if len(ia.Images) < maxImageEntries {
			ia.Images = append(ia.Images, entry)
		}
	})

	return ia
}

// imageFormat recognises the format from the src path, "unknown" when no
// known extension appears.
func imageFormat(src string) string {
	lower := strings.ToLower(src)
	for _, ext := range imageFormats {
		if strings.Contains(lower, ext) {
			return ext[1:]
		}
	}
	return "unknown"
}
