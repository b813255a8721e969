package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/RickBillie-pixel/scraper/models"
	"github.com/RickBillie-pixel/scraper/techstack"
)

// maxRecommendations caps the advice list.
const maxRecommendations = 10

// categoryDisplayOrder fixes the order of main_categories in the summary.
var categoryDisplayOrder = []techstack.Category{
	techstack.CategoryCMS,
	techstack.CategoryFramework,
	techstack.CategoryCSSFramework,
	techstack.CategoryLibrary,
	techstack.CategoryAnalytics,
	techstack.CategorySEO,
	techstack.CategoryCDN,
	techstack.CategorySecurity,
	techstack.CategoryPerformance,
}

// buildSummary rolls the per-section results into the overall scores,
// key findings and recommendations.
func buildSummary(r *models.AnalysisReport) models.AnalysisSummary {
	mainCMS := "None"
	if len(r.TechStack.Summary.CMSDetected) > 0 {
		mainCMS = r.TechStack.Summary.CMSDetected[0]
	}

	mainCategories := []string{}
	for _, cat := range categoryDisplayOrder {
		if len(r.TechStack.Categories[string(cat)]) > 0 {
			mainCategories = append(mainCategories, string(cat))
		}
	}

	return models.AnalysisSummary{
		OverallScores: models.OverallScores{
			SEOScore:            r.SEOAnalysis.SEOScore,
			AccessibilityScore:  accessibilityScore(&r.AccessibilityAnalysis),
			PerformanceScore:    performanceScore(&r.PerformanceAnalysis),
			MobileScore:         mobileScore(&r.MobileAnalysis),
			SecurityScore:       securityScore(&r.SecurityAnalysis),
			ContentQualityScore: contentScore(&r.ContentAnalysis),
		},
		KeyFindings: models.KeyFindings{
			HasCMS:            r.TechStack.Summary.HasCMS,
			MainCMS:           mainCMS,
			HasAnalytics:      r.TechStack.Summary.HasAnalytics,
			HasStructuredData: r.StructuredData.Summary.HasStructuredData,
			IsMobileFriendly:  r.MobileAnalysis.ViewportMeta.IsResponsive,
			HasSSL:            r.PageInfo.IsSSL,
			ContentLength:     r.ContentAnalysis.WordCount,
			TotalImages:       r.ImagesAnalysis.TotalImages,
			TotalLinks:        r.LinksAnalysis.TotalLinks,
		},
		Recommendations: recommendations(r),
		Technology: models.TechnologySummary{
			TotalTechnologiesDetected: r.TechStack.Summary.TotalTechnologies,
			MainCategories:            mainCategories,
			ServerTechnology:          r.TechStack.ServerInfo.Server,
			CDNUsage:                  r.TechStack.ServerInfo.CDN,
		},
		Content: models.ContentSummary{
			ContentType:          r.PageInfo.PageType,
			ReadingTimeMinutes:   r.ContentAnalysis.ReadingTime,
			HasSufficientContent: r.ContentAnalysis.WordCount >= 300,
			MultimediaRich:       r.ContentAnalysis.Multimedia.Images > 5,
			WellStructured:       r.ContentAnalysis.Headings.ProperH1Usage,
		},
	}
}

// accessibilityScore: alt coverage 25, link text 20, heading structure
// 20, lang 15, ARIA 10, form labels 10. Image-free and form-free pages
// earn those blocks in full.
func accessibilityScore(aa *models.AccessibilityAnalysis) int {
	score := 0

	if total := aa.Images.TotalImages; total > 0 {
		score += int(float64(aa.Images.ImagesWithAlt) / float64(total) * 25)
	} else {
		score += 25
	}

	if total := aa.Links.TotalLinks; total > 0 {
		score += int(float64(aa.Links.LinksWithText) / float64(total) * 20)
	}

	switch {
	case aa.Headings.ProperH1Usage:
		score += 20
	case aa.Headings.H1Count > 0:
		score += 10
	}

	if aa.Language.HTMLHasLang {
		score += 15
	}

	if aa.ARIA.ElementsWithAriaLabel > 0 {
		score += 5
	}
	if aa.ARIA.ElementsWithRole > 0 {
		score += 5
	}

	switch total := aa.Forms.TotalForms; {
	case total == 0:
		score += 10
	case aa.Forms.FormsWithLabels == total:
		score += 10
	case aa.Forms.FormsWithLabels > 0:
		score += 5
	}

	return min(score, 100)
}

// performanceScore: HTML size 20, image optimization 25, minification
// 20, request count 35.
func performanceScore(pa *models.PerformanceAnalysis) int {
	score := 0

	switch kb := pa.PageSize.HTMLSizeKB; {
	case kb < 100:
		score += 20
	case kb < 500:
		score += 15
	case kb < 1000:
		score += 10
	default:
		score += 5
	}

	if total := pa.Resources.TotalImages; total > 0 {
		lazy := float64(pa.Optimization.LazyLoadedImages) / float64(total)
		responsive := float64(pa.Optimization.ResponsiveImages) / float64(total)
		score += int((lazy + responsive) / 2 * 25)
	} else {
		score += 25
	}

	cssScore := 10.0
	if total := pa.Resources.ExternalStylesheets; total > 0 {
		cssScore = float64(pa.Optimization.Minified.CSS) / float64(total) * 10
	}
	jsScore := 10.0
	if total := pa.Resources.ExternalScripts; total > 0 {
		jsScore = float64(pa.Optimization.Minified.JS) / float64(total) * 10
	}
	score += int(cssScore + jsScore)

	switch requests := pa.Resources.TotalRequestsEstimate; {
	case requests < 50:
		score += 35
	case requests < 100:
		score += 25
	case requests < 150:
		score += 15
	default:
		score += 5
	}

	return min(score, 100)
}

// mobileScore: responsive viewport 40 (bare viewport 20), touch icons
// 20, responsive images 20, flexible layouts 20.
func mobileScore(ma *models.MobileAnalysis) int {
	score := 0

	switch {
	case ma.ViewportMeta.IsResponsive:
		score += 40
	case ma.ViewportMeta.Exists:
		score += 20
	}

	if ma.MobileElements.TouchIcons > 0 {
		score += 20
	}
	if ma.ResponsiveIndicators.ResponsiveImages > 0 {
		score += 20
	}
	if ma.ResponsiveIndicators.FlexibleLayouts > 0 {
		score += 20
	}

	return min(score, 100)
}

// securityScore: HTTPS 30, header coverage 40, no mixed content 20,
// form transport 10.
func securityScore(sa *models.SecurityAnalysis) int {
	score := 0

	if sa.HTTPSUsage {
		score += 30
	}

	if n := len(sa.SecurityHeaders); n > 0 {
		present := 0
		for _, ok := range sa.SecurityHeaders {
			if ok {
				present++
			}
		}
		score += int(float64(present) / float64(n) * 40)
	}

	if sa.MixedContent.HTTPResources == 0 {
		score += 20
	}

	if total := sa.FormSecurity.TotalForms; total == 0 {
		score += 10
	} else {
		score += int(float64(sa.FormSecurity.FormsWithHTTPSAction) / float64(total) * 10)
	}

	return min(score, 100)
}

// contentScore: word count 25, heading structure 20, diversity 25,
// density 15, reading time 15.
func contentScore(ca *models.ContentAnalysis) int {
	score := 0

	switch wc := ca.WordCount; {
	case wc >= 1000:
		score += 25
	case wc >= 500:
		score += 20
	case wc >= 300:
		score += 15
	case wc >= 100:
		score += 10
	default:
		score += 5
	}

	if ca.Headings.ProperH1Usage {
		score += 10
	}
	if ca.Headings.TotalHeadings > 3 {
		score += 10
	}

	diversity := 0
	if ca.Multimedia.Images > 0 {
		diversity += 8
	}
	if ca.Multimedia.Videos > 0 {
		diversity += 8
	}
	if ca.Lists.TotalLists > 0 {
		diversity += 5
	}
	if ca.Tables.TotalTables > 0 {
		diversity += 4
	}
	score += min(diversity, 25)

	switch {
	case ca.TextDensity > 0.1:
		score += 15
	case ca.TextDensity > 0.05:
		score += 10
	default:
		score += 5
	}

	switch rt := ca.ReadingTime; {
	case rt >= 2 && rt <= 10:
		score += 15
	case rt >= 1 && rt <= 15:
		score += 10
	default:
		score += 5
	}

	return min(score, 100)
}

// recommendations derives rule-based advice from the weakest findings,
// capped at maxRecommendations. Missing header names are sorted so the
// output is stable.
func recommendations(r *models.AnalysisReport) []string {
	recs := []string{}

	if !r.SEOAnalysis.TitleAnalysis.IsOptimalLength {
		recs = append(recs, "Optimize title length to 30-60 characters for better SEO")
	}
	if !r.SEOAnalysis.MetaDescription.IsOptimalLength {
		recs = append(recs, "Add or optimize meta description (120-160 characters)")
	}
	if !r.SEOAnalysis.HeadingStruct.ProperH1Usage {
		recs = append(recs, "Use exactly one H1 tag per page for better SEO structure")
	}

	if r.PerformanceAnalysis.PageSize.HTMLSizeKB > 500 {
		recs = append(recs, "Consider reducing HTML size for better loading performance")
	}
	if r.PerformanceAnalysis.Optimization.LazyLoadedImages == 0 &&
		r.PerformanceAnalysis.Resources.TotalImages > 5 {
		recs = append(recs, "Implement lazy loading for images to improve page speed")
	}

	if n := r.AccessibilityAnalysis.Images.ImagesWithoutAlt; n > 0 {
		recs = append(recs, fmt.Sprintf("Add alt text to %d images for accessibility", n))
	}
	if !r.AccessibilityAnalysis.Language.HTMLHasLang {
		recs = append(recs, "Add lang attribute to HTML element for accessibility")
	}

	if !r.MobileAnalysis.ViewportMeta.IsResponsive {
		recs = append(recs, "Add responsive viewport meta tag for mobile optimization")
	}

	if !r.SecurityAnalysis.HTTPSUsage {
		recs = append(recs, "Implement HTTPS for security and SEO benefits")
	}
	missing := []string{}
	for name, present := range r.SecurityAnalysis.SecurityHeaders {
		if !present {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		recs = append(recs, "Add security headers: "+strings.Join(missing, ", "))
	}

	if !r.StructuredData.Summary.HasStructuredData {
		recs = append(recs, "Add structured data (JSON-LD) to improve search engine understanding")
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}
