package analyzer

import (
	"testing"

	"github.com/RickBillie-pixel/scraper/models"
)

func TestSEOScore_Perfect(t *testing.T) {
	sa := models.SEOAnalysis{
		TitleAnalysis:   models.TitleAnalysis{Title: "t", IsOptimalLength: true},
		MetaDescription: models.MetaDescription{Exists: true, IsOptimalLength: true},
		RobotsMeta:      models.RobotsMeta{IsIndexable: true, IsFollowable: true},
		CanonicalURL:    models.CanonicalInfo{Exists: true},
		HeadingStruct:   models.HeadingStructure{H1Count: 1, ProperH1Usage: true},
		ImageSEO:        models.ImageSEO{TotalImages: 4, ImagesWithAlt: 4},
		ContentMetrics:  models.ContentMetrics{WordCount: 800, IsSufficientContent: true},
		StructuredSEO:   models.StructuredDataSEO{HasJSONLD: true, HasMicrodata: true, HasOpenGraph: true},
	}

	if got := seoScore(&sa); got != 100 {
		t.Errorf("seoScore = %d, want 100", got)
	}
}

func TestSEOScore_Fallbacks(t *testing.T) {
	// Present-but-suboptimal signals earn the reduced weights:
	// title 10, description 8, multiple h1 8, half alt coverage 5.
	sa := models.SEOAnalysis{
		TitleAnalysis:   models.TitleAnalysis{Title: "An overly long page title that runs well past sixty characters in total"},
		MetaDescription: models.MetaDescription{Exists: true},
		HeadingStruct:   models.HeadingStructure{H1Count: 3},
		ImageSEO:        models.ImageSEO{TotalImages: 4, ImagesWithAlt: 2},
	}

	if got := seoScore(&sa); got != 31 {
		t.Errorf("seoScore = %d, want 31", got)
	}
}

func TestSEOScore_NoImages(t *testing.T) {
	// The alt coverage block is skipped entirely on image-free pages,
	// so the maximum without images is 90.
	sa := models.SEOAnalysis{
		TitleAnalysis:   models.TitleAnalysis{Title: "t", IsOptimalLength: true},
		MetaDescription: models.MetaDescription{Exists: true, IsOptimalLength: true},
		RobotsMeta:      models.RobotsMeta{IsIndexable: true},
		CanonicalURL:    models.CanonicalInfo{Exists: true},
		HeadingStruct:   models.HeadingStructure{H1Count: 1, ProperH1Usage: true},
		ContentMetrics:  models.ContentMetrics{IsSufficientContent: true},
		StructuredSEO:   models.StructuredDataSEO{HasJSONLD: true, HasMicrodata: true, HasOpenGraph: true},
	}

	if got := seoScore(&sa); got != 90 {
		t.Errorf("seoScore = %d, want 90", got)
	}
}

func TestAccessibilityScore_Full(t *testing.T) {
	aa := models.AccessibilityAnalysis{}
	aa.Images.TotalImages = 4
	aa.Images.ImagesWithAlt = 4
	aa.Links.TotalLinks = 10
	aa.Links.LinksWithText = 10
	aa.Headings.H1Count = 1
	aa.Headings.ProperH1Usage = true
	aa.Language.HTMLHasLang = true
	aa.ARIA.ElementsWithAriaLabel = 2
	aa.ARIA.ElementsWithRole = 3
	aa.Forms.TotalForms = 1
	aa.Forms.FormsWithLabels = 1

	if got := accessibilityScore(&aa); got != 100 {
		t.Errorf("accessibilityScore = %d, want 100", got)
	}
}

func TestAccessibilityScore_NoImagesNoForms(t *testing.T) {
	// Image-free and form-free pages earn those blocks in full; the
	// link-text block contributes nothing without links.
	aa := models.AccessibilityAnalysis{}
	aa.Headings.H1Count = 1
	aa.Headings.ProperH1Usage = true
	aa.Language.HTMLHasLang = true

	if got := accessibilityScore(&aa); got != 70 {
		t.Errorf("accessibilityScore = %d, want 70", got)
	}
}

func TestAccessibilityScore_PartialCoverage(t *testing.T) {
	// Half alt coverage 12, half link text 10, multiple h1 10, some
	// labeled forms 5.
	aa := models.AccessibilityAnalysis{}
	aa.Images.TotalImages = 4
	aa.Images.ImagesWithAlt = 2
	aa.Links.TotalLinks = 10
	aa.Links.LinksWithText = 5
	aa.Headings.H1Count = 3
	aa.Forms.TotalForms = 2
	aa.Forms.FormsWithLabels = 1

	if got := accessibilityScore(&aa); got != 37 {
		t.Errorf("accessibilityScore = %d, want 37", got)
	}
}

func TestPerformanceScore(t *testing.T) {
	tests := []struct {
		name string
		pa   models.PerformanceAnalysis
		want int
	}{
		{
			// 20 size + 25 image-free + 20 asset-free + 35 requests.
			name: "small static page",
			pa: models.PerformanceAnalysis{
				PageSize:  models.PageSize{HTMLSizeKB: 42},
				Resources: models.ResourceCounts{TotalRequestsEstimate: 10},
			},
			want: 100,
		},
		{
			// 5 size + 0 unoptimized images + 0 unminified + 5 requests.
			name: "heavy unoptimized page",
			pa: models.PerformanceAnalysis{
				PageSize: models.PageSize{HTMLSizeKB: 1200},
				Resources: models.ResourceCounts{
					TotalImages:           10,
					ExternalStylesheets:   4,
					ExternalScripts:       5,
					TotalRequestsEstimate: 200,
				},
			},
			want: 10,
		},
		{
			// 15 size + 12 half-optimized images + 10 half-minified +
			// 25 requests.
			name: "partially optimized page",
			pa: models.PerformanceAnalysis{
				PageSize: models.PageSize{HTMLSizeKB: 300},
				Resources: models.ResourceCounts{
					TotalImages:           4,
					ExternalStylesheets:   2,
					ExternalScripts:       2,
					TotalRequestsEstimate: 75,
				},
				Optimization: models.OptimizationIndicators{
					LazyLoadedImages: 2,
					ResponsiveImages: 2,
					Minified:         models.MinifiedResources{CSS: 1, JS: 1},
				},
			},
			want: 62,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := performanceScore(&tt.pa); got != tt.want {
				t.Errorf("performanceScore = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMobileScore(t *testing.T) {
	full := models.MobileAnalysis{
		ViewportMeta: models.ViewportMeta{Exists: true, IsResponsive: true},
	}
	full.MobileElements.TouchIcons = 2
	full.ResponsiveIndicators.ResponsiveImages = 3
	full.ResponsiveIndicators.FlexibleLayouts = 5
	if got := mobileScore(&full); got != 100 {
		t.Errorf("fully mobile page = %d, want 100", got)
	}

	responsive := models.MobileAnalysis{
		ViewportMeta: models.ViewportMeta{Exists: true, IsResponsive: true},
	}
	if got := mobileScore(&responsive); got != 40 {
		t.Errorf("responsive viewport only = %d, want 40", got)
	}

	bare := models.MobileAnalysis{
		ViewportMeta: models.ViewportMeta{Exists: true, Content: "width=1024"},
	}
	if got := mobileScore(&bare); got != 20 {
		t.Errorf("fixed-width viewport = %d, want 20", got)
	}

	if got := mobileScore(&models.MobileAnalysis{}); got != 0 {
		t.Errorf("no mobile signals = %d, want 0", got)
	}
}

func TestSecurityScore(t *testing.T) {
	hardened := models.SecurityAnalysis{
		HTTPSUsage: true,
		SecurityHeaders: map[string]bool{
			"Strict-Transport-Security": true,
			"Content-Security-Policy":   true,
			"X-Frame-Options":           true,
			"X-Content-Type-Options":    true,
			"Referrer-Policy":           true,
		},
	}
	if got := securityScore(&hardened); got != 100 {
		t.Errorf("hardened = %d, want 100", got)
	}

	// Plain http, 2 of 5 headers (16), mixed content (0), half the
	// forms posting to https (5).
	weak := models.SecurityAnalysis{
		SecurityHeaders: map[string]bool{
			"Strict-Transport-Security": true,
			"Content-Security-Policy":   false,
			"X-Frame-Options":           true,
			"X-Content-Type-Options":    false,
			"Referrer-Policy":           false,
		},
		MixedContent: models.MixedContent{HTTPResources: 3},
		FormSecurity: models.FormSecurity{TotalForms: 2, FormsWithHTTPSAction: 1},
	}
	if got := securityScore(&weak); got != 21 {
		t.Errorf("weak = %d, want 21", got)
	}
}

func TestContentScore_Rich(t *testing.T) {
	ca := models.ContentAnalysis{
		WordCount:   1200,
		ReadingTime: 6,
		TextDensity: 0.15,
		Headings:    models.HeadingsInfo{ProperH1Usage: true, TotalHeadings: 8},
		Multimedia:  models.MultimediaCounts{Images: 4, Videos: 1},
		Lists:       models.ListsInfo{TotalLists: 2},
		Tables:      models.TablesInfo{TotalTables: 1},
	}

	if got := contentScore(&ca); got != 100 {
		t.Errorf("contentScore = %d, want 100", got)
	}
}

func TestContentScore_Thin(t *testing.T) {
	// 5 words + 0 headings + 0 diversity + 5 density + 10 reading time.
	ca := models.ContentAnalysis{WordCount: 50, ReadingTime: 1, TextDensity: 0.01}

	if got := contentScore(&ca); got != 20 {
		t.Errorf("contentScore = %d, want 20", got)
	}
}

func TestContentScore_WordTiers(t *testing.T) {
	// With everything else zero the floor contributions are density 5
	// and reading time 5, so score = word tier + 10.
	tests := []struct {
		words int
		want  int
	}{
		{1500, 35},
		{600, 30},
		{350, 25},
		{150, 20},
		{40, 15},
	}

	for _, tt := range tests {
		ca := models.ContentAnalysis{WordCount: tt.words}
		if got := contentScore(&ca); got != tt.want {
			t.Errorf("contentScore(words=%d) = %d, want %d", tt.words, got, tt.want)
		}
	}
}

func TestBuildSummary(t *testing.T) {
	r := &models.AnalysisReport{
		TechStack: &models.TechStackReport{
			Categories: map[string]map[string]models.TechnologyDetection{
				"cms":       {"WordPress": {Name: "WordPress"}},
				"analytics": {"Google Analytics": {Name: "Google Analytics"}},
			},
			ServerInfo: models.ServerInfo{Server: "nginx", CDN: "Cloudflare"},
			Summary: models.TechSummary{
				TotalTechnologies: 2,
				CMSDetected:       []string{"WordPress"},
				HasCMS:            true,
				HasAnalytics:      true,
			},
		},
		StructuredData: &models.StructuredDataReport{
			Summary: models.StructuredDataSummary{HasStructuredData: true},
		},
	}
	r.PageInfo.IsSSL = true
	r.PageInfo.PageType = "blog"
	r.ContentAnalysis.WordCount = 450
	r.ContentAnalysis.ReadingTime = 3
	r.ContentAnalysis.Multimedia.Images = 7
	r.ContentAnalysis.Headings.ProperH1Usage = true
	r.MobileAnalysis.ViewportMeta.IsResponsive = true
	r.ImagesAnalysis.TotalImages = 7
	r.LinksAnalysis.TotalLinks = 31

	s := buildSummary(r)

	if s.KeyFindings.MainCMS != "WordPress" {
		t.Errorf("main cms = %q, want WordPress", s.KeyFindings.MainCMS)
	}
	if !s.KeyFindings.HasCMS || !s.KeyFindings.HasAnalytics || !s.KeyFindings.HasStructuredData {
		t.Errorf("key findings = %+v", s.KeyFindings)
	}
	if !s.KeyFindings.IsMobileFriendly || !s.KeyFindings.HasSSL {
		t.Errorf("key findings = %+v", s.KeyFindings)
	}
	if s.KeyFindings.ContentLength != 450 || s.KeyFindings.TotalImages != 7 || s.KeyFindings.TotalLinks != 31 {
		t.Errorf("key findings = %+v", s.KeyFindings)
	}

	cats := s.Technology.MainCategories
	if len(cats) != 2 || cats[0] != "cms" || cats[1] != "analytics" {
		t.Errorf("main categories = %v, want [cms analytics]", cats)
	}
	if s.Technology.ServerTechnology != "nginx" || s.Technology.CDNUsage != "Cloudflare" {
		t.Errorf("technology summary = %+v", s.Technology)
	}

	if s.Content.ContentType != "blog" {
		t.Errorf("content type = %q", s.Content.ContentType)
	}
	if !s.Content.HasSufficientContent || !s.Content.MultimediaRich || !s.Content.WellStructured {
		t.Errorf("content summary = %+v", s.Content)
	}
	if s.Content.ReadingTimeMinutes != 3 {
		t.Errorf("reading time = %d", s.Content.ReadingTimeMinutes)
	}
}

func TestBuildSummary_NoCMS(t *testing.T) {
	r := &models.AnalysisReport{
		TechStack:      &models.TechStackReport{},
		StructuredData: &models.StructuredDataReport{},
	}

	s := buildSummary(r)
	if s.KeyFindings.MainCMS != "None" {
		t.Errorf("main cms = %q, want None", s.KeyFindings.MainCMS)
	}
	if len(s.Technology.MainCategories) != 0 {
		t.Errorf("main categories = %v, want empty", s.Technology.MainCategories)
	}
}

func TestRecommendations_CapAndOrder(t *testing.T) {
	// Every rule fires on this report; the list is capped at ten, so
	// the lowest-priority advice falls off the end.
	r := &models.AnalysisReport{
		StructuredData: &models.StructuredDataReport{},
	}
	r.PerformanceAnalysis.PageSize.HTMLSizeKB = 800
	r.PerformanceAnalysis.Resources.TotalImages = 8
	r.AccessibilityAnalysis.Images.ImagesWithoutAlt = 3
	r.SecurityAnalysis.SecurityHeaders = map[string]bool{
		"X-Frame-Options":           false,
		"Content-Security-Policy":   false,
		"Strict-Transport-Security": true,
	}

	recs := recommendations(r)
	if len(recs) != maxRecommendations {
		t.Fatalf("recommendations = %d, want %d", len(recs), maxRecommendations)
	}
	if recs[0] != "Optimize title length to 30-60 characters for better SEO" {
		t.Errorf("first = %q", recs[0])
	}

	want := "Add alt text to 3 images for accessibility"
	found := false
	for _, rec := range recs {
		if rec == want {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected %q in %v", want, recs)
	}

	// Missing header names are sorted so repeated runs agree.
	last := recs[len(recs)-1]
	if last != "Add security headers: Content-Security-Policy, X-Frame-Options" {
		t.Errorf("last = %q", last)
	}
}

func TestRecommendations_CleanPage(t *testing.T) {
	r := &models.AnalysisReport{
		StructuredData: &models.StructuredDataReport{
			Summary: models.StructuredDataSummary{HasStructuredData: true},
		},
	}
	r.SEOAnalysis.TitleAnalysis.IsOptimalLength = true
	r.SEOAnalysis.MetaDescription.IsOptimalLength = true
	r.SEOAnalysis.HeadingStruct.ProperH1Usage = true
	r.PerformanceAnalysis.PageSize.HTMLSizeKB = 40
	r.PerformanceAnalysis.Resources.TotalImages = 2
	r.AccessibilityAnalysis.Language.HTMLHasLang = true
	r.MobileAnalysis.ViewportMeta.IsResponsive = true
	r.SecurityAnalysis.HTTPSUsage = true
	r.SecurityAnalysis.SecurityHeaders = map[string]bool{"X-Frame-Options": true}

	if recs := recommendations(r); len(recs) != 0 {
		t.Errorf("expected no recommendations, got %v", recs)
	}
}
