package analyzer

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/RickBillie-pixel/scraper/models"
	"github.com/RickBillie-pixel/scraper/techstack"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	reg, err := techstack.NewDefaultRegistry()
	if err != nil {
		t.Fatalf("NewDefaultRegistry: %v", err)
	}
	return New(reg)
}

func newSnapshot(htmlStr string) *models.PageSnapshot {
	return &models.PageSnapshot{
		URL:        "https://example.com/",
		FinalURL:   "https://example.com/",
		StatusCode: 200,
		Headers:    http.Header{},
		HTML:       htmlStr,
		FetchedAt:  time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
	}
}

const fixturePage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="description" content="Premium handmade oak furniture from our Amsterdam workshop, built to order and delivered across Europe. Browse chairs, tables and cabinets.">
<meta name="robots" content="index, follow">
<meta name="author" content="Jansen Meubels">
<meta property="og:title" content="Jansen Meubels">
<meta name="twitter:card" content="summary">
<title>Jansen Meubels - Handmade Oak Furniture Amsterdam</title>
<link rel="canonical" href="https://example.com/">
<link rel="stylesheet" href="/css/site.min.css">
<link rel="stylesheet" href="https://cdn.example.net/lib.css" media="screen">
<link rel="icon" href="/favicon.ico">
<link rel="apple-touch-icon" href="/touch.png" sizes="180x180">
<script src="/js/app.min.js" defer></script>
<script src="https://stats.example.org/t.js" async></script>
</head>
<body class="layout-grid">
<header><nav><a href="/">Home</a><a href="/shop/">Shop</a><a href="/contact">Contact</a></nav></header>
<main>
<h1>Handmade Oak Furniture</h1>
<h2>Chairs</h2>
<h2>Tables</h2>
<article>
<p>Every piece leaving our workshop is cut, joined and finished by hand from sustainably sourced European oak.</p>
<p>Visit the showroom or call <a href="tel:+31201234567">+31 20 123 4567</a> to discuss a commission. Mail <a href="mailto:info@example.com">info@example.com</a> for a quote.</p>
</article>
<ul><li>Dining chairs</li><li>Arm chairs</li></ul>
<table><caption>Lead times</caption><tr><th>Item</th><th>Weeks</th></tr><tr><td>Chair</td><td>4</td></tr></table>
<img src="/img/chair.jpg" alt="Oak dining chair with woven seat" loading="lazy" srcset="/img/chair-2x.jpg 2x">
<img src="/img/table.webp" alt="">
<img src="/img/logo.svg">
<form action="https://example.com/quote" method="post" id="quote">
<label for="email">Email</label>
<input type="email" name="email" required placeholder="you@example.com">
<textarea name="message"></textarea>
<input type="submit" value="Send">
</form>
<a href="https://facebook.com/jansenmeubels">Facebook</a>
<a href="https://partner.example.io/wood" rel="nofollow" title="Supplier">Our supplier</a>
<a href="#">Top</a>
<iframe src="https://www.google.com/maps/embed?pb=x"></iframe>
</main>
<footer><p>Jansen Meubels, Amsterdam</p></footer>
</body>
</html>`

func analyzeFixture(t *testing.T) *models.AnalysisReport {
	t.Helper()
	snap := newSnapshot(fixturePage)
	snap.Headers.Set("Server", "nginx/1.18.0")
	snap.Headers.Set("Strict-Transport-Security", "max-age=63072000")
	snap.Headers.Set("X-Frame-Options", "DENY")

	report, err := newTestAnalyzer(t).Analyze(snap, Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return report
}

func TestAnalyze_NilSnapshot(t *testing.T) {
	_, err := newTestAnalyzer(t).Analyze(nil, Options{})
	if err == nil {
		t.Fatal("expected error for nil snapshot")
	}
}

func TestAnalyze_PageInfo(t *testing.T) {
	r := analyzeFixture(t)

	pi := r.PageInfo
	if pi.Title != "Jansen Meubels - Handmade Oak Furniture Amsterdam" {
		t.Errorf("title = %q", pi.Title)
	}
	if pi.Domain != "example.com" {
		t.Errorf("domain = %q", pi.Domain)
	}
	if !pi.IsSSL {
		t.Error("is_ssl should be true for https")
	}
	if pi.Language != "en" {
		t.Errorf("language = %q", pi.Language)
	}
	if pi.Charset != "utf-8" {
		t.Errorf("charset = %q", pi.Charset)
	}
	if pi.PageType != "homepage" {
		t.Errorf("page_type = %q", pi.PageType)
	}
}

func TestAnalyze_MetaBuckets(t *testing.T) {
	r := analyzeFixture(t)

	md := r.MetaData
	if md.SEOMeta["description"] == "" {
		t.Error("description should land in seo_meta")
	}
	if md.SEOMeta["robots"] != "index, follow" {
		t.Errorf("robots = %q", md.SEOMeta["robots"])
	}
	if md.SocialMeta["og:title"] != "Jansen Meubels" {
		t.Errorf("og:title = %q", md.SocialMeta["og:title"])
	}
	if md.SocialMeta["twitter:card"] != "summary" {
		t.Errorf("twitter:card = %q", md.SocialMeta["twitter:card"])
	}
	if _, ok := md.TechnicalMeta["viewport"]; !ok {
		t.Error("viewport should land in technical_meta")
	}
	if len(md.Stylesheets) != 2 {
		t.Fatalf("stylesheets = %d, want 2", len(md.Stylesheets))
	}
	if md.Stylesheets[0].IsExternal {
		t.Error("relative stylesheet marked external")
	}
	if !md.Stylesheets[1].IsExternal {
		t.Error("absolute stylesheet not marked external")
	}
	if md.Stylesheets[1].Media != "screen" {
		t.Errorf("media = %q", md.Stylesheets[1].Media)
	}
	if len(md.Scripts) != 2 {
		t.Fatalf("scripts = %d, want 2", len(md.Scripts))
	}
	if !md.Scripts[0].Defer || md.Scripts[0].Async {
		t.Errorf("first script flags: async=%v defer=%v", md.Scripts[0].Async, md.Scripts[0].Defer)
	}
	if !md.Scripts[1].Async {
		t.Error("second script should be async")
	}
	if len(md.Favicons) != 2 {
		t.Errorf("favicons = %d, want 2", len(md.Favicons))
	}
}

func TestAnalyze_ContentSection(t *testing.T) {
	r := analyzeFixture(t)

	ca := r.ContentAnalysis
	if ca.WordCount == 0 {
		t.Fatal("word count should be non-zero")
	}
	if ca.ReadingTime < 1 {
		t.Errorf("reading time = %d, want >= 1", ca.ReadingTime)
	}
	if ca.Headings.H1Count != 1 || !ca.Headings.ProperH1Usage {
		t.Errorf("h1 count = %d, proper = %v", ca.Headings.H1Count, ca.Headings.ProperH1Usage)
	}
	if got := len(ca.Headings.ByLevel["h2"]); got != 2 {
		t.Errorf("h2 entries = %d, want 2", got)
	}
	if ca.Paragraphs.TotalParagraphs != 3 {
		t.Errorf("paragraphs = %d, want 3", ca.Paragraphs.TotalParagraphs)
	}
	if !ca.Paragraphs.Paragraphs[1].HasLinks {
		t.Error("second paragraph contains links")
	}
	if ca.Lists.TotalLists != 1 || ca.Lists.TotalListItems != 2 {
		t.Errorf("lists = %d items = %d", ca.Lists.TotalLists, ca.Lists.TotalListItems)
	}
	if ca.Tables.TotalTables != 1 || ca.Tables.TablesWithHeaders != 1 {
		t.Errorf("tables = %d with headers = %d", ca.Tables.TotalTables, ca.Tables.TablesWithHeaders)
	}
	if ca.Tables.Tables[0].Caption != "Lead times" {
		t.Errorf("caption = %q", ca.Tables.Tables[0].Caption)
	}
	if ca.Multimedia.Images != 3 || ca.Multimedia.Iframes != 1 {
		t.Errorf("multimedia = %+v", ca.Multimedia)
	}
	if _, ok := ca.ContentSections["main"]; !ok {
		t.Error("content_sections should include main")
	}
	if ca.Fingerprint == "" || len(ca.Fingerprint) != 16 {
		t.Errorf("fingerprint = %q, want 16 hex chars", ca.Fingerprint)
	}
	if ca.MainContent != nil {
		t.Error("main content should be nil when IncludeContent is false")
	}
}

func TestAnalyze_SEOSection(t *testing.T) {
	r := analyzeFixture(t)

	sa := r.SEOAnalysis
	if !sa.TitleAnalysis.IsOptimalLength {
		t.Errorf("title length %d should be optimal", sa.TitleAnalysis.Length)
	}
	if !sa.MetaDescription.IsOptimalLength {
		t.Errorf("description length %d should be optimal", sa.MetaDescription.Length)
	}
	if !sa.RobotsMeta.IsIndexable || !sa.RobotsMeta.IsFollowable {
		t.Error("robots index,follow should be indexable and followable")
	}
	if !sa.CanonicalURL.Exists {
		t.Error("canonical link should be detected")
	}
	if !sa.HeadingStruct.ProperH1Usage || sa.HeadingStruct.H2Count != 2 {
		t.Errorf("heading structure = %+v", sa.HeadingStruct)
	}
	// Three images: descriptive alt, empty alt, missing alt.
	if sa.ImageSEO.ImagesWithAlt != 2 || sa.ImageSEO.ImagesWithoutAlt != 1 {
		t.Errorf("image seo = %+v", sa.ImageSEO)
	}
	q := sa.ImageSEO.AltTextQuality
	if q.DescriptiveAlt != 1 || q.EmptyAlt != 1 || q.MissingAlt != 1 || q.OptimalLengthAlt != 1 {
		t.Errorf("alt quality = %+v", q)
	}
	if !sa.StructuredSEO.HasOpenGraph {
		t.Error("og meta tags present")
	}
	if sa.SEOScore <= 0 || sa.SEOScore > 100 {
		t.Errorf("seo score = %d", sa.SEOScore)
	}
}

func TestAnalyze_TechnicalSection(t *testing.T) {
	r := analyzeFixture(t)

	ta := r.TechnicalAnalysis
	if ta.HTMLSize.Bytes != len(fixturePage) {
		t.Errorf("html bytes = %d, want %d", ta.HTMLSize.Bytes, len(fixturePage))
	}
	if ta.HTMLValidation.Doctype != "html5" {
		t.Errorf("doctype = %q", ta.HTMLValidation.Doctype)
	}
	if !ta.HTMLValidation.LangAttribute || !ta.HTMLValidation.CharsetDeclared {
		t.Errorf("validation = %+v", ta.HTMLValidation)
	}
	if ta.Resources.ExternalScripts != 1 || ta.Resources.ExternalStylesheets != 1 {
		t.Errorf("resources = %+v", ta.Resources)
	}
	if ta.Resources.InlineScripts != 0 {
		t.Errorf("inline scripts = %d, want 0", ta.Resources.InlineScripts)
	}
	if ta.ResponseHeader["Server"] != "nginx/1.18.0" {
		t.Errorf("server header = %q", ta.ResponseHeader["Server"])
	}
	if ta.Performance != nil {
		t.Error("performance timing should be nil without browser data")
	}
}

func TestAnalyze_LinksSection(t *testing.T) {
	r := analyzeFixture(t)

	la := r.LinksAnalysis
	// nav 3 + tel + mailto + facebook + supplier + "#" + none = 8 anchors.
	if la.TotalLinks != 8 {
		t.Errorf("total links = %d, want 8", la.TotalLinks)
	}
	if la.EmailLinks.Count != 1 || la.EmailLinks.Links[0].Email != "info@example.com" {
		t.Errorf("email links = %+v", la.EmailLinks)
	}
	if la.PhoneLinks.Count != 1 || la.PhoneLinks.Links[0].Phone != "+31201234567" {
		t.Errorf("phone links = %+v", la.PhoneLinks)
	}
	if la.ExternalLinks.Count != 2 {
		t.Errorf("external links = %d, want 2", la.ExternalLinks.Count)
	}
	// nav links and the bare "#" resolve against the base host.
	if la.InternalLinks.Count != 4 {
		t.Errorf("internal links = %d, want 4", la.InternalLinks.Count)
	}
	if la.BrokenLinkIndicators != 1 {
		t.Errorf("broken indicators = %d, want 1", la.BrokenLinkIndicators)
	}
	if la.NofollowLinks != 1 {
		t.Errorf("nofollow = %d, want 1", la.NofollowLinks)
	}
	if la.UniqueDomains != 3 {
		t.Errorf("unique domains = %d, want 3", la.UniqueDomains)
	}
}

func TestAnalyze_ImagesSection(t *testing.T) {
	r := analyzeFixture(t)

	ia := r.ImagesAnalysis
	if ia.TotalImages != 3 {
		t.Fatalf("total images = %d, want 3", ia.TotalImages)
	}
	if ia.ImagesWithAlt != 1 || ia.ImagesWithoutAlt != 2 {
		t.Errorf("alt coverage: with=%d without=%d", ia.ImagesWithAlt, ia.ImagesWithoutAlt)
	}
	if ia.LazyLoadedImages != 1 || ia.ResponsiveImages != 1 {
		t.Errorf("lazy=%d responsive=%d", ia.LazyLoadedImages, ia.ResponsiveImages)
	}
	if ia.FormatDistribution["jpg"] != 1 || ia.FormatDistribution["webp"] != 1 || ia.FormatDistribution["svg"] != 1 {
		t.Errorf("formats = %v", ia.FormatDistribution)
	}
	if !strings.HasPrefix(ia.Images[0].Src, "https://example.com/") {
		t.Errorf("src not resolved absolute: %q", ia.Images[0].Src)
	}
}

func TestAnalyze_FormsSection(t *testing.T) {
	r := analyzeFixture(t)

	fa := r.FormsAnalysis
	if fa.TotalForms != 1 {
		t.Fatalf("forms = %d, want 1", fa.TotalForms)
	}
	form := fa.Forms[0]
	if form.Method != "POST" || form.ID != "quote" {
		t.Errorf("form = %+v", form)
	}
	if form.FieldCount != 3 || form.RequiredFields != 1 {
		t.Errorf("fields = %d required = %d", form.FieldCount, form.RequiredFields)
	}
	if !form.HasSubmit {
		t.Error("form has a submit input")
	}
	if form.Inputs[0].Type != "email" || form.Inputs[1].Type != "textarea" {
		t.Errorf("input types = %q, %q", form.Inputs[0].Type, form.Inputs[1].Type)
	}
}

func TestAnalyze_BusinessAndContact(t *testing.T) {
	r := analyzeFixture(t)

	bi := r.BusinessInfo
	if len(bi.PhoneNumbers) == 0 {
		t.Error("Dutch phone number should be extracted from text")
	}
	if len(bi.EmailAddresses) != 1 || bi.EmailAddresses[0] != "info@example.com" {
		t.Errorf("emails = %v", bi.EmailAddresses)
	}
	if len(bi.SocialLinks) != 1 || bi.SocialLinks[0].Platform != "facebook" {
		t.Errorf("social links = %+v", bi.SocialLinks)
	}

	ci := r.ContactInfo
	if ci.EmailLinks != 1 || ci.PhoneLinks != 1 {
		t.Errorf("contact counts = %+v", ci)
	}
	if ci.MapEmbeds != 1 {
		t.Errorf("map embeds = %d, want 1", ci.MapEmbeds)
	}
	if ci.ContactPageLinks == 0 {
		t.Error("contact nav link should be counted")
	}
}

func TestAnalyze_StructureSection(t *testing.T) {
	r := analyzeFixture(t)

	ps := r.PageStructure
	if !ps.Semantic.HasHeader || !ps.Semantic.HasNav || !ps.Semantic.HasMain ||
		!ps.Semantic.HasArticle || !ps.Semantic.HasFooter {
		t.Errorf("semantic = %+v", ps.Semantic)
	}
	if ps.Semantic.HasAside {
		t.Error("no aside in fixture")
	}
	if ps.NavigationItems != 3 {
		t.Errorf("navigation items = %d, want 3", ps.NavigationItems)
	}
	if ps.NestingDepth < 3 {
		t.Errorf("nesting depth = %d, want >= 3", ps.NestingDepth)
	}
	if len(ps.LayoutFingerprint) != 16 {
		t.Errorf("layout fingerprint = %q", ps.LayoutFingerprint)
	}
}

func TestAnalyze_ExternalResources(t *testing.T) {
	r := analyzeFixture(t)

	er := r.ExternalResources
	if len(er.ScriptDomains) != 1 || er.ScriptDomains[0] != "stats.example.org" {
		t.Errorf("script domains = %v", er.ScriptDomains)
	}
	if len(er.StyleDomains) != 1 || er.StyleDomains[0] != "cdn.example.net" {
		t.Errorf("style domains = %v", er.StyleDomains)
	}
	if len(er.IframeDomains) != 1 || er.IframeDomains[0] != "www.google.com" {
		t.Errorf("iframe domains = %v", er.IframeDomains)
	}
	if len(er.ExternalDomains) != 3 {
		t.Errorf("external domains = %v", er.ExternalDomains)
	}
	if er.RobotsTxt != nil || er.Sitemap != nil {
		t.Error("probe results are attached by the API layer, not the analyzer")
	}
}

func TestAnalyze_SecuritySection(t *testing.T) {
	r := analyzeFixture(t)

	sa := r.SecurityAnalysis
	if !sa.HTTPSUsage {
		t.Error("https page")
	}
	if !sa.SecurityHeaders["Strict-Transport-Security"] || !sa.SecurityHeaders["X-Frame-Options"] {
		t.Errorf("security headers = %v", sa.SecurityHeaders)
	}
	if sa.SecurityHeaders["Content-Security-Policy"] {
		t.Error("CSP not sent")
	}
	if sa.SecurityHeaderValues["Strict-Transport-Security"] != "max-age=63072000" {
		t.Errorf("header values = %v", sa.SecurityHeaderValues)
	}
	if sa.MixedContent.HTTPResources != 0 {
		t.Errorf("mixed content = %d", sa.MixedContent.HTTPResources)
	}
	if sa.FormSecurity.FormsWithHTTPSAction != 1 || sa.FormSecurity.TotalForms != 1 {
		t.Errorf("form security = %+v", sa.FormSecurity)
	}
}

func TestAnalyze_MobileSection(t *testing.T) {
	r := analyzeFixture(t)

	ma := r.MobileAnalysis
	if !ma.ViewportMeta.Exists || !ma.ViewportMeta.IsResponsive {
		t.Errorf("viewport = %+v", ma.ViewportMeta)
	}
	if ma.MobileElements.TouchIcons != 1 {
		t.Errorf("touch icons = %d", ma.MobileElements.TouchIcons)
	}
	if ma.ResponsiveIndicators.ResponsiveImages != 1 {
		t.Errorf("responsive images = %d", ma.ResponsiveIndicators.ResponsiveImages)
	}
	if ma.ResponsiveIndicators.FlexibleLayouts == 0 {
		t.Error("layout-grid class should count as flexible layout")
	}
}

func TestAnalyze_Summary(t *testing.T) {
	r := analyzeFixture(t)

	s := r.Summary
	if !s.KeyFindings.HasSSL {
		t.Error("has_ssl should be true")
	}
	if s.KeyFindings.TotalImages != 3 || s.KeyFindings.TotalLinks != 8 {
		t.Errorf("key findings = %+v", s.KeyFindings)
	}
	if !s.KeyFindings.IsMobileFriendly {
		t.Error("responsive viewport means mobile friendly")
	}
	if s.Content.ContentType != "homepage" {
		t.Errorf("content type = %q", s.Content.ContentType)
	}
	if !s.Content.WellStructured {
		t.Error("single h1 means well structured")
	}
	scores := []int{
		s.OverallScores.SEOScore, s.OverallScores.AccessibilityScore,
		s.OverallScores.PerformanceScore, s.OverallScores.MobileScore,
		s.OverallScores.SecurityScore, s.OverallScores.ContentQualityScore,
	}
	for i, v := range scores {
		if v < 0 || v > 100 {
			t.Errorf("score %d out of range: %d", i, v)
		}
	}
	if len(s.Recommendations) > 10 {
		t.Errorf("recommendations = %d, want <= 10", len(s.Recommendations))
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	a := newTestAnalyzer(t)
	snap := newSnapshot(fixturePage)
	snap.Headers.Set("Server", "nginx")

	r1, err := a.Analyze(snap, Options{})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	r2, err := a.Analyze(snap, Options{})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	j1, _ := json.Marshal(r1)
	j2, _ := json.Marshal(r2)
	if string(j1) != string(j2) {
		t.Error("identical snapshots must produce byte-identical reports")
	}
}

func TestAnalyze_EmptyPage(t *testing.T) {
	r, err := newTestAnalyzer(t).Analyze(newSnapshot(""), Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if r.ContentAnalysis.WordCount != 0 {
		t.Errorf("word count = %d", r.ContentAnalysis.WordCount)
	}
	if r.PageInfo.Charset != "utf-8" {
		t.Errorf("charset default = %q", r.PageInfo.Charset)
	}

	// Collection fields marshal as [] and {} rather than null.
	out, _ := json.Marshal(r)
	for _, key := range []string{`"stylesheets":[]`, `"images":[`, `"basic_meta":{}`} {
		if !strings.Contains(string(out), key) {
			t.Errorf("marshaled report missing %s", key)
		}
	}
	if strings.Contains(string(out), `"forms":null`) {
		t.Error("forms must marshal as [], not null")
	}
}

func TestAnalyze_RenderedTextPreferred(t *testing.T) {
	snap := newSnapshot(`<html><body><div id="root"></div></body></html>`)
	snap.RenderedText = "client rendered words appear here after hydration"

	r, err := newTestAnalyzer(t).Analyze(snap, Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if r.ContentAnalysis.WordCount != 7 {
		t.Errorf("word count = %d, want 7 from rendered text", r.ContentAnalysis.WordCount)
	}
}

func TestPageType(t *testing.T) {
	tests := []struct {
		url  string
		html string
		want string
	}{
		{"https://example.com/", "<p>x</p>", "homepage"},
		{"https://example.com/index.php", "<p>x</p>", "homepage"},
		{"https://example.com/blog/post-1", "<p>x</p>", "blog"},
		{"https://example.com/shop/chairs", "<p>x</p>", "product"},
		{"https://example.com/contact", "<p>x</p>", "contact"},
		{"https://example.com/about-us", "<p>x</p>", "about"},
		{"https://example.com/news/item", "<article>x</article>", "article"},
		{"https://example.com/news/item", "<p>x</p>", "page"},
	}

	a := newTestAnalyzer(t)
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			snap := newSnapshot(tt.html)
			snap.URL = tt.url
			snap.FinalURL = tt.url
			r, err := a.Analyze(snap, Options{})
			if err != nil {
				t.Fatalf("Analyze: %v", err)
			}
			if r.PageInfo.PageType != tt.want {
				t.Errorf("page type = %q, want %q", r.PageInfo.PageType, tt.want)
			}
		})
	}
}

func TestDoctype(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"html5", "<!DOCTYPE html><html></html>", "html5"},
		{"lowercase", "<!doctype html><html></html>", "html5"},
		{"missing", "<html></html>", "none"},
		{"html4", `<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 4.01//EN">`, `html public "-//w3c//dtd html 4.01//en"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := doctype(tt.raw); got != tt.want {
				t.Errorf("doctype = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestImageFormat(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"/img/a.jpg", "jpg"},
		{"/img/b.JPEG", "jpeg"},
		{"https://cdn.example.com/c.webp?v=2", "webp"},
		{"/img/d", "unknown"},
	}

	for _, tt := range tests {
		if got := imageFormat(tt.src); got != tt.want {
			t.Errorf("imageFormat(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{0, 1},
		{150, 1},
		{200, 1},
		{450, 2},
		{2000, 10},
	}

	for _, tt := range tests {
		if got := readingTime(tt.words); got != tt.want {
			t.Errorf("readingTime(%d) = %d, want %d", tt.words, got, tt.want)
		}
	}
}
