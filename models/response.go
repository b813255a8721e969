package models

import "time"

// AnalyzeResponse is the response for POST /api/v1/analyze.
type AnalyzeResponse struct {
	// Success indicates whether the analysis completed without errors.
	Success bool `json:"success"`

	// Report is the full analysis report. Nil when Success is false.
	Report *AnalysisReport `json:"report,omitempty"`

	// EngineUsed indicates which fetch engine produced the snapshot
	// ("http" or "browser").
	EngineUsed string `json:"engine_used,omitempty"`

	// CacheStatus indicates whether the response was served from cache.
	// Values: "hit", "miss", or empty (caching not requested).
	CacheStatus string `json:"cache_status,omitempty"`

	// Timing provides duration breakdowns for the operation.
	Timing TimingInfo `json:"timing"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// TimingInfo breaks down the time spent in each phase.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`

	// FetchMs is the time spent fetching and rendering the page.
	FetchMs int64 `json:"fetch_ms"`

	// AnalysisMs is the time spent running the analysis pipelines.
	AnalysisMs int64 `json:"analysis_ms"`
}

// AnalysisReport is the complete per-page report: the two core reports
// (tech stack, structured data) plus every supplemental section and the
// overall summary.
type AnalysisReport struct {
	URL        string    `json:"url"`
	FinalURL   string    `json:"final_url"`
	StatusCode int       `json:"status_code"`
	FetchedAt  time.Time `json:"fetched_at"`

	PageInfo       PageInfo              `json:"page_info"`
	MetaData       MetaData              `json:"meta_data"`
	StructuredData *StructuredDataReport `json:"structured_data"`
	TechStack      *TechStackReport      `json:"tech_stack"`

	ContentAnalysis       ContentAnalysis       `json:"content_analysis"`
	SEOAnalysis           SEOAnalysis           `json:"seo_analysis"`
	TechnicalAnalysis     TechnicalAnalysis     `json:"technical_analysis"`
	LinksAnalysis         LinksAnalysis         `json:"links_analysis"`
	ImagesAnalysis        ImagesAnalysis        `json:"images_analysis"`
	FormsAnalysis         FormsAnalysis         `json:"forms_analysis"`
	BusinessInfo          BusinessInfo          `json:"business_info"`
	ContactInfo           ContactInfo           `json:"contact_info"`
	PageStructure         PageStructure         `json:"page_structure"`
	ExternalResources     ExternalResources     `json:"external_resources"`
	SecurityAnalysis      SecurityAnalysis      `json:"security_analysis"`
	PerformanceAnalysis   PerformanceAnalysis   `json:"performance_analysis"`
	AccessibilityAnalysis AccessibilityAnalysis `json:"accessibility_analysis"`
	MobileAnalysis        MobileAnalysis        `json:"mobile_analysis"`

	Summary AnalysisSummary `json:"summary"`
}

// PageInfo holds basic page identification data.
type PageInfo struct {
	Title       string `json:"title"`
	TitleLength int    `json:"title_length"`
	Domain      string `json:"domain"`
	Path        string `json:"path"`
	Protocol    string `json:"protocol"`
	Language    string `json:"language,omitempty"`
	Charset     string `json:"charset"`
	IsSSL       bool   `json:"is_ssl"`
	URLLength   int    `json:"url_length"`

	// PageType classifies the page: homepage, blog, product, contact,
	// about, article or page.
	PageType string `json:"page_type"`
}

// MetaData buckets the document's meta tags and head resources.
type MetaData struct {
	BasicMeta     map[string]string `json:"basic_meta"`
	SocialMeta    map[string]string `json:"social_meta"`
	SEOMeta       map[string]string `json:"seo_meta"`
	TechnicalMeta map[string]string `json:"technical_meta"`
	Stylesheets   []StylesheetRef   `json:"stylesheets"`
	Scripts       []ScriptRef       `json:"scripts"`
	Favicons      []FaviconRef      `json:"favicons"`
}

// StylesheetRef is one stylesheet link in the document head.
type StylesheetRef struct {
	Href       string `json:"href"`
	Media      string `json:"media"`
	IsExternal bool   `json:"is_external"`
}

// ScriptRef is one script tag with a src attribute.
type ScriptRef struct {
	Src        string `json:"src"`
	Async      bool   `json:"async"`
	Defer      bool   `json:"defer"`
	IsExternal bool   `json:"is_external"`
}

// FaviconRef is one icon link.
type FaviconRef struct {
	Rel   string `json:"rel"`
	Href  string `json:"href"`
	Sizes string `json:"sizes,omitempty"`
}

// ContentAnalysis describes the page's textual content.
type ContentAnalysis struct {
	// TextExcerpt is the first 1000 characters of the whitespace-collapsed
	// visible text.
	TextExcerpt    string `json:"text_excerpt"`
	WordCount      int    `json:"word_count"`
	CharacterCount int    `json:"character_count"`

	// ReadingTime is the estimated minutes at 200 wpm, minimum 1.
	ReadingTime int `json:"reading_time"`

	Headings   HeadingsInfo   `json:"headings"`
	Paragraphs ParagraphsInfo `json:"paragraphs"`
	Lists      ListsInfo      `json:"lists"`
	Tables     TablesInfo     `json:"tables"`

	Multimedia MultimediaCounts `json:"multimedia_content"`

	// ContentSections reports text volume per semantic element
	// (main, article, section, aside, header, footer, nav).
	ContentSections map[string]SectionUsage `json:"content_sections"`

	// TextDensity is the visible-text to HTML size ratio, 3 decimals.
	TextDensity float64 `json:"text_density"`

	// Fingerprint is the 64-bit simhash of the visible text, hex encoded.
	// Near-duplicate pages produce fingerprints within a small Hamming
	// distance.
	Fingerprint string `json:"fingerprint"`

	// MainContent is the readability extraction; nil when content
	// extraction was disabled or found nothing.
	MainContent *MainContent `json:"main_content,omitempty"`
}

// HeadingsInfo summarizes heading usage.
type HeadingsInfo struct {
	// ByLevel maps "h1".."h6" to the first 10 headings of that level.
	ByLevel map[string][]HeadingEntry `json:"headings_by_level"`

	TotalHeadings int  `json:"total_headings"`
	H1Count       int  `json:"h1_count"`
	ProperH1Usage bool `json:"proper_h1_usage"`
}

// HeadingEntry is one heading's text and length.
type HeadingEntry struct {
	Text   string `json:"text"`
	Length int    `json:"length"`
}

// ParagraphsInfo summarizes paragraph content.
type ParagraphsInfo struct {
	TotalParagraphs int              `json:"total_paragraphs"`
	Paragraphs      []ParagraphEntry `json:"paragraphs"`
	AverageLength   float64          `json:"average_length"`
}

// ParagraphEntry is one paragraph (first 200 chars).
type ParagraphEntry struct {
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
	HasLinks  bool   `json:"has_links"`
}

// ListsInfo summarizes list elements.
type ListsInfo struct {
	TotalLists     int         `json:"total_lists"`
	Lists          []ListEntry `json:"lists"`
	TotalListItems int         `json:"total_list_items"`
}

// ListEntry is one ul/ol element.
type ListEntry struct {
	Type      string   `json:"type"` // "ul" or "ol"
	ItemCount int      `json:"item_count"`
	Items     []string `json:"items"` // first 10, truncated to 100 chars
}

// TablesInfo summarizes table elements.
type TablesInfo struct {
	TotalTables       int          `json:"total_tables"`
	Tables            []TableEntry `json:"tables"`
	TablesWithHeaders int          `json:"tables_with_headers"`
}

// TableEntry is one table element.
type TableEntry struct {
	RowCount    int    `json:"row_count"`
	HasHeaders  bool   `json:"has_headers"`
	HeaderCount int    `json:"header_count"`
	Caption     string `json:"caption,omitempty"`
}

// MultimediaCounts counts embedded media elements.
type MultimediaCounts struct {
	Images  int `json:"images"`
	Videos  int `json:"videos"`
	Audio   int `json:"audio"`
	Iframes int `json:"iframes"`
}

// SectionUsage is the usage of one semantic element type.
type SectionUsage struct {
	Count           int `json:"count"`
	TotalTextLength int `json:"total_text_length"`
}

// MainContent is the readability-extracted main article.
type MainContent struct {
	Title   string `json:"title,omitempty"`
	Excerpt string `json:"excerpt,omitempty"`

	// Markdown is the main content converted to markdown.
	Markdown string `json:"markdown"`

	// EstimatedTokens approximates the LLM token count of Markdown.
	EstimatedTokens int `json:"estimated_tokens"`
}

// SEOAnalysis holds on-page SEO checks and the weighted score.
type SEOAnalysis struct {
	TitleAnalysis   TitleAnalysis     `json:"title_analysis"`
	MetaDescription MetaDescription   `json:"meta_description"`
	RobotsMeta      RobotsMeta        `json:"robots_meta"`
	CanonicalURL    CanonicalInfo     `json:"canonical_url"`
	HeadingStruct   HeadingStructure  `json:"heading_structure"`
	ImageSEO        ImageSEO          `json:"image_seo"`
	ContentMetrics  ContentMetrics    `json:"content_metrics"`
	StructuredSEO   StructuredDataSEO `json:"structured_data_seo"`

	// SEOScore is the weighted score in [0,100].
	SEOScore int `json:"seo_score"`
}

// TitleAnalysis checks the document title.
type TitleAnalysis struct {
	Title           string `json:"title"`
	Length          int    `json:"length"`
	WordCount       int    `json:"word_count"`
	IsOptimalLength bool   `json:"is_optimal_length"` // 30-60 chars
}

// MetaDescription checks the description meta tag.
type MetaDescription struct {
	Description     string `json:"description"`
	Length          int    `json:"length"`
	IsOptimalLength bool   `json:"is_optimal_length"` // 120-160 chars
	Exists          bool   `json:"exists"`
}

// RobotsMeta checks the robots meta tag.
type RobotsMeta struct {
	Content      string `json:"content"`
	IsIndexable  bool   `json:"is_indexable"`
	IsFollowable bool   `json:"is_followable"`
}

// CanonicalInfo checks the canonical link.
type CanonicalInfo struct {
	Exists bool   `json:"exists"`
	URL    string `json:"url,omitempty"`
}

// HeadingStructure counts h1-h3 usage.
type HeadingStructure struct {
	H1Count       int  `json:"h1_count"`
	H2Count       int  `json:"h2_count"`
	H3Count       int  `json:"h3_count"`
	ProperH1Usage bool `json:"proper_h1_usage"`
}

// ImageSEO reports image alt-text coverage.
type ImageSEO struct {
	TotalImages      int        `json:"total_images"`
	ImagesWithAlt    int        `json:"images_with_alt"`
	ImagesWithoutAlt int        `json:"images_without_alt"`
	AltTextQuality   AltQuality `json:"alt_text_quality"`
}

// AltQuality classifies alt attribute quality.
type AltQuality struct {
	DescriptiveAlt   int `json:"descriptive_alt"`    // >= 3 words
	EmptyAlt         int `json:"empty_alt"`          // alt=""
	MissingAlt       int `json:"missing_alt"`        // no alt attribute
	OptimalLengthAlt int `json:"optimal_length_alt"` // 10-125 chars
}

// ContentMetrics are the word-count SEO checks.
type ContentMetrics struct {
	WordCount           int  `json:"word_count"`
	IsSufficientContent bool `json:"is_sufficient_content"` // >= 300 words
}

// StructuredDataSEO reports structured-data presence for SEO scoring.
type StructuredDataSEO struct {
	HasJSONLD    bool `json:"has_json_ld"`
	HasMicrodata bool `json:"has_microdata"`
	HasOpenGraph bool `json:"has_opengraph"`
}

// TechnicalAnalysis holds markup-level technical checks.
type TechnicalAnalysis struct {
	HTMLSize       HTMLSize          `json:"html_size"`
	HTMLValidation HTMLValidation    `json:"html_validation"`
	Resources      ResourceAnalysis  `json:"resource_analysis"`
	Performance    *PerfTiming       `json:"performance_metrics,omitempty"`
	ResponseHeader map[string]string `json:"response_headers"`
}

// HTMLSize reports the document size.
type HTMLSize struct {
	Bytes int     `json:"bytes"`
	KB    float64 `json:"kb"`
	MB    float64 `json:"mb"`
}

// HTMLValidation holds basic markup validity signals.
type HTMLValidation struct {
	Doctype         string `json:"doctype"`
	LangAttribute   bool   `json:"lang_attribute"`
	CharsetDeclared bool   `json:"charset_declared"`
}

// ResourceAnalysis counts document resources by kind.
type ResourceAnalysis struct {
	ExternalStylesheets int `json:"external_stylesheets"`
	ExternalScripts     int `json:"external_scripts"`
	InlineStyles        int `json:"inline_styles"`
	InlineScripts       int `json:"inline_scripts"`
}

// PerfTiming carries browser navigation timing. Only present when the
// snapshot came from the browser engine.
type PerfTiming struct {
	LoadTimeMs             int64   `json:"load_time_ms"`
	DOMContentLoadedMs     int64   `json:"dom_content_loaded_ms"`
	FirstPaintMs           float64 `json:"first_paint_ms,omitempty"`
	FirstContentfulPaintMs float64 `json:"first_contentful_paint_ms,omitempty"`
	ResourceCount          int     `json:"resource_count"`
	RedirectCount          int     `json:"redirect_count"`
}

// LinksAnalysis partitions the page's links.
type LinksAnalysis struct {
	TotalLinks    int       `json:"total_links"`
	InternalLinks LinkGroup `json:"internal_links"`
	ExternalLinks LinkGroup `json:"external_links"`

	EmailLinks struct {
		Count int         `json:"count"`
		Links []EmailLink `json:"links"`
	} `json:"email_links"`

	PhoneLinks struct {
		Count int         `json:"count"`
		Links []PhoneLink `json:"links"`
	} `json:"phone_links"`

	// BrokenLinkIndicators counts bare "#" hrefs.
	BrokenLinkIndicators int `json:"broken_link_indicators"`
	NofollowLinks        int `json:"nofollow_links"`
	UniqueDomains        int `json:"unique_domains"`
}

// LinkGroup is one partition of links with its count.
type LinkGroup struct {
	Count int         `json:"count"`
	Links []LinkEntry `json:"links"` // first 20
}

// LinkEntry is one hyperlink.
type LinkEntry struct {
	URL   string `json:"url"`
	Text  string `json:"text,omitempty"`
	Title string `json:"title,omitempty"`
}

// EmailLink is one mailto: link.
type EmailLink struct {
	Email string `json:"email"`
	Text  string `json:"text,omitempty"`
}

// PhoneLink is one tel: link.
type PhoneLink struct {
	Phone string `json:"phone"`
	Text  string `json:"text,omitempty"`
}

// ImagesAnalysis describes the page's images.
type ImagesAnalysis struct {
	TotalImages        int            `json:"total_images"`
	Images             []ImageEntry   `json:"images"` // first 30
	ImagesWithAlt      int            `json:"images_with_alt"`
	ImagesWithoutAlt   int            `json:"images_without_alt"`
	LazyLoadedImages   int            `json:"lazy_loaded_images"`
	ResponsiveImages   int            `json:"responsive_images"`
	FormatDistribution map[string]int `json:"format_distribution"`
}

// ImageEntry is one img element.
type ImageEntry struct {
	Src          string `json:"src"`
	Alt          string `json:"alt,omitempty"`
	AltLength    int    `json:"alt_length"`
	HasAlt       bool   `json:"has_alt"`
	Title        string `json:"title,omitempty"`
	Width        string `json:"width,omitempty"`
	Height       string `json:"height,omitempty"`
	Loading      string `json:"loading,omitempty"`
	Format       string `json:"format"`
	IsLazyLoaded bool   `json:"is_lazy_loaded"`
	HasSrcset    bool   `json:"has_srcset"`
}

// FormsAnalysis describes the page's forms.
type FormsAnalysis struct {
	TotalForms int        `json:"total_forms"`
	Forms      []FormInfo `json:"forms"`
}

// FormInfo is one form element with its fields.
type FormInfo struct {
	Action         string      `json:"action,omitempty"`
	Method         string      `json:"method"`
	ID             string      `json:"id,omitempty"`
	Inputs         []FormField `json:"inputs"`
	FieldCount     int         `json:"field_count"`
	RequiredFields int         `json:"required_fields"`
	HasSubmit      bool        `json:"has_submit"`
}

// FormField is one input/textarea/select in a form.
type FormField struct {
	Type        string `json:"type"`
	Name        string `json:"name,omitempty"`
	Required    bool   `json:"required"`
	Placeholder string `json:"placeholder,omitempty"`
}

// BusinessInfo extracts business identity signals from page text.
type BusinessInfo struct {
	CompanyName    string       `json:"company_name"`
	PhoneNumbers   []string     `json:"phone_numbers"`
	EmailAddresses []string     `json:"email_addresses"`
	Addresses      []string     `json:"addresses"`
	SocialLinks    []SocialLink `json:"social_media_links"`
}

// SocialLink is one social-platform profile link.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Text     string `json:"text,omitempty"`
}

// ContactInfo counts contact affordances on the page.
type ContactInfo struct {
	ContactForms     int `json:"contact_forms"`
	ContactPageLinks int `json:"contact_page_links"`
	MapEmbeds        int `json:"map_embeds"`
	EmailLinks       int `json:"email_links"`
	PhoneLinks       int `json:"phone_links"`
}

// PageStructure describes the document's structural shape.
type PageStructure struct {
	Semantic        SemanticStructure `json:"semantic_structure"`
	ContentSections int               `json:"content_sections"` // article+section count
	NavigationItems int               `json:"navigation_items"`
	TotalElements   int               `json:"total_elements"`
	NestingDepth    int               `json:"nesting_depth"`

	// LayoutFingerprint is the 64-bit simhash over tag/class features,
	// hex encoded. Pages sharing a template produce nearby fingerprints.
	LayoutFingerprint string `json:"layout_fingerprint"`
}

// SemanticStructure reports presence of HTML5 landmark elements.
type SemanticStructure struct {
	HasHeader  bool `json:"has_header"`
	HasNav     bool `json:"has_nav"`
	HasMain    bool `json:"has_main"`
	HasArticle bool `json:"has_article"`
	HasSection bool `json:"has_section"`
	HasAside   bool `json:"has_aside"`
	HasFooter  bool `json:"has_footer"`
}

// ExternalResources combines in-document external references with the
// robots.txt / sitemap.xml probe results.
type ExternalResources struct {
	// ExternalDomains are the distinct third-party hosts referenced by
	// scripts, stylesheets and iframes, sorted.
	ExternalDomains []string `json:"external_domains"`

	ScriptDomains []string `json:"script_domains"`
	StyleDomains  []string `json:"style_domains"`
	IframeDomains []string `json:"iframe_domains"`

	// RobotsTxt is nil when probing was disabled.
	RobotsTxt *RobotsTxtInfo `json:"robots_txt,omitempty"`

	// Sitemap is nil when probing was disabled.
	Sitemap *SitemapInfo `json:"sitemap,omitempty"`
}

// RobotsTxtInfo is the robots.txt probe result.
type RobotsTxtInfo struct {
	Exists     bool     `json:"exists"`
	StatusCode int      `json:"status_code,omitempty"`
	Size       int      `json:"size,omitempty"`
	Sitemaps   []string `json:"sitemaps,omitempty"` // Sitemap: directives
}

// SitemapInfo is the sitemap.xml probe result.
type SitemapInfo struct {
	Exists      bool   `json:"exists"`
	StatusCode  int    `json:"status_code,omitempty"`
	Size        int    `json:"size,omitempty"`
	URLCount    int    `json:"url_count,omitempty"`
	IsIndex     bool   `json:"is_index,omitempty"` // sitemapindex vs urlset
	ContentType string `json:"content_type,omitempty"`
}

// SecurityAnalysis holds transport and markup security signals.
type SecurityAnalysis struct {
	HTTPSUsage bool `json:"https_usage"`

	// SecurityHeaders is the boolean presence map for the standard
	// security headers (same keys as ServerInfo.SecurityHeaders).
	SecurityHeaders map[string]bool `json:"security_headers"`

	// SecurityHeaderValues carries the raw values of present headers.
	SecurityHeaderValues map[string]string `json:"security_header_values,omitempty"`

	MixedContent MixedContent `json:"mixed_content_check"`
	FormSecurity FormSecurity `json:"form_security"`
}

// MixedContent counts plain-http subresources.
type MixedContent struct {
	HTTPResources int `json:"http_resources"`
}

// FormSecurity checks form action transport.
type FormSecurity struct {
	FormsWithHTTPSAction int `json:"forms_with_https_action"`
	TotalForms           int `json:"total_forms"`
}

// PerformanceAnalysis holds page-weight and optimization indicators.
type PerformanceAnalysis struct {
	PageSize      PageSize               `json:"page_size"`
	Resources     ResourceCounts         `json:"resource_counts"`
	Optimization  OptimizationIndicators `json:"optimization_indicators"`
	Timing        *PerfTiming            `json:"performance_timing,omitempty"`
}

// PageSize reports the HTML payload size.
type PageSize struct {
	HTMLSizeBytes int     `json:"html_size_bytes"`
	HTMLSizeKB    float64 `json:"html_size_kb"`
}

// ResourceCounts counts page resources for request estimation.
type ResourceCounts struct {
	TotalImages           int `json:"total_images"`
	ExternalScripts       int `json:"external_scripts"`
	ExternalStylesheets   int `json:"external_stylesheets"`
	TotalRequestsEstimate int `json:"total_requests_estimate"`
}

// OptimizationIndicators reports optimization technique adoption.
type OptimizationIndicators struct {
	LazyLoadedImages int               `json:"lazy_loaded_images"`
	ResponsiveImages int               `json:"responsive_images"`
	Minified         MinifiedResources `json:"minified_resources"`
}

// MinifiedResources counts .min.* resources by filename convention.
type MinifiedResources struct {
	CSS int `json:"css"`
	JS  int `json:"js"`
}

// AccessibilityAnalysis holds accessibility signals.
type AccessibilityAnalysis struct {
	Images struct {
		TotalImages        int `json:"total_images"`
		ImagesWithAlt      int `json:"images_with_alt"`
		ImagesWithoutAlt   int `json:"images_without_alt"`
		ImagesWithEmptyAlt int `json:"images_with_empty_alt"`
	} `json:"images"`

	Links struct {
		TotalLinks       int `json:"total_links"`
		LinksWithText    int `json:"links_with_text"`
		LinksWithoutText int `json:"links_without_text"`
		LinksWithTitle   int `json:"links_with_title"`
	} `json:"links"`

	Headings struct {
		HeadingStructureExists bool `json:"heading_structure_exists"`
		H1Count                int  `json:"h1_count"`
		ProperH1Usage          bool `json:"proper_h1_usage"`
	} `json:"headings"`

	Forms struct {
		FormsWithLabels int `json:"forms_with_labels"`
		TotalForms      int `json:"total_forms"`
	} `json:"forms"`

	ARIA struct {
		ElementsWithAriaLabel int `json:"elements_with_aria_label"`
		ElementsWithRole      int `json:"elements_with_role"`
	} `json:"aria_attributes"`

	Language struct {
		HTMLHasLang bool `json:"html_has_lang"`
	} `json:"language_declaration"`
}

// MobileAnalysis holds mobile-optimization signals.
type MobileAnalysis struct {
	ViewportMeta ViewportMeta `json:"viewport_meta"`

	MobileElements struct {
		TouchIcons     int `json:"touch_icons"`
		MobileMetaTags int `json:"mobile_meta_tags"`
	} `json:"mobile_specific_elements"`

	ResponsiveIndicators struct {
		StyleBlocks      int `json:"style_blocks"`
		ResponsiveImages int `json:"responsive_images"`
		FlexibleLayouts  int `json:"flexible_layouts"`
	} `json:"responsive_design_indicators"`
}

// ViewportMeta checks the viewport meta tag.
type ViewportMeta struct {
	Exists       bool   `json:"exists"`
	Content      string `json:"content,omitempty"`
	IsResponsive bool   `json:"is_responsive"` // contains width=device-width
}

// AnalysisSummary is the cross-section roll-up.
type AnalysisSummary struct {
	OverallScores   OverallScores     `json:"overall_scores"`
	KeyFindings     KeyFindings       `json:"key_findings"`
	Recommendations []string          `json:"recommendations"`
	Technology      TechnologySummary `json:"technology_summary"`
	Content         ContentSummary    `json:"content_summary"`
}

// OverallScores are the six category scores, each in [0,100].
type OverallScores struct {
	SEOScore            int `json:"seo_score"`
	AccessibilityScore  int `json:"accessibility_score"`
	PerformanceScore    int `json:"performance_score"`
	MobileScore         int `json:"mobile_score"`
	SecurityScore       int `json:"security_score"`
	ContentQualityScore int `json:"content_quality_score"`
}

// KeyFindings are the headline facts about the page.
type KeyFindings struct {
	HasCMS            bool   `json:"has_cms"`
	MainCMS           string `json:"main_cms"`
	HasAnalytics      bool   `json:"has_analytics"`
	HasStructuredData bool   `json:"has_structured_data"`
	IsMobileFriendly  bool   `json:"is_mobile_friendly"`
	HasSSL            bool   `json:"has_ssl"`
	ContentLength     int    `json:"content_length"`
	TotalImages       int    `json:"total_images"`
	TotalLinks        int    `json:"total_links"`
}

// TechnologySummary is the tech-stack roll-up for the summary.
type TechnologySummary struct {
	TotalTechnologiesDetected int      `json:"total_technologies_detected"`
	MainCategories            []string `json:"main_categories"`
	ServerTechnology          string   `json:"server_technology"`
	CDNUsage                  string   `json:"cdn_usage"`
}

// ContentSummary is the content roll-up for the summary.
type ContentSummary struct {
	ContentType          string `json:"content_type"`
	ReadingTimeMinutes   int    `json:"reading_time_minutes"`
	HasSufficientContent bool   `json:"has_sufficient_content"`
	MultimediaRich       bool   `json:"multimedia_rich"`
	WellStructured       bool   `json:"well_structured"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status     string      `json:"status"` // "healthy" or "degraded"
	Uptime     string      `json:"uptime"`
	Version    string      `json:"version"`
	Signatures int         `json:"signatures"`
	PoolStats  *PoolStats  `json:"pool_stats,omitempty"`
	CacheStats *CacheStats `json:"cache_stats,omitempty"`
}

// PoolStats reports the state of the browser page pool.
type PoolStats struct {
	MaxPages    int `json:"max_pages"`
	ActivePages int `json:"active_pages"`
	BrowserPID  int `json:"browser_pid"`
}

// CacheStats reports report-cache effectiveness.
type CacheStats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}
