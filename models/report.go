package models

// TechStackReport is the category-partitioned technology detection report.
// Value object: built once per analysis, never mutated after return.
type TechStackReport struct {
	// Categories maps category name → technology name → detection.
	// Only categories with at least one detection appear.
	Categories map[string]map[string]TechnologyDetection `json:"categories"`

	// ServerInfo is derived from response headers, independent of the
	// signature machinery.
	ServerInfo ServerInfo `json:"server_info"`

	// Summary aggregates the detections.
	Summary TechSummary `json:"summary"`
}

// TechnologyDetection is one detected technology with its supporting evidence.
type TechnologyDetection struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	Confidence int    `json:"confidence"`

	// Version is the extracted version string, empty when no
	// version-capture pattern matched.
	Version string `json:"version,omitempty"`

	// Evidence lists the matches that produced the confidence score,
	// ordered header > html > script > meta, then declaration order.
	Evidence []string `json:"evidence"`
}

// ServerInfo is extracted directly from the document response headers.
type ServerInfo struct {
	// Server is the raw Server header value, "Unknown" when absent.
	Server string `json:"server"`

	// PoweredBy is the X-Powered-By header value.
	PoweredBy string `json:"powered_by,omitempty"`

	// CDN names the CDN attributed from CDN-specific headers
	// (never from substring matching across all headers). "None" when
	// nothing matched.
	CDN string `json:"cdn"`

	// SecurityHeaders reports presence of the standard security headers.
	SecurityHeaders map[string]bool `json:"security_headers"`
}

// TechSummary aggregates a TechStackReport.
type TechSummary struct {
	// TotalTechnologies is the distinct (name, category) count.
	TotalTechnologies int `json:"total_technologies"`

	// TechnologyScore equals TotalTechnologies: the score measures
	// comparative breadth, not fidelity.
	TechnologyScore int `json:"technology_score"`

	// CMSDetected, FrameworksDetected and AnalyticsTools list names ordered
	// by confidence descending, then name.
	CMSDetected        []string `json:"cms_detected"`
	FrameworksDetected []string `json:"frameworks_detected"`
	AnalyticsTools     []string `json:"analytics_tools"`

	// Primary maps each populated category to its highest-confidence
	// detection.
	Primary map[string]string `json:"primary,omitempty"`

	// MainServer mirrors ServerInfo.Server.
	MainServer string `json:"main_server"`

	HasCMS       bool `json:"has_cms"`
	HasAnalytics bool `json:"has_analytics"`
}

// StructuredDataReport holds every structured-data item found on a page,
// partitioned by format, plus a quality summary.
type StructuredDataReport struct {
	JSONLD       []JSONLDItem      `json:"json_ld"`
	Microdata    []MicrodataItem   `json:"microdata"`
	OpenGraph    map[string]string `json:"opengraph"`
	TwitterCards map[string]string `json:"twitter_cards"`
	RDFa         []RDFaItem        `json:"rdfa"`

	// MetaTags collects generic named meta tags (non-OpenGraph,
	// non-Twitter); data only, it does not contribute to the quality score.
	MetaTags map[string]string `json:"meta_tags"`

	// SchemaTypes is the sorted union of @type values from JSON-LD
	// (including nested objects) and Microdata itemtype tails.
	SchemaTypes []string `json:"schema_types"`

	// ParseErrors counts malformed JSON-LD blocks that were skipped.
	// A bad block never aborts extraction.
	ParseErrors int `json:"parse_errors"`

	Summary StructuredDataSummary `json:"summary"`
}

// JSONLDItem is one parsed JSON-LD block (or one element of a top-level
// array block).
type JSONLDItem struct {
	// Data is the generic content tree produced by encoding/json:
	// nil, bool, float64, string, []any or map[string]any.
	Data any `json:"data"`

	// Types are the @type values declared anywhere in this item.
	Types []string `json:"types,omitempty"`
}

// MicrodataItem is one top-level itemscope with its aggregated properties.
type MicrodataItem struct {
	Type string `json:"type,omitempty"`

	// Properties maps itemprop name → string or []string when repeated.
	Properties map[string]any `json:"properties"`
}

// RDFaItem is one typeof-carrying element with its property values.
type RDFaItem struct {
	Typeof     string            `json:"typeof"`
	Properties map[string]string `json:"properties"`
}

// StructuredDataSummary aggregates a StructuredDataReport.
type StructuredDataSummary struct {
	// HasStructuredData is true iff QualityScore > 0.
	HasStructuredData bool `json:"has_structured_data"`

	TotalJSONLD       int `json:"total_json_ld"`
	TotalMicrodata    int `json:"total_microdata"`
	TotalOpenGraph    int `json:"total_opengraph"`
	TotalTwitterCards int `json:"total_twitter_cards"`
	TotalRDFa         int `json:"total_rdfa"`
	TotalSchemaTypes  int `json:"total_schema_types"`

	// HasSocialMeta is true when any OpenGraph or Twitter Card tag exists.
	HasSocialMeta bool `json:"has_social_meta"`

	// QualityScore is the weighted, capped completeness score in [0,100].
	QualityScore int `json:"quality_score"`
}
