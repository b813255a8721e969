package models

// AnalyzeRequest is the payload for POST /api/v1/analyze.
type AnalyzeRequest struct {
	// URL is the target page to analyze. Required.
	URL string `json:"url" binding:"required,url"`

	// Timeout is the maximum duration in seconds for the fetch phase
	// (navigation + rendering + script capture).
	// Default: 45. Max: 120.
	Timeout int `json:"timeout,omitempty" binding:"omitempty,min=1,max=120"`

	// FetchMode controls the fetching strategy.
	// "auto" (default): race HTTP against the browser, prefer whichever
	// produces an adequate snapshot first.
	// "http": force pure HTTP (fastest, no JS rendering).
	// "browser": force headless Chrome.
	FetchMode string `json:"fetch_mode,omitempty" binding:"omitempty,oneof=auto browser http"`

	// FetchScripts controls whether external script bodies are fetched on
	// the HTTP path (the browser path always captures them).
	// Default: true.
	FetchScripts *bool `json:"fetch_scripts,omitempty"`

	// TopTechnologies limits the cms and framework categories to the K
	// highest-confidence detections. 0 (default) keeps all.
	TopTechnologies int `json:"top_technologies,omitempty" binding:"omitempty,min=0,max=20"`

	// MinConfidence is the reporting threshold for technology detections.
	// 0 (default) includes every detection with any evidence.
	MinConfidence int `json:"min_confidence,omitempty" binding:"omitempty,min=0,max=100"`

	// IncludeContent controls whether content_analysis carries the
	// readability-extracted main content and its markdown rendition.
	// Default: true.
	IncludeContent *bool `json:"include_content,omitempty"`

	// Probe controls whether robots.txt and sitemap.xml are checked.
	// Default: true.
	Probe *bool `json:"probe,omitempty"`

	// UseCache serves a cached report when a fresh one exists for the same
	// URL and options. Default: false.
	UseCache bool `json:"use_cache,omitempty"`
}

// Defaults applies default values to unset fields.
func (r *AnalyzeRequest) Defaults() {
	if r.Timeout == 0 {
		r.Timeout = 45
	}
	if r.FetchMode == "" {
		r.FetchMode = "auto"
	}
	if r.FetchScripts == nil {
		t := true
		r.FetchScripts = &t
	}
	if r.IncludeContent == nil {
		t := true
		r.IncludeContent = &t
	}
	if r.Probe == nil {
		t := true
		r.Probe = &t
	}
}
