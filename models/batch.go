package models

// BatchRequest is the payload for POST /api/v1/analyze/batch.
type BatchRequest struct {
	// URLs is the list of pages to analyze. Required.
	URLs []string `json:"urls" binding:"required,min=1,max=10,dive,url"`

	// Options contains shared analysis options applied to all URLs.
	Options BatchOptions `json:"options"`

	// WebhookURL, when set, receives a signed batch.completed callback
	// once the job reaches a terminal state.
	WebhookURL string `json:"webhook_url,omitempty" binding:"omitempty,url"`

	// WebhookSecret signs the callback body (HMAC-SHA256). Optional.
	WebhookSecret string `json:"webhook_secret,omitempty"`
}

// BatchOptions are the shared analysis settings applied to every URL
// in a batch. Zero values fall back to the same defaults as a single
// analyze request.
type BatchOptions struct {
	Timeout         int    `json:"timeout,omitempty" binding:"omitempty,min=1,max=120"`
	FetchMode       string `json:"fetch_mode,omitempty" binding:"omitempty,oneof=auto browser http"`
	FetchScripts    *bool  `json:"fetch_scripts,omitempty"`
	TopTechnologies int    `json:"top_technologies,omitempty" binding:"omitempty,min=0,max=20"`
	MinConfidence   int    `json:"min_confidence,omitempty" binding:"omitempty,min=0,max=100"`
	IncludeContent  *bool  `json:"include_content,omitempty"`
	Probe           *bool  `json:"probe,omitempty"`
	UseCache        bool   `json:"use_cache,omitempty"`
}

// BatchResponse is the immediate response for POST /api/v1/analyze/batch.
type BatchResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Total  int    `json:"total"`
}

// BatchResult is the outcome for one URL, stored at its input index.
type BatchResult struct {
	URL     string          `json:"url"`
	Success bool            `json:"success"`
	Report  *AnalysisReport `json:"report,omitempty"`
	Error   *ErrorDetail    `json:"error,omitempty"`
}

// BatchStatusResponse is the response for GET /api/v1/analyze/batch/:id.
type BatchStatusResponse struct {
	ID        string         `json:"id"`
	Status    string         `json:"status"`
	Completed int            `json:"completed"`
	Failed    int            `json:"failed"`
	Total     int            `json:"total"`
	Results   []*BatchResult `json:"results,omitempty"`

	// DuplicateGroups lists input indexes whose content fingerprints sit
	// within Hamming distance 3 of each other. Only groups of two or more
	// are reported, and only once the job is terminal.
	DuplicateGroups [][]int `json:"duplicate_groups,omitempty"`
}

// BatchJob tracks an in-progress batch analysis.
type BatchJob struct {
	ID        string
	Status    string // "processing", "completed", "failed", "partial"
	Total     int
	Completed int
	Failed    int
	Results   []*BatchResult
	Groups    [][]int
	CreatedAt int64 // unix timestamp
}
