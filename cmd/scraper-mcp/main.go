// Command scraper-mcp exposes the analysis API as MCP tools over stdio,
// so agent runtimes can analyze pages through a running scraper service.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// analyzeResponse mirrors the analysis API response model, trimmed to the
// fields the text rendering needs.
type analyzeResponse struct {
	Success    bool          `json:"success"`
	EngineUsed string        `json:"engine_used"`
	Report     *reportDigest `json:"report"`
	Error      *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// reportDigest picks the headline sections out of the full report.
type reportDigest struct {
	URL        string `json:"url"`
	FinalURL   string `json:"final_url"`
	StatusCode int    `json:"status_code"`
	PageInfo   struct {
		Title    string `json:"title"`
		Domain   string `json:"domain"`
		Language string `json:"language"`
		PageType string `json:"page_type"`
	} `json:"page_info"`
	TechStack *struct {
		Categories map[string]map[string]struct {
			Confidence int    `json:"confidence"`
			Version    string `json:"version"`
		} `json:"categories"`
		ServerInfo struct {
			Server string `json:"server"`
			CDN    string `json:"cdn"`
		} `json:"server_info"`
		Summary struct {
			TotalTechnologies int `json:"total_technologies"`
		} `json:"summary"`
	} `json:"tech_stack"`
	StructuredData *struct {
		SchemaTypes []string `json:"schema_types"`
		Summary     struct {
			HasStructuredData bool `json:"has_structured_data"`
			QualityScore      int  `json:"quality_score"`
		} `json:"summary"`
	} `json:"structured_data"`
	Summary struct {
		OverallScores struct {
			SEO           int `json:"seo_score"`
			Accessibility int `json:"accessibility_score"`
			Performance   int `json:"performance_score"`
			Mobile        int `json:"mobile_score"`
			Security      int `json:"security_score"`
			Content       int `json:"content_quality_score"`
		} `json:"overall_scores"`
		Recommendations []string `json:"recommendations"`
	} `json:"summary"`
}

// batchResponse mirrors the batch creation response.
type batchResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Total  int    `json:"total"`
}

// batchStatusResponse mirrors the batch status response.
type batchStatusResponse struct {
	ID              string        `json:"id"`
	Status          string        `json:"status"`
	Completed       int           `json:"completed"`
	Failed          int           `json:"failed"`
	Total           int           `json:"total"`
	Results         []batchResult `json:"results"`
	DuplicateGroups [][]int       `json:"duplicate_groups"`
}

// batchResult mirrors one per-URL batch outcome.
type batchResult struct {
	URL     string        `json:"url"`
	Success bool          `json:"success"`
	Report  *reportDigest `json:"report"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func main() {
	apiURL := os.Getenv("SCRAPER_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}

	s := server.NewMCPServer(
		"scraper",
		"5.0.0",
		server.WithToolCapabilities(false),
	)

	analyzeTool := mcp.NewTool("analyze_website",
		mcp.WithDescription("Run a full analysis of one web page: technology stack with confidence scores, structured data, SEO, security, performance, accessibility and mobile readiness. Renders JavaScript-heavy pages with a headless browser when needed."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the page to analyze"),
		),
		mcp.WithString("fetch_mode",
			mcp.Description("Fetching strategy: 'auto' (default, races HTTP against the browser), 'http' (fastest, no JS rendering), or 'browser' (always render)"),
			mcp.Enum("auto", "http", "browser"),
		),
		mcp.WithNumber("top_technologies",
			mcp.Description("Keep only the K highest-confidence CMS and framework detections (0 keeps all)"),
		),
		mcp.WithNumber("min_confidence",
			mcp.Description("Drop technology detections scoring below this confidence (0-100)"),
		),
	)
	s.AddTool(analyzeTool, handleAnalyzeWebsite(apiURL))

	batchTool := mcp.NewTool("analyze_batch",
		mcp.WithDescription("Analyze multiple URLs in parallel and return a per-page digest plus duplicate-content groups. Waits for the batch job to finish."),
		mcp.WithArray("urls",
			mcp.Required(),
			mcp.Description("List of URLs to analyze (max 10)"),
		),
		mcp.WithString("fetch_mode",
			mcp.Description("Fetching strategy applied to every URL: 'auto' (default), 'http', or 'browser'"),
			mcp.Enum("auto", "http", "browser"),
		),
	)
	s.AddTool(batchTool, handleAnalyzeBatch(apiURL))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// apiPost sends a POST request to the analysis API and returns the body.
func apiPost(ctx context.Context, client *http.Client, apiURL, path string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// pollJobCompletion polls a job endpoint until status is no longer
// "processing" or the context is cancelled.
func pollJobCompletion(ctx context.Context, client *http.Client, apiURL, endpoint string) ([]byte, error) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+endpoint, nil)
			if err != nil {
				return nil, fmt.Errorf("create poll request: %w", err)
			}

			resp, err := client.Do(req)
			if err != nil {
				return nil, fmt.Errorf("poll request failed: %w", err)
			}

			body, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("read poll response: %w", err)
			}

			var status struct {
				Status string `json:"status"`
			}
			if err := json.Unmarshal(body, &status); err != nil {
				return nil, fmt.Errorf("parse poll status: %w", err)
			}

			if status.Status != "processing" {
				return body, nil
			}
		}
	}
}

func handleAnalyzeWebsite(apiURL string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 120 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		payload := map[string]interface{}{"url": url}
		if mode := request.GetString("fetch_mode", ""); mode != "" {
			payload["fetch_mode"] = mode
		}
		args := request.GetArguments()
		if topK, ok := args["top_technologies"]; ok {
			payload["top_technologies"] = topK
		}
		if minConf, ok := args["min_confidence"]; ok {
			payload["min_confidence"] = minConf
		}

		respBody, err := apiPost(ctx, client, apiURL, "/api/v1/analyze", payload)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("analyze request failed: %v", err)), nil
		}

		var analyzeResp analyzeResponse
		if err := json.Unmarshal(respBody, &analyzeResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if !analyzeResp.Success {
			errMsg := "analysis failed"
			if analyzeResp.Error != nil {
				errMsg = fmt.Sprintf("[%s] %s", analyzeResp.Error.Code, analyzeResp.Error.Message)
			}
			return mcp.NewToolResultError(errMsg), nil
		}

		return mcp.NewToolResultText(formatDigest(analyzeResp.Report, analyzeResp.EngineUsed)), nil
	}
}

func handleAnalyzeBatch(apiURL string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 600 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		urls, err := request.RequireStringSlice("urls")
		if err != nil {
			return mcp.NewToolResultError("urls is required and must be an array of strings"), nil
		}

		options := map[string]interface{}{}
		if mode := request.GetString("fetch_mode", ""); mode != "" {
			options["fetch_mode"] = mode
		}
		payload := map[string]interface{}{
			"urls":    urls,
			"options": options,
		}

		respBody, err := apiPost(ctx, client, apiURL, "/api/v1/analyze/batch", payload)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("batch request failed: %v", err)), nil
		}

		var batchResp batchResponse
		if err := json.Unmarshal(respBody, &batchResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse batch response: %v", err)), nil
		}
		if batchResp.ID == "" {
			return mcp.NewToolResultError("batch job creation failed"), nil
		}

		resultBody, err := pollJobCompletion(ctx, client, apiURL, "/api/v1/analyze/batch/"+batchResp.ID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("polling batch job failed: %v", err)), nil
		}

		var statusResp batchStatusResponse
		if err := json.Unmarshal(resultBody, &statusResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse batch status: %v", err)), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Batch %s: %s (%d ok, %d failed, %d total)\n\n",
			statusResp.ID, statusResp.Status, statusResp.Completed, statusResp.Failed, statusResp.Total))

		for i, r := range statusResp.Results {
			if r.Success && r.Report != nil {
				sb.WriteString(fmt.Sprintf("--- [%d] %s ---\n%s\n", i+1, r.URL, formatDigest(r.Report, "")))
			} else {
				errMsg := "unknown error"
				if r.Error != nil {
					errMsg = fmt.Sprintf("[%s] %s", r.Error.Code, r.Error.Message)
				}
				sb.WriteString(fmt.Sprintf("--- [%d] %s FAILED: %s ---\n\n", i+1, r.URL, errMsg))
			}
		}

		if len(statusResp.DuplicateGroups) > 0 {
			sb.WriteString("Near-duplicate pages (1-based input positions):\n")
			for _, group := range statusResp.DuplicateGroups {
				positions := make([]string, len(group))
				for i, idx := range group {
					positions[i] = fmt.Sprintf("%d", idx+1)
				}
				sb.WriteString("  " + strings.Join(positions, ", ") + "\n")
			}
		}

		return mcp.NewToolResultText(sb.String()), nil
	}
}

// formatDigest renders the headline report sections as readable text.
func formatDigest(r *reportDigest, engine string) string {
	if r == nil {
		return "no report returned"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title: %s\n", r.PageInfo.Title))
	sb.WriteString(fmt.Sprintf("URL: %s (final: %s, status %d", r.URL, r.FinalURL, r.StatusCode))
	if engine != "" {
		sb.WriteString(", engine " + engine)
	}
	sb.WriteString(")\n")
	sb.WriteString(fmt.Sprintf("Domain: %s | Type: %s", r.PageInfo.Domain, r.PageInfo.PageType))
	if r.PageInfo.Language != "" {
		sb.WriteString(" | Language: " + r.PageInfo.Language)
	}
	sb.WriteString("\n")

	if ts := r.TechStack; ts != nil {
		sb.WriteString(fmt.Sprintf("\nTechnologies (%d detected, server: %s, cdn: %s):\n",
			ts.Summary.TotalTechnologies, ts.ServerInfo.Server, ts.ServerInfo.CDN))

		categories := make([]string, 0, len(ts.Categories))
		for cat := range ts.Categories {
			categories = append(categories, cat)
		}
		sort.Strings(categories)
		for _, cat := range categories {
			names := make([]string, 0, len(ts.Categories[cat]))
			for name := range ts.Categories[cat] {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				det := ts.Categories[cat][name]
				line := fmt.Sprintf("  %s [%s] confidence %d", name, cat, det.Confidence)
				if det.Version != "" {
					line += " v" + det.Version
				}
				sb.WriteString(line + "\n")
			}
		}
	}

	if sd := r.StructuredData; sd != nil && sd.Summary.HasStructuredData {
		sb.WriteString(fmt.Sprintf("\nStructured data: quality %d/100", sd.Summary.QualityScore))
		if len(sd.SchemaTypes) > 0 {
			sb.WriteString(" | schema types: " + strings.Join(sd.SchemaTypes, ", "))
		}
		sb.WriteString("\n")
	}

	scores := r.Summary.OverallScores
	sb.WriteString(fmt.Sprintf("\nScores: SEO %d | Performance %d | Accessibility %d | Mobile %d | Security %d | Content %d\n",
		scores.SEO, scores.Performance, scores.Accessibility, scores.Mobile, scores.Security, scores.Content))

	if len(r.Summary.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		for _, rec := range r.Summary.Recommendations {
			sb.WriteString("  - " + rec + "\n")
		}
	}

	return sb.String()
}
