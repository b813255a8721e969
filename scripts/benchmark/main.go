package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"
)

// CLI flags
var (
	apiURL    = flag.String("api-url", "http://localhost:8080", "analysis API base URL")
	fetchMode = flag.String("fetch-mode", "auto", "fetch mode to benchmark: auto, http or browser")
	runs      = flag.Int("runs", 3, "number of runs per URL for averaging")
	output    = flag.String("output", "benchmark-results.json", "JSON output file path")
)

// Test URLs covering 5 site types.
var testURLs = []struct {
	Label string
	URL   string
}{
	{"Static", "https://example.com"},
	{"Blog", "https://go.dev/blog/go1.21"},
	{"Docs", "https://go.dev/doc/effective_go"},
	{"News", "https://www.bbc.com/news"},
	{"SPA", "https://github.com/go-rod/rod"},
}

// --- Request / Response types (mirrors models package) ---

type analyzeRequest struct {
	URL       string `json:"url"`
	FetchMode string `json:"fetch_mode"`
	Timeout   int    `json:"timeout"`
}

type analyzeResponse struct {
	Success    bool         `json:"success"`
	EngineUsed string       `json:"engine_used"`
	Report     *reportStats `json:"report"`
	Timing     timingInfo   `json:"timing"`
	Error      *errorDetail `json:"error,omitempty"`
}

type reportStats struct {
	StatusCode int `json:"status_code"`
	PageInfo   struct {
		Title string `json:"title"`
	} `json:"page_info"`
	TechStack struct {
		Summary struct {
			TotalTechnologies int `json:"total_technologies"`
		} `json:"summary"`
	} `json:"tech_stack"`
	Summary struct {
		OverallScores struct {
			SEOScore int `json:"seo_score"`
		} `json:"overall_scores"`
	} `json:"summary"`
}

type timingInfo struct {
	TotalMs    int64 `json:"total_ms"`
	FetchMs    int64 `json:"fetch_ms"`
	AnalysisMs int64 `json:"analysis_ms"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// --- Benchmark result types ---

type runResult struct {
	Run          int    `json:"run"`
	TotalMs      int64  `json:"total_ms"`
	FetchMs      int64  `json:"fetch_ms"`
	AnalysisMs   int64  `json:"analysis_ms"`
	EngineUsed   string `json:"engine_used"`
	Technologies int    `json:"technologies"`
	SEOScore     int    `json:"seo_score"`
	StatusCode   int    `json:"status_code"`
	HasTitle     bool   `json:"has_title"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
}

type urlAverages struct {
	TotalMs      float64 `json:"total_ms"`
	FetchMs      float64 `json:"fetch_ms"`
	AnalysisMs   float64 `json:"analysis_ms"`
	Technologies float64 `json:"technologies"`
}

type urlResult struct {
	URL      string       `json:"url"`
	Label    string       `json:"label"`
	Runs     []runResult  `json:"runs"`
	Averages *urlAverages `json:"averages,omitempty"`
}

type benchmarkReport struct {
	Timestamp  string      `json:"timestamp"`
	APIURL     string      `json:"api_url"`
	FetchMode  string      `json:"fetch_mode"`
	RunsPerURL int         `json:"runs_per_url"`
	Results    []urlResult `json:"results"`
}

func main() {
	flag.Parse()

	fmt.Println("=== Analysis Benchmark Suite ===")
	fmt.Printf("API URL:    %s\n", *apiURL)
	fmt.Printf("Fetch mode: %s\n", *fetchMode)
	fmt.Printf("Runs/URL:   %d\n", *runs)
	fmt.Printf("Output:     %s\n", *output)
	fmt.Println()

	// Quick connectivity check.
	if err := checkAPI(*apiURL); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot reach API at %s: %v\n", *apiURL, err)
		fmt.Fprintf(os.Stderr, "Make sure the service is running (e.g. make run)\n")
		os.Exit(1)
	}

	report := benchmarkReport{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		APIURL:     *apiURL,
		FetchMode:  *fetchMode,
		RunsPerURL: *runs,
	}

	for _, t := range testURLs {
		fmt.Printf("Benchmarking [%s] %s ...\n", t.Label, t.URL)
		ur := urlResult{URL: t.URL, Label: t.Label}

		for i := 1; i <= *runs; i++ {
			fmt.Printf("  Run %d/%d ... ", i, *runs)
			rr := benchmarkURL(t.URL, i)
			if rr.Success {
				fmt.Printf("OK  %dms  %d technologies  engine=%s\n", rr.TotalMs, rr.Technologies, rr.EngineUsed)
			} else {
				fmt.Printf("FAILED: %s\n", rr.Error)
			}
			ur.Runs = append(ur.Runs, rr)
		}

		ur.Averages = computeAverages(ur.Runs)
		report.Results = append(report.Results, ur)
		fmt.Println()
	}

	// Print summary table.
	printTable(report.Results)

	// Write JSON report.
	if err := writeJSON(*output, report); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing JSON output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nDetailed results written to %s\n", *output)
}

func checkAPI(baseURL string) error {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(baseURL + "/api/v1/health")
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func benchmarkURL(url string, run int) runResult {
	rr := runResult{Run: run}

	reqBody := analyzeRequest{
		URL:       url,
		FetchMode: *fetchMode,
		Timeout:   60,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		rr.Error = fmt.Sprintf("marshal error: %v", err)
		return rr
	}

	req, err := http.NewRequest("POST", *apiURL+"/api/v1/analyze", bytes.NewReader(bodyBytes))
	if err != nil {
		rr.Error = fmt.Sprintf("request error: %v", err)
		return rr
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 90 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		rr.Error = fmt.Sprintf("request failed: %v", err)
		return rr
	}
	defer resp.Body.Close()

	var ar analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		rr.Error = fmt.Sprintf("decode error: %v", err)
		return rr
	}

	rr.Success = ar.Success
	rr.EngineUsed = ar.EngineUsed
	rr.TotalMs = ar.Timing.TotalMs
	rr.FetchMs = ar.Timing.FetchMs
	rr.AnalysisMs = ar.Timing.AnalysisMs

	if ar.Report != nil {
		rr.StatusCode = ar.Report.StatusCode
		rr.Technologies = ar.Report.TechStack.Summary.TotalTechnologies
		rr.SEOScore = ar.Report.Summary.OverallScores.SEOScore
		rr.HasTitle = ar.Report.PageInfo.Title != ""
	}
	if ar.Error != nil {
		rr.Error = ar.Error.Message
	}

	return rr
}

func computeAverages(runs []runResult) *urlAverages {
	var successCount int
	var avg urlAverages

	for _, r := range runs {
		if !r.Success {
			continue
		}
		successCount++
		avg.TotalMs += float64(r.TotalMs)
		avg.FetchMs += float64(r.FetchMs)
		avg.AnalysisMs += float64(r.AnalysisMs)
		avg.Technologies += float64(r.Technologies)
	}

	if successCount == 0 {
		return nil
	}

	n := float64(successCount)
	avg.TotalMs /= n
	avg.FetchMs /= n
	avg.AnalysisMs /= n
	avg.Technologies /= n
	return &avg
}

func printTable(results []urlResult) {
	fmt.Println(strings.Repeat("─", 85))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "URL\tAvg Latency\tFetch\tAnalysis\tTechs\tStatus\n")
	fmt.Fprintf(w, "───\t───────────\t─────\t────────\t─────\t──────\n")

	for _, r := range results {
		if r.Averages == nil {
			fmt.Fprintf(w, "%s\tFAILED\t-\t-\t-\t-\n", truncateURL(r.URL, 40))
			continue
		}

		// Determine dominant status code from runs.
		status := dominantStatus(r.Runs)

		fmt.Fprintf(w, "%s\t%dms\t%dms\t%dms\t%.1f\t%d\n",
			truncateURL(r.URL, 40),
			int64(r.Averages.TotalMs),
			int64(r.Averages.FetchMs),
			int64(r.Averages.AnalysisMs),
			r.Averages.Technologies,
			status,
		)
	}

	w.Flush()
	fmt.Println(strings.Repeat("─", 85))
}

func dominantStatus(runs []runResult) int {
	counts := map[int]int{}
	for _, r := range runs {
		if r.Success {
			counts[r.StatusCode]++
		}
	}
	best, bestCount := 0, 0
	for code, count := range counts {
		if count > bestCount {
			best = code
			bestCount = count
		}
	}
	return best
}

func truncateURL(u string, max int) string {
	if len(u) <= max {
		return u
	}
	return u[:max-3] + "..."
}

func writeJSON(path string, report benchmarkReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
