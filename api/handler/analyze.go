// Package handler contains the gin handlers for the analysis API.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RickBillie-pixel/scraper/analyzer"
	"github.com/RickBillie-pixel/scraper/browser"
	"github.com/RickBillie-pixel/scraper/cache"
	"github.com/RickBillie-pixel/scraper/config"
	"github.com/RickBillie-pixel/scraper/engine"
	"github.com/RickBillie-pixel/scraper/models"
	"github.com/RickBillie-pixel/scraper/probe"
	"github.com/RickBillie-pixel/scraper/techstack"
	"github.com/RickBillie-pixel/scraper/webhook"
)

// Version is reported by the health and root endpoints.
const Version = "5.0.0"

// Deps bundles the shared dependencies the handlers close over.
type Deps struct {
	Dispatcher *engine.Dispatcher
	Analyzer   *analyzer.Analyzer
	Prober     *probe.Prober
	Cache      *cache.Cache
	Notifier   *webhook.Notifier
	Registry   *techstack.Registry

	// Browser is nil when the browser engine is disabled; health then
	// omits pool stats.
	Browser *browser.Browser

	Config    *config.Config
	StartTime time.Time
}

// Analyze returns the handler for POST /api/v1/analyze.
//
// Orchestration flow:
//  1. Parse & validate request, apply defaults.
//  2. Cache lookup when the caller opted in.
//  3. Dispatcher.Fetch → page snapshot        (records fetch_ms)
//  4. Analyzer.Analyze → full report          (records analysis_ms)
//  5. Prober.Site → robots/sitemap attached to the report.
//  6. Cache store, fill Timing, return 200.
func Analyze(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		var req models.AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.AnalyzeResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		req.Defaults()

		useCache := req.UseCache && d.Cache != nil && d.Config.Cache.Enabled
		if useCache {
			if cached, hit := d.Cache.Get(cache.Key(req.URL, &req)); hit {
				cached.CacheStatus = "hit"
				cached.Timing = models.TimingInfo{
					TotalMs: time.Since(totalStart).Milliseconds(),
				}
				c.JSON(http.StatusOK, cached)
				return
			}
		}

		resp := analyzeOne(c.Request.Context(), d, &req)
		resp.Timing.TotalMs = time.Since(totalStart).Milliseconds()

		if !resp.Success {
			c.JSON(statusForDetail(resp.Error), resp)
			return
		}

		if useCache {
			d.Cache.Set(cache.Key(req.URL, &req), resp)
			resp.CacheStatus = "miss"
		}
		c.JSON(http.StatusOK, resp)
	}
}

// analyzeOne runs the fetch → analyze → probe pipeline for one URL. It is
// shared by the single endpoint and batch workers and never panics on bad
// pages; failures come back as a structured error response.
func analyzeOne(ctx context.Context, d Deps, req *models.AnalyzeRequest) *models.AnalyzeResponse {
	fetchStart := time.Now()
	snap, err := d.Dispatcher.Fetch(ctx, &engine.FetchRequest{
		URL:          req.URL,
		Mode:         req.FetchMode,
		Timeout:      time.Duration(req.Timeout) * time.Second,
		FetchScripts: *req.FetchScripts,
	})
	fetchMs := time.Since(fetchStart).Milliseconds()

	if err != nil {
		return errorResponse(err, models.TimingInfo{FetchMs: fetchMs})
	}

	analysisStart := time.Now()
	report, err := d.Analyzer.Analyze(snap, analyzer.Options{
		TopTechnologies: req.TopTechnologies,
		MinConfidence:   req.MinConfidence,
		IncludeContent:  *req.IncludeContent,
	})
	analysisMs := time.Since(analysisStart).Milliseconds()

	if err != nil {
		return errorResponse(err, models.TimingInfo{FetchMs: fetchMs, AnalysisMs: analysisMs})
	}

	if *req.Probe && d.Prober != nil {
		robots, sitemap := d.Prober.Site(ctx, report.FinalURL)
		report.ExternalResources.RobotsTxt = robots
		report.ExternalResources.Sitemap = sitemap
	}

	return &models.AnalyzeResponse{
		Success:    true,
		Report:     report,
		EngineUsed: snap.Engine,
		Timing:     models.TimingInfo{FetchMs: fetchMs, AnalysisMs: analysisMs},
	}
}

// errorResponse shapes any pipeline error into a failed AnalyzeResponse.
func errorResponse(err error, timing models.TimingInfo) *models.AnalyzeResponse {
	var analysisErr *models.AnalysisError
	if !errors.As(err, &analysisErr) {
		analysisErr = models.NewAnalysisError(models.ErrCodeInternal, err.Error(), err)
	}
	return &models.AnalyzeResponse{
		Success: false,
		Error:   analysisErr.ToDetail(),
		Timing:  timing,
	}
}

// statusForDetail translates error codes to HTTP status codes.
func statusForDetail(detail *models.ErrorDetail) int {
	if detail == nil {
		return http.StatusInternalServerError
	}
	switch detail.Code {
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeFetchTimeout:
		return http.StatusGatewayTimeout // 504
	case models.ErrCodeFetchFailed, models.ErrCodeNavigation, models.ErrCodeNeedsBrowser:
		return http.StatusBadGateway // 502
	case models.ErrCodeBrowserCrash:
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}
