package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RickBillie-pixel/scraper/models"
)

// Health returns the handler for GET /api/v1/health.
//
// Reports registry size, cache effectiveness and pool utilisation, and
// degrades status when more than 80% of browser tabs are busy.
func Health(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := models.HealthResponse{
			Status:     "healthy",
			Uptime:     time.Since(d.StartTime).Round(time.Second).String(),
			Version:    Version,
			Signatures: d.Registry.Len(),
		}

		if d.Browser != nil {
			stats := d.Browser.Stats()
			resp.PoolStats = &stats
			if stats.MaxPages > 0 && stats.ActivePages > int(float64(stats.MaxPages)*0.8) {
				resp.Status = "degraded"
			}
		}
		if d.Cache != nil {
			stats := d.Cache.Stats()
			resp.CacheStats = &stats
		}

		c.JSON(http.StatusOK, resp)
	}
}

// Root returns the handler for GET /, a short service description for
// humans hitting the base URL.
func Root() gin.HandlerFunc {
	info := gin.H{
		"service":     "Complete Web Analysis API",
		"version":     Version,
		"description": "analyzes a web page in one structured JSON response: technology stack, structured data, SEO, content, links, security, performance, accessibility and mobile readiness",
		"endpoints": gin.H{
			"POST /api/v1/analyze":        "full single-page analysis",
			"POST /api/v1/analyze/batch":  "asynchronous multi-page analysis",
			"GET /api/v1/analyze/batch/:id": "batch job status and results",
			"GET /api/v1/health":          "service health and pool stats",
		},
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, info)
	}
}
