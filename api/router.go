// Package api wires the gin router for the analysis service.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/RickBillie-pixel/scraper/api/handler"
)

// NewRouter creates a configured gin engine with all routes.
//
// Health and the root description sit outside any future protection so
// monitoring probes always work.
func NewRouter(d handler.Deps) *gin.Engine {
	gin.SetMode(d.Config.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	r.GET("/", handler.Root())

	v1 := r.Group("/api/v1")
	v1.GET("/health", handler.Health(d))

	v1.POST("/analyze", handler.Analyze(d))
	v1.POST("/analyze/batch", handler.PostBatch(d))
	v1.GET("/analyze/batch/:id", handler.GetBatch())

	handler.StartBatchJanitor(d.Config.Batch.JobTTL)

	return r
}
