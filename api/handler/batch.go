package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RickBillie-pixel/scraper/cache"
	"github.com/RickBillie-pixel/scraper/models"
	"github.com/RickBillie-pixel/scraper/simhash"
	"github.com/RickBillie-pixel/scraper/webhook"
)

// batchDuplicateThreshold is the Hamming distance under which two pages
// count as near-duplicates.
const batchDuplicateThreshold = 3

// batchJob guards one job's mutable state. Workers update results and
// counters under mu; status reads copy under the same lock.
type batchJob struct {
	mu  sync.Mutex
	job models.BatchJob
}

// batchStore holds all in-flight and completed batch jobs.
var batchStore sync.Map

var batchJanitorOnce sync.Once

// StartBatchJanitor launches the background sweep that expires finished
// jobs older than ttl. Safe to call more than once.
func StartBatchJanitor(ttl time.Duration) {
	batchJanitorOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(5 * time.Minute)
			defer ticker.Stop()
			for range ticker.C {
				cutoff := time.Now().Add(-ttl).Unix()
				batchStore.Range(func(key, value any) bool {
					bj := value.(*batchJob)
					bj.mu.Lock()
					expired := bj.job.CreatedAt < cutoff
					bj.mu.Unlock()
					if expired {
						batchStore.Delete(key)
					}
					return true
				})
			}
		}()
	})
}

// PostBatch returns the handler for POST /api/v1/analyze/batch. It
// validates the request, registers a job, and analyzes the URLs in the
// background; callers poll GET /analyze/batch/:id for results.
func PostBatch(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		if max := d.Config.Batch.MaxURLs; len(req.URLs) > max {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "maximum " + strconv.Itoa(max) + " URLs per batch",
				},
			})
			return
		}

		jobID := "batch-" + randomID()
		bj := &batchJob{job: models.BatchJob{
			ID:        jobID,
			Status:    "processing",
			Total:     len(req.URLs),
			Results:   make([]*models.BatchResult, len(req.URLs)),
			CreatedAt: time.Now().Unix(),
		}}
		batchStore.Store(jobID, bj)

		go runBatch(d, bj, req)

		c.JSON(http.StatusOK, models.BatchResponse{
			ID:     jobID,
			Status: "processing",
			Total:  len(req.URLs),
		})
	}
}

// GetBatch returns the handler for GET /api/v1/analyze/batch/:id.
func GetBatch() gin.HandlerFunc {
	return func(c *gin.Context) {
		val, ok := batchStore.Load(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "batch job not found",
				},
			})
			return
		}

		bj := val.(*batchJob)
		bj.mu.Lock()
		resp := models.BatchStatusResponse{
			ID:              bj.job.ID,
			Status:          bj.job.Status,
			Completed:       bj.job.Completed,
			Failed:          bj.job.Failed,
			Total:           bj.job.Total,
			Results:         append([]*models.BatchResult(nil), bj.job.Results...),
			DuplicateGroups: bj.job.Groups,
		}
		bj.mu.Unlock()

		c.JSON(http.StatusOK, resp)
	}
}

// runBatch analyzes every URL in the job, concurrency capped by config.
// Results land at their input index so output order always matches input
// order regardless of completion order.
func runBatch(d Deps, bj *batchJob, req models.BatchRequest) {
	maxConcurrent := d.Config.Batch.Concurrency
	if maxConcurrent <= 0 {
		maxConcurrent = 3
	}
	sem := make(chan struct{}, maxConcurrent)

	var wg sync.WaitGroup
	for i, rawURL := range req.URLs {
		wg.Add(1)
		go func(idx int, targetURL string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			result := analyzeBatchURL(d, targetURL, req.Options)

			bj.mu.Lock()
			bj.job.Results[idx] = result
			if result.Success {
				bj.job.Completed++
			} else {
				bj.job.Failed++
			}
			bj.mu.Unlock()
		}(i, rawURL)
	}
	wg.Wait()

	bj.mu.Lock()
	bj.job.Groups = duplicateGroups(bj.job.Results)
	switch {
	case bj.job.Failed == bj.job.Total:
		bj.job.Status = "failed"
	case bj.job.Failed > 0:
		bj.job.Status = "partial"
	default:
		bj.job.Status = "completed"
	}
	summary := models.BatchStatusResponse{
		ID:              bj.job.ID,
		Status:          bj.job.Status,
		Completed:       bj.job.Completed,
		Failed:          bj.job.Failed,
		Total:           bj.job.Total,
		DuplicateGroups: bj.job.Groups,
	}
	bj.mu.Unlock()

	slog.Info("batch job finished",
		"id", summary.ID,
		"status", summary.Status,
		"completed", summary.Completed,
		"failed", summary.Failed,
		"total", summary.Total,
		"duplicate_groups", len(summary.DuplicateGroups),
	)

	if req.WebhookURL != "" && d.Notifier != nil {
		d.Notifier.DeliverAsync(req.WebhookURL, req.WebhookSecret, &webhook.Event{
			Type:      "batch.completed",
			JobID:     summary.ID,
			Timestamp: time.Now().Unix(),
			Data:      summary,
		})
	}
}

// analyzeBatchURL runs one URL through the shared pipeline using the
// batch-wide options.
func analyzeBatchURL(d Deps, targetURL string, opts models.BatchOptions) *models.BatchResult {
	req := &models.AnalyzeRequest{
		URL:             targetURL,
		Timeout:         opts.Timeout,
		FetchMode:       opts.FetchMode,
		FetchScripts:    opts.FetchScripts,
		TopTechnologies: opts.TopTechnologies,
		MinConfidence:   opts.MinConfidence,
		IncludeContent:  opts.IncludeContent,
		Probe:           opts.Probe,
		UseCache:        opts.UseCache,
	}
	req.Defaults()

	useCache := req.UseCache && d.Cache != nil && d.Config.Cache.Enabled
	if useCache {
		if cached, hit := d.Cache.Get(cache.Key(targetURL, req)); hit {
			return toBatchResult(targetURL, cached)
		}
	}

	resp := analyzeOne(context.Background(), d, req)
	if useCache && resp.Success {
		d.Cache.Set(cache.Key(targetURL, req), resp)
	}
	return toBatchResult(targetURL, resp)
}

func toBatchResult(targetURL string, resp *models.AnalyzeResponse) *models.BatchResult {
	return &models.BatchResult{
		URL:     targetURL,
		Success: resp.Success,
		Report:  resp.Report,
		Error:   resp.Error,
	}
}

// duplicateGroups clusters results whose content fingerprints sit within
// the duplicate threshold. Failed results carry a zero fingerprint and
// are never grouped.
func duplicateGroups(results []*models.BatchResult) [][]int {
	fps := make([]uint64, len(results))
	for i, r := range results {
		if r == nil || r.Report == nil {
			continue
		}
		fp, err := strconv.ParseUint(r.Report.ContentAnalysis.Fingerprint, 16, 64)
		if err != nil {
			continue
		}
		fps[i] = fp
	}
	return simhash.GroupNear(fps, batchDuplicateThreshold)
}

// randomID generates a short random hex string for job IDs.
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
