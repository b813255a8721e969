package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/RickBillie-pixel/scraper/models"
)

func TestHealthEndpoint(t *testing.T) {
	d := newTestDeps(t, &stubEngine{})
	r := gin.New()
	r.GET("/health", Health(d))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp models.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.Version != Version {
		t.Errorf("version = %q", resp.Version)
	}
	if resp.Signatures < 20 {
		t.Errorf("signatures = %d, registry looks empty", resp.Signatures)
	}
	if resp.Uptime == "" {
		t.Error("uptime missing")
	}
	// No browser engine in the test deps, so pool stats are omitted.
	if resp.PoolStats != nil {
		t.Errorf("PoolStats = %+v, want nil", resp.PoolStats)
	}
	if resp.CacheStats == nil {
		t.Error("CacheStats missing")
	}
}

func TestRootEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", Root())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var info map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if info["version"] != Version {
		t.Errorf("version = %v", info["version"])
	}
	if _, ok := info["endpoints"]; !ok {
		t.Error("endpoints listing missing")
	}
}
