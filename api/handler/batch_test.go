package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RickBillie-pixel/scraper/config"
	"github.com/RickBillie-pixel/scraper/models"
	"github.com/RickBillie-pixel/scraper/webhook"
)

const orchardPage = `<!DOCTYPE html>
<html lang="en"><head><title>Orchard Notes</title></head>
<body><h1>Orchard Notes</h1>
<p>Pruning apple trees in late winter keeps the crown open and the fruit
wood productive. Cut crossing branches first, then shorten last season's
leaders by a third, always to an outward facing bud.</p>
</body></html>`

const telescopePage = `<!DOCTYPE html>
<html lang="en"><head><title>Telescope Log</title></head>
<body><h1>Telescope Log</h1>
<p>Collimating the secondary mirror under a dark sky took most of the
evening. Jupiter resolved cleanly at two hundred magnification once the
tube reached ambient temperature, with both equatorial belts visible.</p>
</body></html>`

func newBatchRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.POST("/analyze/batch", PostBatch(d))
	r.GET("/analyze/batch/:id", GetBatch())
	return r
}

func waitForBatch(t *testing.T, r *gin.Engine, id string) models.BatchStatusResponse {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		req := httptest.NewRequest(http.MethodGet, "/analyze/batch/"+id, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("poll status = %d, body %s", w.Code, w.Body.String())
		}
		var resp models.BatchStatusResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp.Status != "processing" {
			return resp
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("batch did not reach a terminal state in time")
	return models.BatchStatusResponse{}
}

func TestBatchLifecycle(t *testing.T) {
	stub := &stubEngine{pages: map[string]string{
		"https://a.example/": orchardPage,
		"https://b.example/": orchardPage,
		"https://c.example/": telescopePage,
	}}
	d := newTestDeps(t, stub)
	r := newBatchRouter(d)

	w := postJSON(t, r, "/analyze/batch",
		`{"urls":["https://a.example/","https://b.example/","https://c.example/"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}

	var created models.BatchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if created.ID == "" || created.Status != "processing" || created.Total != 3 {
		t.Fatalf("created = %+v", created)
	}

	final := waitForBatch(t, r, created.ID)
	if final.Status != "completed" {
		t.Errorf("status = %q, want completed", final.Status)
	}
	if final.Completed != 3 || final.Failed != 0 {
		t.Errorf("completed/failed = %d/%d", final.Completed, final.Failed)
	}

	// Results stay in input order regardless of completion order.
	wantURLs := []string{"https://a.example/", "https://b.example/", "https://c.example/"}
	if len(final.Results) != 3 {
		t.Fatalf("results = %d", len(final.Results))
	}
	for i, res := range final.Results {
		if res == nil || res.URL != wantURLs[i] {
			t.Errorf("result[%d] = %+v, want URL %s", i, res, wantURLs[i])
		}
		if !res.Success || res.Report == nil {
			t.Errorf("result[%d] not successful: %+v", i, res)
		}
	}

	// The two identical pages group together; the third stands alone.
	if len(final.DuplicateGroups) != 1 {
		t.Fatalf("DuplicateGroups = %v", final.DuplicateGroups)
	}
	group := final.DuplicateGroups[0]
	if len(group) != 2 || group[0] != 0 || group[1] != 1 {
		t.Errorf("group = %v, want [0 1]", group)
	}
}

func TestBatchPartialFailure(t *testing.T) {
	stub := &stubEngine{pages: map[string]string{
		"https://a.example/": orchardPage,
	}}
	d := newTestDeps(t, stub)
	r := newBatchRouter(d)

	w := postJSON(t, r, "/analyze/batch",
		`{"urls":["https://a.example/","https://missing.example/"]}`)
	var created models.BatchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	final := waitForBatch(t, r, created.ID)
	if final.Status != "partial" {
		t.Errorf("status = %q, want partial", final.Status)
	}
	if final.Completed != 1 || final.Failed != 1 {
		t.Errorf("completed/failed = %d/%d", final.Completed, final.Failed)
	}
	if final.Results[1].Success || final.Results[1].Error == nil {
		t.Errorf("failed slot = %+v", final.Results[1])
	}
	if final.Results[1].Error.Code != models.ErrCodeFetchFailed {
		t.Errorf("error code = %q", final.Results[1].Error.Code)
	}
}

func TestBatchValidation(t *testing.T) {
	d := newTestDeps(t, &stubEngine{})
	d.Config.Batch.MaxURLs = 2
	r := newBatchRouter(d)

	tests := []struct {
		name string
		body string
	}{
		{"no urls", `{"urls":[]}`},
		{"bad url", `{"urls":["not a url"]}`},
		{"over config limit", `{"urls":["https://a.example/","https://b.example/","https://c.example/"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, r, "/analyze/batch", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400, body %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestBatchNotFound(t *testing.T) {
	d := newTestDeps(t, &stubEngine{})
	r := newBatchRouter(d)

	req := httptest.NewRequest(http.MethodGet, "/analyze/batch/batch-does-not-exist", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestBatchWebhook(t *testing.T) {
	received := make(chan *http.Request, 1)
	bodies := make(chan []byte, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		received <- r
		bodies <- buf
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	stub := &stubEngine{pages: map[string]string{"https://a.example/": orchardPage}}
	d := newTestDeps(t, stub)
	d.Notifier = webhook.NewNotifier(config.WebhookConfig{Timeout: 2 * time.Second, MaxRetries: 0})
	r := newBatchRouter(d)

	w := postJSON(t, r, "/analyze/batch",
		`{"urls":["https://a.example/"],"webhook_url":"`+srv.URL+`","webhook_secret":"hook-secret"}`)
	var created models.BatchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	waitForBatch(t, r, created.ID)

	select {
	case req := <-received:
		if sig := req.Header.Get("X-Webhook-Signature"); sig == "" {
			t.Error("callback missing signature header")
		}
		var event webhook.Event
		if err := json.Unmarshal(<-bodies, &event); err != nil {
			t.Fatalf("event unmarshal: %v", err)
		}
		if event.Type != "batch.completed" || event.JobID != created.ID {
			t.Errorf("event = %+v", event)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("webhook callback never arrived")
	}
}
