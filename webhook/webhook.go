// Package webhook posts batch lifecycle events to caller-supplied endpoints.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/RickBillie-pixel/scraper/config"
)

// Event is the payload sent to webhook endpoints.
type Event struct {
	Type      string      `json:"type"` // "batch.completed"
	JobID     string      `json:"job_id"`
	Timestamp int64       `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// Notifier delivers events with HMAC signing and retry.
type Notifier struct {
	client  *http.Client
	retries []time.Duration
}

// NewNotifier builds a Notifier from cfg. Retry intervals grow 1s, 5s,
// 30s, then repeat 30s up to cfg.MaxRetries.
func NewNotifier(cfg config.WebhookConfig) *Notifier {
	base := []time.Duration{time.Second, 5 * time.Second, 30 * time.Second}
	var retries []time.Duration
	for i := 0; i < cfg.MaxRetries; i++ {
		if i < len(base) {
			retries = append(retries, base[i])
		} else {
			retries = append(retries, base[len(base)-1])
		}
	}
	return &Notifier{
		client:  &http.Client{Timeout: cfg.Timeout},
		retries: retries,
	}
}

// Deliver sends one event synchronously. The body is signed with
// HMAC-SHA256 when secret is non-empty.
// Header: X-Webhook-Signature: sha256=<hex>
func (n *Notifier) Deliver(ctx context.Context, url, secret string, event *Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("webhook: marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Scraper-Webhook/1.0")

	if secret != "" {
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(body)
		sig := hex.EncodeToString(mac.Sum(nil))
		req.Header.Set("X-Webhook-Signature", "sha256="+sig)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: deliver: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook: endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// DeliverAsync sends an event in the background, retrying failed
// deliveries on the configured schedule.
func (n *Notifier) DeliverAsync(url, secret string, event *Event) {
	go func() {
		attempts := append([]time.Duration{0}, n.retries...)
		for attempt, delay := range attempts {
			if delay > 0 {
				time.Sleep(delay)
			}
			ctx, cancel := context.WithTimeout(context.Background(), n.client.Timeout)
			err := n.Deliver(ctx, url, secret, event)
			cancel()
			if err == nil {
				slog.Info("webhook delivered",
					"url", url,
					"event", event.Type,
					"job_id", event.JobID,
					"attempt", attempt+1,
				)
				return
			}
			slog.Warn("webhook delivery failed",
				"url", url,
				"event", event.Type,
				"job_id", event.JobID,
				"attempt", attempt+1,
				"error", err,
			)
		}
		slog.Error("webhook delivery exhausted all retries",
			"url", url,
			"event", event.Type,
			"job_id", event.JobID,
		)
	}()
}
