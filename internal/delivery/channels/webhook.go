// Package channels implements the concrete senders the delivery processor
// dispatches to.
package channels

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// WebhookSender posts event payloads as JSON to a configured endpoint
// (the cloud functions that render and send customer emails).
type WebhookSender struct {
	client *http.Client
}

// NewWebhookSender creates a sender with a 10 second request timeout.
func NewWebhookSender() *WebhookSender {
	return &WebhookSender{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts payload to endpoint. Any non-2xx response is an error so the
// queue retries.
func (s *WebhookSender) Send(ctx context.Context, endpoint string, payload map[string]interface{}) error {
	if endpoint == "" {
		return fmt.Errorf("webhook endpoint is empty")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, string(snippet))
	}
	return nil
}
