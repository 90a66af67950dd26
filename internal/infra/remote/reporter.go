package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"timed-quiz-service/internal/domain"
)

// Reporter posts final scores to the score endpoint as JSON.
type Reporter struct {
	client  *http.Client
	url     string
	retries int
	backoff time.Duration
}

// NewReporter retries a failed report once. A nil client uses http.DefaultClient.
func NewReporter(client *http.Client, url string) *Reporter {
	if client == nil {
		client = http.DefaultClient
	}
	return &Reporter{client: client, url: url, retries: 1, backoff: 500 * time.Millisecond}
}

// Report sends {"score":..,"total":..}. Transport errors and non-2xx
// responses count as failures; the response body is ignored.
func (r *Reporter) Report(ctx context.Context, report domain.Report) error {
	body, err := json.Marshal(report)
	if err != nil {
		return err
	}

	var lastErr error
	for attempt := 0; attempt <= r.retries; attempt++ {
		if attempt > 0 {
			log.Printf("retrying score report after: %v", lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(r.backoff):
			}
		}
		if lastErr = r.post(ctx, body); lastErr == nil {
			return nil
		}
	}
	return lastErr
}

func (r *Reporter) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("post score: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("post score: unexpected status %s", resp.Status)
	}
	return nil
}
