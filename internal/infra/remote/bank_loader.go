package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"timed-quiz-service/internal/domain"
)

// BankLoader fetches the question bank from a static HTTP resource. It makes
// exactly one request per call and never retries.
type BankLoader struct {
	client *http.Client
	url    string
}

// NewBankLoader uses http.DefaultClient when client is nil.
func NewBankLoader(client *http.Client, url string) *BankLoader {
	if client == nil {
		client = http.DefaultClient
	}
	return &BankLoader{client: client, url: url}
}

func (l *BankLoader) LoadBank(ctx context.Context) ([]domain.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch bank: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch bank: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	return domain.ParseBank(data)
}
