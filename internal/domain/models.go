package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Question is a single multiple-choice record from the bank.
type Question struct {
	Prompt  string   `json:"question"`
	Options []string `json:"options"` // display order matters
	Answer  string   `json:"answer"`
}

// Validate checks that the question has options and that its answer is one of them.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("%w: empty prompt", ErrInvalidQuestion)
	}
	if len(q.Options) == 0 {
		return fmt.Errorf("%w: %q has no options", ErrInvalidQuestion, q.Prompt)
	}
	answer := strings.TrimSpace(q.Answer)
	for _, opt := range q.Options {
		if strings.TrimSpace(opt) == answer {
			return nil
		}
	}
	return fmt.Errorf("%w: answer of %q is not an option", ErrInvalidQuestion, q.Prompt)
}

// ParseBank decodes a JSON array of questions and validates every record.
func ParseBank(data []byte) ([]Question, error) {
	var bank []Question
	if err := json.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}
	if len(bank) == 0 {
		return nil, ErrEmptyBank
	}
	for i, q := range bank {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
	}
	return bank, nil
}

// Report is the body sent to the score endpoint.
type Report struct {
	Score int `json:"score"`
	Total int `json:"total"`
}

// Validate rejects negative values and scores above the total.
func (r Report) Validate() error {
	if r.Score < 0 || r.Total < 0 || r.Score > r.Total {
		return fmt.Errorf("%w: score=%d total=%d", ErrInvalidReport, r.Score, r.Total)
	}
	return nil
}

// Result is the completion view of a session.
type Result struct {
	Score int    `json:"score"`
	Total int    `json:"total"`
	Label string `json:"label"`
}

func (r Result) String() string {
	return fmt.Sprintf("%s: %d / %d", r.Label, r.Score, r.Total)
}

// Report converts the result into the wire body for the score endpoint.
func (r Result) Report() Report {
	return Report{Score: r.Score, Total: r.Total}
}

// Mark is a persisted score report.
type Mark struct {
	ID        string    `json:"id"`
	Score     int       `json:"score"`
	Total     int       `json:"total"`
	CreatedAt time.Time `json:"createdAt"`
}
