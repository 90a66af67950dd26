package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"timed-quiz-service/internal/domain"
)

const marksKey = "quiz:marks"

// MarkStore keeps score reports in a capped Redis list, newest at the head.
type MarkStore struct {
	client *redis.Client
	limit  int64
	clock  func() time.Time
}

// NewMarkStore caps the list at limit entries; limit <= 0 keeps everything.
func NewMarkStore(client *redis.Client, limit int64) *MarkStore {
	return &MarkStore{client: client, limit: limit, clock: time.Now}
}

func (s *MarkStore) SaveMark(ctx context.Context, report domain.Report) (domain.Mark, error) {
	if err := report.Validate(); err != nil {
		return domain.Mark{}, err
	}
	mark := domain.Mark{
		ID:        uuid.NewString(),
		Score:     report.Score,
		Total:     report.Total,
		CreatedAt: s.clock().UTC(),
	}
	data, err := json.Marshal(mark)
	if err != nil {
		return domain.Mark{}, err
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, marksKey, data)
	if s.limit > 0 {
		pipe.LTrim(ctx, marksKey, 0, s.limit-1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return domain.Mark{}, fmt.Errorf("save mark: %w", err)
	}
	return mark, nil
}

func (s *MarkStore) ListMarks(ctx context.Context, limit int) ([]domain.Mark, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	raw, err := s.client.LRange(ctx, marksKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("list marks: %w", err)
	}
	marks := make([]domain.Mark, 0, len(raw))
	for _, item := range raw {
		var mark domain.Mark
		if err := json.Unmarshal([]byte(item), &mark); err != nil {
			return nil, fmt.Errorf("decode mark: %w", err)
		}
		marks = append(marks, mark)
	}
	return marks, nil
}
