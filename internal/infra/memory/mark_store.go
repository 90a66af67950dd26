package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"timed-quiz-service/internal/domain"
)

// MarkStore keeps score reports in process memory, newest last.
type MarkStore struct {
	clock func() time.Time

	mu    sync.RWMutex
	marks []domain.Mark
}

func NewMarkStore() *MarkStore {
	return NewMarkStoreWithClock(time.Now)
}

// NewMarkStoreWithClock is test-only for deterministic timestamps.
func NewMarkStoreWithClock(now func() time.Time) *MarkStore {
	return &MarkStore{clock: now}
}

func (s *MarkStore) SaveMark(_ context.Context, report domain.Report) (domain.Mark, error) {
	if err := report.Validate(); err != nil {
		return domain.Mark{}, err
	}
	mark := domain.Mark{
		ID:        uuid.NewString(),
		Score:     report.Score,
		Total:     report.Total,
		CreatedAt: s.clock().UTC(),
	}
	s.mu.Lock()
	s.marks = append(s.marks, mark)
	s.mu.Unlock()
	return mark, nil
}

// ListMarks returns up to limit marks, newest first. limit <= 0 returns all.
func (s *MarkStore) ListMarks(_ context.Context, limit int) ([]domain.Mark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.marks)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]domain.Mark, 0, limit)
	for i := n - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.marks[i])
	}
	return out, nil
}
