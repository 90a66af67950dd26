package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"timed-quiz-service/internal/domain"
)

type markRow struct {
	bun.BaseModel `bun:"table:marks"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	Score     int       `bun:"score,notnull"`
	Total     int       `bun:"total,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}

func (r markRow) toDomain() domain.Mark {
	return domain.Mark{
		ID:        r.ID.String(),
		Score:     r.Score,
		Total:     r.Total,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

// MarkStore persists score reports in the marks table.
type MarkStore struct {
	db    *bun.DB
	clock func() time.Time
}

func NewMarkStore(db *bun.DB) *MarkStore {
	return &MarkStore{db: db, clock: time.Now}
}

func (s *MarkStore) SaveMark(ctx context.Context, report domain.Report) (domain.Mark, error) {
	if err := report.Validate(); err != nil {
		return domain.Mark{}, err
	}
	row := markRow{
		ID:        uuid.New(),
		Score:     report.Score,
		Total:     report.Total,
		CreatedAt: s.clock().UTC(),
	}
	if _, err := s.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return domain.Mark{}, fmt.Errorf("insert mark: %w", err)
	}
	return row.toDomain(), nil
}

func (s *MarkStore) ListMarks(ctx context.Context, limit int) ([]domain.Mark, error) {
	var rows []markRow
	q := s.db.NewSelect().Model(&rows).OrderExpr("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list marks: %w", err)
	}
	marks := make([]domain.Mark, 0, len(rows))
	for _, row := range rows {
		marks = append(marks, row.toDomain())
	}
	return marks, nil
}
