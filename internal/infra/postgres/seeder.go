package postgres

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"timed-quiz-service/internal/domain"
)

type questionRow struct {
	bun.BaseModel `bun:"table:questions"`

	ID       int64           `bun:"id,pk,autoincrement"`
	Position int             `bun:"position,notnull"`
	Data     domain.Question `bun:"data,type:jsonb,notnull"`
}

// ReplaceBank swaps the stored bank for the given one in a single transaction.
func ReplaceBank(ctx context.Context, db *bun.DB, bank []domain.Question) error {
	rows := make([]questionRow, 0, len(bank))
	for i, q := range bank {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
		rows = append(rows, questionRow{Position: i, Data: q})
	}

	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*questionRow)(nil)).Where("TRUE").Exec(ctx); err != nil {
			return fmt.Errorf("clear questions: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return fmt.Errorf("insert questions: %w", err)
		}
		return nil
	})
}
