package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers "sqlite"

	"timed-quiz-service/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS marks (
    id TEXT PRIMARY KEY,
    score INTEGER NOT NULL,
    total INTEGER NOT NULL,
    created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS marks_created_at_idx ON marks (created_at);
`

// MarkStore persists score reports in a local SQLite file for offline use.
type MarkStore struct {
	db    *sql.DB
	clock func() time.Time
}

// Open opens (or creates) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*MarkStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// a single writer avoids SQLITE_BUSY under concurrent reports
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: %s: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: schema: %w", err)
	}
	return &MarkStore{db: db, clock: time.Now}, nil
}

// Close closes the underlying database.
func (s *MarkStore) Close() error {
	return s.db.Close()
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
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO marks (id, score, total, created_at) VALUES (?, ?, ?, ?)`,
		mark.ID, mark.Score, mark.Total, mark.CreatedAt.UnixNano(),
	)
	if err != nil {
		return domain.Mark{}, fmt.Errorf("insert mark: %w", err)
	}
	return mark, nil
}

func (s *MarkStore) ListMarks(ctx context.Context, limit int) ([]domain.Mark, error) {
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, score, total, created_at FROM marks ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list marks: %w", err)
	}
	defer rows.Close()

	var marks []domain.Mark
	for rows.Next() {
		var (
			mark    domain.Mark
			created int64
		)
		if err := rows.Scan(&mark.ID, &mark.Score, &mark.Total, &created); err != nil {
			return nil, fmt.Errorf("scan mark: %w", err)
		}
		mark.CreatedAt = time.Unix(0, created).UTC()
		marks = append(marks, mark)
	}
	return marks, rows.Err()
}
