package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"timed-quiz-service/internal/app"
	"timed-quiz-service/internal/domain"
)

func TestBankRepositoryCaches(t *testing.T) {
	loader := &countingLoader{BankLoader: NewStaticBankLoader(sampleBank())}
	repo := NewBankRepository(loader, time.Minute)

	if _, err := repo.LoadBank(context.Background()); err != nil {
		t.Fatalf("load bank: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.LoadBank(context.Background()); err != nil {
		t.Fatalf("load bank 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestBankRepositoryReloadsAfterExpiry(t *testing.T) {
	loader := &countingLoader{BankLoader: NewStaticBankLoader(sampleBank())}
	repo := NewBankRepository(loader, time.Minute)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	repo.clock = func() time.Time { return now }

	_, _ = repo.LoadBank(context.Background())
	now = now.Add(2 * time.Minute)
	_, _ = repo.LoadBank(context.Background())
	if loader.calls != 2 {
		t.Fatalf("expected reload after ttl, loader calls %d", loader.calls)
	}

	if err := repo.Invalidate(context.Background()); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	_, _ = repo.LoadBank(context.Background())
	if loader.calls != 3 {
		t.Fatalf("expected reload after invalidate, loader calls %d", loader.calls)
	}
}

func TestBankRepositoryDoesNotCacheErrors(t *testing.T) {
	loader := &countingLoader{BankLoader: NewStaticBankLoader(nil)}
	repo := NewBankRepository(loader, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := repo.LoadBank(context.Background()); !errors.Is(err, domain.ErrEmptyBank) {
			t.Fatalf("expected empty bank, got %v", err)
		}
	}
	if loader.calls != 2 {
		t.Fatalf("expected failures to be retried, loader calls %d", loader.calls)
	}
}

func TestFileBankLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "questions.json")
	body := `[{"question":"What is 2 + 2?","options":["3","4"],"answer":"4"}]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write bank: %v", err)
	}

	bank, err := NewFileBankLoader(path).LoadBank(context.Background())
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	if len(bank) != 1 || bank[0].Answer != "4" || len(bank[0].Options) != 2 {
		t.Fatalf("unexpected bank %+v", bank)
	}

	if _, err := NewFileBankLoader(filepath.Join(dir, "missing.json")).LoadBank(context.Background()); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

type countingLoader struct {
	app.BankLoader
	calls int
}

func (l *countingLoader) LoadBank(ctx context.Context) ([]domain.Question, error) {
	l.calls++
	return l.BankLoader.LoadBank(ctx)
}

func sampleBank() []domain.Question {
	return []domain.Question{
		{
			Prompt:  "What is 2 + 2?",
			Options: []string{"3", "4"},
			Answer:  "4",
		},
	}
}
