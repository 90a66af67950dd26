package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"timed-quiz-service/internal/app"
	"timed-quiz-service/internal/domain"
	"timed-quiz-service/internal/infra/memory"
)

func TestBankRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	loader := &countingLoader{BankLoader: memory.NewStaticBankLoader(sampleBank())}
	repo := NewBankRepository(client, loader, time.Minute)

	bank, err := repo.LoadBank(context.Background())
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	if loader.calls != 1 || len(bank) != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists(BankKey) {
		t.Fatalf("expected bank cached under %s", BankKey)
	}

	// Second call should hit cache, loader not incremented.
	bank, _ = repo.LoadBank(context.Background())
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if bank[0].Answer != "4" || len(bank[0].Options) != 2 {
		t.Fatalf("cached bank lost fields: %+v", bank[0])
	}

	mr.FastForward(2 * time.Minute)
	_, _ = repo.LoadBank(context.Background())
	if loader.calls != 2 {
		t.Fatalf("expected reload after ttl, loader calls=%d", loader.calls)
	}
}

func TestBankRepositoryIgnoresCorruptCache(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	if err := mr.Set(BankKey, "not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	loader := &countingLoader{BankLoader: memory.NewStaticBankLoader(sampleBank())}
	repo := NewBankRepository(newClient(mr), loader, time.Minute)

	if _, err := repo.LoadBank(context.Background()); err != nil {
		t.Fatalf("load bank: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected fallback to loader, calls=%d", loader.calls)
	}

	if err := repo.Invalidate(context.Background()); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if mr.Exists(BankKey) {
		t.Fatalf("expected cache cleared")
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

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
