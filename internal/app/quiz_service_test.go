package app_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"timed-quiz-service/internal/app"
	"timed-quiz-service/internal/domain"
	"timed-quiz-service/internal/infra/memory"
)

func TestQuizServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore()
	marks := memory.NewMarkStore()
	ticks := newTickerSource()
	service := newTestService(store, memory.NewStaticBankLoader(sampleBank(25)), marks, ticks)

	view := &recordingView{}
	session, err := service.Start(ctx, view)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	ticks.next()

	if _, err := service.Get(session.ID()); err != nil {
		t.Fatalf("expected session registered: %v", err)
	}
	q := session.Selection()[0]
	if err := service.Answer(session.ID(), 0, q.Answer); err != nil {
		t.Fatalf("answer: %v", err)
	}
	result, err := service.Submit(ctx, session.ID())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 1 || result.Total != 20 {
		t.Fatalf("expected 1/20, got %+v", result)
	}
	if err := waitReported(t, session); err != nil {
		t.Fatalf("report: %v", err)
	}

	saved, _ := marks.ListMarks(ctx, 10)
	if len(saved) != 1 || saved[0].Score != 1 || saved[0].Total != 20 {
		t.Fatalf("expected mark persisted, got %+v", saved)
	}

	service.Discard(session.ID())
	if _, err := service.Get(session.ID()); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session discarded, got %v", err)
	}
	if err := service.Answer(session.ID(), 0, q.Answer); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected unknown session, got %v", err)
	}
}

func TestQuizServiceDiscardsFailedSessions(t *testing.T) {
	store := memory.NewSessionStore()
	service := newTestService(store, memory.NewStaticBankLoader(nil), memory.NewMarkStore(), newTickerSource())

	if _, err := service.Start(context.Background(), &recordingView{}); !errors.Is(err, domain.ErrLoadFailure) {
		t.Fatalf("expected load failure, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected failed session discarded, %d live", store.Len())
	}
}

func newTestService(store app.SessionRepository, loader app.BankLoader, marks app.MarkRepository, ticks *tickerSource) *app.QuizService {
	cfg := app.DefaultSessionConfig()
	cfg.Duration = time.Minute
	return app.NewQuizService(store, loader, app.NewMarkReporter(marks), cfg,
		app.WithRand(rand.New(rand.NewSource(5))),
		app.WithTicker(ticks.New),
	)
}
