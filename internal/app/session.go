package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"timed-quiz-service/internal/domain"
)

// SessionState is the lifecycle position of a quiz session.
type SessionState int

const (
	SessionIdle SessionState = iota
	SessionLoading
	SessionRunning
	SessionSubmitted
	SessionFailed
	SessionClosed
)

func (s SessionState) String() string {
	switch s {
	case SessionIdle:
		return "idle"
	case SessionLoading:
		return "loading"
	case SessionRunning:
		return "running"
	case SessionSubmitted:
		return "submitted"
	case SessionFailed:
		return "failed"
	case SessionClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// SessionConfig holds the per-session quiz parameters. Tick is the wall-clock
// length of one countdown second; only tests shorten it.
type SessionConfig struct {
	Size        int
	Duration    time.Duration
	Tick        time.Duration
	ResultLabel string
	Home        HomeLink
}

// DefaultSessionConfig is twenty questions in twenty minutes.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Size:        20,
		Duration:    20 * time.Minute,
		Tick:        time.Second,
		ResultLabel: "Score",
		Home:        HomeLink{Label: "Back to home", Path: "/home"},
	}
}

// SessionOption customizes a Session.
type SessionOption func(*Session)

// WithRand fixes the random source used by the selector.
func WithRand(rnd *rand.Rand) SessionOption {
	return func(s *Session) { s.rnd = rnd }
}

// WithTicker replaces the countdown's ticker, for deterministic tests.
func WithTicker(newTicker TickerFunc) SessionOption {
	return func(s *Session) { s.newTicker = newTicker }
}

// Session is one run from start to result display. It owns the selection,
// the responses, the countdown and the final result.
type Session struct {
	id        string
	cfg       SessionConfig
	loader    BankLoader
	view      View
	reporter  Reporter
	rnd       *rand.Rand
	newTicker TickerFunc
	countdown *Countdown

	mu        sync.Mutex
	state     SessionState
	baseCtx   context.Context
	selection []domain.Question
	responses map[int]string
	result    domain.Result

	submitOnce sync.Once
	reported   chan error
}

func NewSession(id string, cfg SessionConfig, loader BankLoader, view View, reporter Reporter, opts ...SessionOption) *Session {
	s := &Session{
		id:       id,
		cfg:      cfg,
		loader:   loader,
		view:     view,
		reporter: reporter,
		baseCtx:  context.Background(),
		reported: make(chan error, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s.countdown = NewCountdown(cfg.Tick, s.newTicker)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Start loads the bank, draws the selection, renders the form and starts the
// countdown. A load failure leaves the session Failed with the quiz hidden.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != SessionIdle {
		s.mu.Unlock()
		return domain.ErrSessionStarted
	}
	s.state = SessionLoading
	s.baseCtx = context.WithoutCancel(ctx)
	s.mu.Unlock()

	bank, err := s.loader.LoadBank(ctx)
	if err == nil && len(bank) == 0 {
		err = domain.ErrEmptyBank
	}
	if err != nil {
		log.Printf("session %s: failed to load questions: %v", s.id, err)
		s.mu.Lock()
		if s.state == SessionLoading {
			s.state = SessionFailed
		}
		s.mu.Unlock()
		return fmt.Errorf("%w: %w", domain.ErrLoadFailure, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SessionLoading {
		// closed while the bank was in flight
		return domain.ErrNotRunning
	}
	s.selection = Select(bank, s.cfg.Size, s.rnd)
	s.state = SessionRunning
	s.renderLocked()

	seconds := int(s.cfg.Duration / time.Second)
	return s.countdown.Start(seconds, s.onTick, s.onExpire)
}

// Render rebuilds the form from the selection. The previous form is
// replaced, so any choices made on it are cleared.
func (s *Session) Render() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SessionRunning {
		return domain.ErrNotRunning
	}
	s.renderLocked()
	return nil
}

func (s *Session) renderLocked() {
	s.responses = make(map[int]string, len(s.selection))
	s.view.RenderForm(BuildForm(s.selection))
	s.view.HideStart()
	s.view.ShowQuiz()
}

// Answer records the chosen option for the question at index. Choosing
// again replaces the earlier choice; an empty option clears it.
func (s *Session) Answer(index int, option string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SessionRunning {
		return domain.ErrNotRunning
	}
	if index < 0 || index >= len(s.selection) {
		return fmt.Errorf("%w: index %d", domain.ErrQuestionNotFound, index)
	}
	if option == "" {
		delete(s.responses, index)
		return nil
	}
	for _, opt := range s.selection[index].Options {
		if opt == option {
			s.responses[index] = option
			return nil
		}
	}
	return fmt.Errorf("%w: %q", domain.ErrOptionNotFound, option)
}

// Submit is the single submission path for both the user and expiry. The
// first call cancels the countdown, scores the frozen responses, shows the
// result and dispatches one report; later calls return the same result with
// ErrAlreadySubmitted.
func (s *Session) Submit(ctx context.Context) (domain.Result, error) {
	s.mu.Lock()
	state := s.state
	s.mu.Unlock()

	switch state {
	case SessionRunning:
	case SessionSubmitted:
		return s.Result(), domain.ErrAlreadySubmitted
	default:
		return domain.Result{}, domain.ErrNotRunning
	}

	first := false
	s.submitOnce.Do(func() {
		first = true
		s.submit(ctx)
	})
	if !first {
		return s.Result(), domain.ErrAlreadySubmitted
	}
	return s.Result(), nil
}

func (s *Session) submit(ctx context.Context) {
	s.countdown.Cancel()

	s.mu.Lock()
	result := domain.Result{
		Score: Score(s.selection, s.responses),
		Total: len(s.selection),
		Label: s.cfg.ResultLabel,
	}
	s.result = result
	s.state = SessionSubmitted
	s.view.HideQuiz()
	s.view.ShowResult(result, s.cfg.Home)
	s.mu.Unlock()

	// the report must outlive the caller, e.g. a closed socket
	go s.report(context.WithoutCancel(ctx), result.Report())
}

func (s *Session) report(ctx context.Context, report domain.Report) {
	defer close(s.reported)
	err := s.reporter.Report(ctx, report)
	if err != nil {
		log.Printf("session %s: failed to report score %d/%d: %v", s.id, report.Score, report.Total, err)
	}
	s.reported <- err
}

func (s *Session) onTick(remaining int) {
	s.view.SetTimer(FormatClock(remaining))
}

func (s *Session) onExpire() {
	s.mu.Lock()
	ctx := s.baseCtx
	s.mu.Unlock()

	if _, err := s.Submit(ctx); err != nil && !errors.Is(err, domain.ErrAlreadySubmitted) && !errors.Is(err, domain.ErrNotRunning) {
		log.Printf("session %s: automatic submission failed: %v", s.id, err)
	}
}

// Close stops the countdown without submitting, as when the page goes away.
func (s *Session) Close() {
	s.countdown.Cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SessionSubmitted && s.state != SessionFailed {
		s.state = SessionClosed
	}
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Selection returns a copy of the session's questions.
func (s *Session) Selection() []domain.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Question, len(s.selection))
	copy(out, s.selection)
	return out
}

// Result returns the final result; it is zero before submission.
func (s *Session) Result() domain.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Reported yields the outcome of the score report once it finishes and is
// then closed. It stays open until the session has been submitted.
func (s *Session) Reported() <-chan error {
	return s.reported
}
