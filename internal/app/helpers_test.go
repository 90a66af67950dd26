package app_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"timed-quiz-service/internal/app"
	"timed-quiz-service/internal/domain"
)

type staticLoader struct {
	bank  []domain.Question
	err   error
	calls int
}

func (l *staticLoader) LoadBank(context.Context) ([]domain.Question, error) {
	l.calls++
	return l.bank, l.err
}

type recordingReporter struct {
	mu      sync.Mutex
	reports []domain.Report
	err     error
}

func (r *recordingReporter) Report(_ context.Context, report domain.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report)
	return r.err
}

func (r *recordingReporter) sent() []domain.Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Report(nil), r.reports...)
}

type recordingView struct {
	mu          sync.Mutex
	startHidden bool
	quizVisible bool
	forms       []app.Form
	timers      []string
	results     []domain.Result
	home        app.HomeLink
}

func (v *recordingView) HideStart() { v.mu.Lock(); v.startHidden = true; v.mu.Unlock() }
func (v *recordingView) ShowQuiz()  { v.mu.Lock(); v.quizVisible = true; v.mu.Unlock() }
func (v *recordingView) HideQuiz()  { v.mu.Lock(); v.quizVisible = false; v.mu.Unlock() }

func (v *recordingView) RenderForm(form app.Form) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.forms = append(v.forms, form)
}

func (v *recordingView) SetTimer(clock string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.timers = append(v.timers, clock)
}

func (v *recordingView) ShowResult(result domain.Result, home app.HomeLink) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.results = append(v.results, result)
	v.home = home
}

func (v *recordingView) timerLog() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.timers...)
}

// manualTicker only fires when the test says so.
type manualTicker struct {
	ch chan time.Time
}

func (m *manualTicker) C() <-chan time.Time { return m.ch }
func (m *manualTicker) Stop()               {}

// fire delivers one tick and reports whether the countdown took it.
func (m *manualTicker) fire() bool {
	select {
	case m.ch <- time.Now():
		return true
	case <-time.After(100 * time.Millisecond):
		return false
	}
}

type tickerSource struct {
	created chan *manualTicker
}

func newTickerSource() *tickerSource {
	return &tickerSource{created: make(chan *manualTicker, 4)}
}

func (s *tickerSource) New(time.Duration) app.Ticker {
	t := &manualTicker{ch: make(chan time.Time)}
	s.created <- t
	return t
}

func (s *tickerSource) next() *manualTicker {
	select {
	case t := <-s.created:
		return t
	case <-time.After(time.Second):
		panic("no ticker created")
	}
}

func sampleBank(n int) []domain.Question {
	bank := make([]domain.Question, 0, n)
	for i := 0; i < n; i++ {
		bank = append(bank, domain.Question{
			Prompt:  fmt.Sprintf("What is %d + %d?", i, i),
			Options: []string{fmt.Sprint(i + i), fmt.Sprint(i + i + 1), fmt.Sprint(i + i + 2)},
			Answer:  fmt.Sprint(i + i),
		})
	}
	return bank
}

func waitReported(t *testing.T, s *app.Session) error {
	t.Helper()
	select {
	case err := <-s.Reported():
		return err
	case <-time.After(2 * time.Second):
		t.Fatalf("report was not dispatched")
		return nil
	}
}
