package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"timed-quiz-service/internal/app"
	"timed-quiz-service/internal/domain"
)

type fakeActions struct {
	answers   []string
	submits   int
	startErr  error
	answerErr error
}

func (f *fakeActions) Start(context.Context) error { return f.startErr }

func (f *fakeActions) Answer(index int, option string) error {
	if f.answerErr != nil {
		return f.answerErr
	}
	f.answers = append(f.answers, option)
	return nil
}

func (f *fakeActions) Submit(context.Context) (domain.Result, error) {
	f.submits++
	if f.submits > 1 {
		return domain.Result{}, domain.ErrAlreadySubmitted
	}
	return domain.Result{Score: 1, Total: 2, Label: "Score"}, nil
}

func sampleForm() app.Form {
	return app.BuildForm([]domain.Question{
		{Prompt: "Capital of France?", Options: []string{"Paris", "Lyon"}, Answer: "Paris"},
		{Prompt: "2 + 2?", Options: []string{"3", "4"}, Answer: "4"},
	})
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return model, cmd
}

func runningModel(t *testing.T, actions *fakeActions) Model {
	t.Helper()
	m := NewModel(context.Background(), nil, actions, Options{NoColor: true})
	m, _ = update(t, m, EventMsg{Event: Event{Kind: EventForm, Form: sampleForm()}})
	m, _ = update(t, m, EventMsg{Event: Event{Kind: EventQuizShown}})
	m, _ = update(t, m, EventMsg{Event: Event{Kind: EventTimer, Clock: "20:00"}})
	return m
}

func TestModelShowsQuestionAndTimer(t *testing.T) {
	m := runningModel(t, &fakeActions{})
	out := m.View()
	if !strings.Contains(out, "Time Left: 20:00") {
		t.Fatalf("expected timer in view:\n%s", out)
	}
	if !strings.Contains(out, "1. Capital of France?") {
		t.Fatalf("expected first question in view:\n%s", out)
	}
}

func TestModelAnswersWithKeys(t *testing.T) {
	actions := &fakeActions{}
	m := runningModel(t, actions)

	m, _ = update(t, m, runeKey('j'))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, runeKey('l'))
	m, _ = update(t, m, runeKey('j'))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if len(actions.answers) != 2 || actions.answers[0] != "Lyon" || actions.answers[1] != "4" {
		t.Fatalf("unexpected answers %v", actions.answers)
	}
	if !strings.Contains(m.View(), "Answered 2 of 2") {
		t.Fatalf("expected progress in view:\n%s", m.View())
	}

	m, _ = update(t, m, runeKey('x'))
	if len(m.chosen) != 1 || actions.answers[2] != "" {
		t.Fatalf("expected cleared choice, chosen=%v answers=%v", m.chosen, actions.answers)
	}
}

func TestModelReportsAnswerErrors(t *testing.T) {
	actions := &fakeActions{answerErr: domain.ErrNotRunning}
	m := runningModel(t, actions)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(m.chosen) != 0 || m.status != domain.ErrNotRunning.Error() {
		t.Fatalf("unexpected state chosen=%v status=%q", m.chosen, m.status)
	}
}

func TestModelRerenderClearsChoices(t *testing.T) {
	m := runningModel(t, &fakeActions{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, EventMsg{Event: Event{Kind: EventForm, Form: sampleForm()}})
	if len(m.chosen) != 0 {
		t.Fatalf("expected choices cleared, got %v", m.chosen)
	}
}

func TestModelSubmitAndResult(t *testing.T) {
	actions := &fakeActions{}
	m := runningModel(t, actions)

	m, cmd := update(t, m, runeKey('s'))
	if cmd == nil {
		t.Fatalf("expected submit command")
	}
	m, _ = update(t, m, cmd())
	if actions.submits != 1 || m.status != "" {
		t.Fatalf("unexpected submit state submits=%d status=%q", actions.submits, m.status)
	}

	m, _ = update(t, m, EventMsg{Event: Event{Kind: EventQuizHidden}})
	m, _ = update(t, m, EventMsg{Event: Event{
		Kind:   EventResult,
		Result: domain.Result{Score: 1, Total: 2, Label: "Score"},
		Home:   app.HomeLink{Label: "Back to home", Path: "/home"},
	}})
	out := m.View()
	if !strings.Contains(out, "Score: 1 / 2") || !strings.Contains(out, "Back to home") {
		t.Fatalf("unexpected result view:\n%s", out)
	}

	// keys other than quit do nothing once the result is shown
	if _, cmd := update(t, m, runeKey('s')); cmd != nil {
		t.Fatalf("expected no command after result")
	}
	if _, cmd := update(t, m, runeKey('q')); cmd == nil {
		t.Fatalf("expected quit command")
	}
}

func TestModelStartFailure(t *testing.T) {
	m := NewModel(context.Background(), nil, &fakeActions{}, Options{NoColor: true})
	m, _ = update(t, m, startedMsg{err: errors.New("question bank load failed: boom")})
	out := m.View()
	if !strings.Contains(out, "Could not start the quiz") || strings.Contains(out, "Time Left") {
		t.Fatalf("unexpected failure view:\n%s", out)
	}
}

func TestControllerForwardsViewCalls(t *testing.T) {
	ctrl := NewController()
	ctrl.HideStart()
	ctrl.RenderForm(sampleForm())
	ctrl.SetTimer("00:05")
	ctrl.Close()
	// blocked senders are released after Close
	for i := 0; i < 300; i++ {
		ctrl.SetTimer("00:00")
	}

	first := <-ctrl.Events()
	second := <-ctrl.Events()
	if first.Kind != EventForm || second.Kind != EventTimer || second.Clock != "00:05" {
		t.Fatalf("unexpected events %+v %+v", first, second)
	}
}
