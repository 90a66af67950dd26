package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"timed-quiz-service/internal/app"
	"timed-quiz-service/internal/domain"
	"timed-quiz-service/internal/view"
)

// Actions is what the model drives; *app.Session satisfies it.
type Actions interface {
	Start(ctx context.Context) error
	Answer(index int, option string) error
	Submit(ctx context.Context) (domain.Result, error)
}

type phase int

const (
	phaseLoading phase = iota
	phaseRunning
	phaseResult
	phaseFailed
)

// Options configures the terminal model.
type Options struct {
	NoColor bool
}

// Model renders one quiz session in the terminal.
type Model struct {
	ctx     context.Context
	actions Actions
	events  <-chan Event
	keys    keyMap
	help    help.Model
	styles  styles

	phase       phase
	quizVisible bool
	form        app.Form
	question    int
	cursor      []int
	chosen      map[int]string
	clock       string
	result      domain.Result
	home        app.HomeLink
	status      string
}

func NewModel(ctx context.Context, events <-chan Event, actions Actions, opts Options) Model {
	return Model{
		ctx:     ctx,
		actions: actions,
		events:  events,
		keys:    defaultKeys(),
		help:    help.New(),
		styles:  newStyles(opts.NoColor),
		chosen:  map[int]string{},
	}
}

// EventMsg wraps a page event for bubbletea.
type EventMsg struct {
	Event Event
}

type startedMsg struct{ err error }

type submittedMsg struct{ err error }

// Init starts the session and waits for its first event.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.events), startCmd(m.ctx, m.actions))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = typed.Width
		return m, nil
	case EventMsg:
		return applyEvent(m, typed.Event), waitForEvent(m.events)
	case startedMsg:
		if typed.err != nil {
			m.phase = phaseFailed
			m.status = typed.err.Error()
		}
		return m, nil
	case submittedMsg:
		if typed.err != nil && !errors.Is(typed.err, domain.ErrAlreadySubmitted) {
			m.status = typed.err.Error()
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.phase != phaseRunning || !m.quizVisible || len(m.form.Groups) == 0 {
		return m, nil
	}

	group := m.form.Groups[m.question]
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor[m.question] > 0 {
			m.cursor[m.question]--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor[m.question] < len(group.Options)-1 {
			m.cursor[m.question]++
		}
	case key.Matches(msg, m.keys.Next):
		if m.question < len(m.form.Groups)-1 {
			m.question++
		}
	case key.Matches(msg, m.keys.Prev):
		if m.question > 0 {
			m.question--
		}
	case key.Matches(msg, m.keys.Choose):
		option := group.Options[m.cursor[m.question]]
		if err := m.actions.Answer(group.Index, option); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.chosen = copyChosen(m.chosen)
		m.chosen[group.Index] = option
		m.status = ""
	case key.Matches(msg, m.keys.Clear):
		if err := m.actions.Answer(group.Index, ""); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.chosen = copyChosen(m.chosen)
		delete(m.chosen, group.Index)
	case key.Matches(msg, m.keys.Submit):
		return m, submitCmd(m.ctx, m.actions)
	}
	return m, nil
}

// applyEvent mirrors a page change into the model.
func applyEvent(m Model, event Event) Model {
	switch event.Kind {
	case EventForm:
		// a new form replaces the old one and its choices
		m.form = event.Form
		m.question = 0
		m.cursor = make([]int, len(event.Form.Groups))
		m.chosen = map[int]string{}
		m.phase = phaseRunning
	case EventQuizShown:
		m.quizVisible = true
	case EventQuizHidden:
		m.quizVisible = false
	case EventTimer:
		m.clock = event.Clock
	case EventResult:
		m.result = event.Result
		m.home = event.Home
		m.phase = phaseResult
	}
	return m
}

func (m Model) View() string {
	s := m.styles
	lines := []string{s.title.Render("Timed quiz")}

	switch m.phase {
	case phaseLoading:
		lines = append(lines, s.muted.Render("Loading questions..."))
	case phaseFailed:
		lines = append(lines, s.errorMsg.Render("Could not start the quiz: "+m.status))
	case phaseResult:
		lines = append(lines, s.result.Render(m.result.String()))
		lines = append(lines, s.muted.Render(fmt.Sprintf("%s (%s), press q to leave", m.home.Label, m.home.Path)))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	case phaseRunning:
		if m.quizVisible && len(m.form.Groups) > 0 {
			lines = append(lines, s.timer.Render(view.TimerText(m.clock)))
			lines = append(lines, m.renderQuestion())
			lines = append(lines, s.muted.Render(fmt.Sprintf("Answered %d of %d", len(m.chosen), len(m.form.Groups))))
		}
	}
	if m.status != "" && m.phase != phaseFailed {
		lines = append(lines, s.errorMsg.Render(m.status))
	}
	lines = append(lines, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderQuestion() string {
	s := m.styles
	group := m.form.Groups[m.question]
	var b strings.Builder
	b.WriteString(s.prompt.Render(fmt.Sprintf("%d. %s", group.Number, group.Prompt)))
	for i, opt := range group.Options {
		b.WriteString("\n")
		pointer := "  "
		if i == m.cursor[m.question] {
			pointer = s.cursor.Render("> ")
		}
		mark := "( ) "
		if m.chosen[group.Index] == opt {
			mark = s.chosen.Render("(•) ")
		}
		b.WriteString(pointer + mark + opt)
	}
	return b.String()
}

func copyChosen(in map[int]string) map[int]string {
	out := make(map[int]string, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}

// waitForEvent blocks until the session pushes a page change.
func waitForEvent(events <-chan Event) tea.Cmd {
	return func() tea.Msg {
		if events == nil {
			return nil
		}
		event, ok := <-events
		if !ok {
			return tea.Quit()
		}
		return EventMsg{Event: event}
	}
}

func startCmd(ctx context.Context, actions Actions) tea.Cmd {
	return func() tea.Msg {
		return startedMsg{err: actions.Start(ctx)}
	}
}

func submitCmd(ctx context.Context, actions Actions) tea.Cmd {
	return func() tea.Msg {
		_, err := actions.Submit(ctx)
		return submittedMsg{err: err}
	}
}
