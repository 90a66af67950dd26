package tui

import (
	"sync"

	"timed-quiz-service/internal/app"
	"timed-quiz-service/internal/domain"
)

// EventKind identifies a page change pushed by the session.
type EventKind int

const (
	// EventForm replaces the question form.
	EventForm EventKind = iota
	// EventQuizShown reveals the quiz.
	EventQuizShown
	// EventQuizHidden hides the quiz.
	EventQuizHidden
	// EventTimer updates the clock.
	EventTimer
	// EventResult shows the final score.
	EventResult
)

// Event carries one page change to the model.
type Event struct {
	Kind   EventKind
	Form   app.Form
	Clock  string
	Result domain.Result
	Home   app.HomeLink
}

// Controller is the session's view in the terminal. It turns view calls into
// events for the bubbletea model.
type Controller struct {
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

var _ app.View = (*Controller)(nil)

func NewController() *Controller {
	return &Controller{
		events: make(chan Event, 256),
		done:   make(chan struct{}),
	}
}

// Events is the stream the model consumes.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// Close releases any session goroutine waiting to deliver an event once the
// program has exited.
func (c *Controller) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// HideStart is a no-op: the terminal has no start control.
func (c *Controller) HideStart() {}

func (c *Controller) ShowQuiz() { c.send(Event{Kind: EventQuizShown}) }

func (c *Controller) HideQuiz() { c.send(Event{Kind: EventQuizHidden}) }

func (c *Controller) RenderForm(form app.Form) { c.send(Event{Kind: EventForm, Form: form}) }

func (c *Controller) SetTimer(clock string) { c.send(Event{Kind: EventTimer, Clock: clock}) }

func (c *Controller) ShowResult(result domain.Result, home app.HomeLink) {
	c.send(Event{Kind: EventResult, Result: result, Home: home})
}

func (c *Controller) send(event Event) {
	select {
	case c.events <- event:
	case <-c.done:
	}
}
