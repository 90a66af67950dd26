package domain

import "errors"

var (
	// ErrLoadFailure wraps any failure to fetch or parse the question bank.
	ErrLoadFailure = errors.New("question bank load failed")
	// ErrEmptyBank is returned when a bank parses but holds no questions.
	ErrEmptyBank = errors.New("question bank is empty")
	// ErrInvalidQuestion indicates a bank record that cannot be presented or scored.
	ErrInvalidQuestion = errors.New("invalid question record")
	// ErrSessionNotFound is returned when a quiz session id is unknown.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrSessionStarted is returned when Start is called on a session that already left Idle.
	ErrSessionStarted = errors.New("quiz session already started")
	// ErrNotRunning is returned when answers or submission arrive outside the running state.
	ErrNotRunning = errors.New("quiz session is not running")
	// ErrAlreadySubmitted is returned by every submission after the first.
	ErrAlreadySubmitted = errors.New("quiz already submitted")
	// ErrQuestionNotFound indicates an answer for an index outside the selection.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrOptionNotFound indicates an answer that is not one of the question's options.
	ErrOptionNotFound = errors.New("option not found")
	// ErrTimerRunning is returned when a countdown is started twice.
	ErrTimerRunning = errors.New("countdown already started")
	// ErrInvalidReport indicates a score report with missing or out-of-range fields.
	ErrInvalidReport = errors.New("invalid score report")
)
