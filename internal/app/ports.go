package app

import (
	"context"

	"timed-quiz-service/internal/domain"
)

// BankLoader fetches the question bank (file, HTTP, Postgres, cache...).
type BankLoader interface {
	LoadBank(ctx context.Context) ([]domain.Question, error)
}

// Reporter delivers a final score to the persistence endpoint.
type Reporter interface {
	Report(ctx context.Context, report domain.Report) error
}

// MarkRepository persists score reports.
type MarkRepository interface {
	SaveMark(ctx context.Context, report domain.Report) (domain.Mark, error)
	ListMarks(ctx context.Context, limit int) ([]domain.Mark, error)
}

// HomeLink is the navigation control shown with the result.
type HomeLink struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// View is the page a session drives. Implementations replace, never append,
// the form region on RenderForm.
type View interface {
	HideStart()
	ShowQuiz()
	HideQuiz()
	RenderForm(form Form)
	SetTimer(clock string)
	ShowResult(result domain.Result, home HomeLink)
}

// MarkReporter reports scores straight into a MarkRepository, for servers
// that host the score endpoint in-process.
type MarkReporter struct {
	marks MarkRepository
}

func NewMarkReporter(marks MarkRepository) *MarkReporter {
	return &MarkReporter{marks: marks}
}

func (r *MarkReporter) Report(ctx context.Context, report domain.Report) error {
	if err := report.Validate(); err != nil {
		return err
	}
	_, err := r.marks.SaveMark(ctx, report)
	return err
}
