package app

import (
	"strconv"

	"timed-quiz-service/internal/domain"
)

// Form is the renderable projection of a selection.
type Form struct {
	Groups []FormGroup `json:"groups"`
}

// FormGroup is one labeled question with its exclusive choices.
type FormGroup struct {
	Index   int      `json:"index"`
	Name    string   `json:"name"`
	Number  int      `json:"number"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// FieldName is the control name used for the question at index i.
func FieldName(i int) string {
	return "q" + strconv.Itoa(i)
}

// BuildForm keys each question by its selection index so that exactly one
// option (or none) can be read back per index.
func BuildForm(selection []domain.Question) Form {
	groups := make([]FormGroup, 0, len(selection))
	for i, q := range selection {
		options := make([]string, len(q.Options))
		copy(options, q.Options)
		groups = append(groups, FormGroup{
			Index:   i,
			Name:    FieldName(i),
			Number:  i + 1,
			Prompt:  q.Prompt,
			Options: options,
		})
	}
	return Form{Groups: groups}
}
