package app

import (
	"strings"

	"timed-quiz-service/internal/domain"
)

// AnswerMatches compares a response with an answer key. Surrounding
// whitespace is ignored, case is not.
func AnswerMatches(response, answer string) bool {
	return strings.TrimSpace(response) == strings.TrimSpace(answer)
}

// Score counts the selection indices whose recorded response matches the key.
// Indices without a response are unanswered and never match.
func Score(selection []domain.Question, responses map[int]string) int {
	score := 0
	for i, q := range selection {
		response, ok := responses[i]
		if ok && AnswerMatches(response, q.Answer) {
			score++
		}
	}
	return score
}
