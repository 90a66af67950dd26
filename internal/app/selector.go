package app

import (
	"math/rand"
	"time"

	"timed-quiz-service/internal/domain"
)

// Select draws a session's questions from the bank without replacement.
// The bank is copied and the copy is shuffled with Fisher-Yates, so every
// permutation is equally likely and the caller's slice is left untouched.
// n is clamped to the bank size; n <= 0 selects the whole bank.
func Select(bank []domain.Question, n int, rnd *rand.Rand) []domain.Question {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	shuffled := make([]domain.Question, len(bank))
	copy(shuffled, bank)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	if n <= 0 || n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n:n]
}
