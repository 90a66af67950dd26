package app_test

import (
	"math/rand"
	"reflect"
	"testing"

	"timed-quiz-service/internal/app"
	"timed-quiz-service/internal/domain"
)

func TestSelectDrawsDistinctQuestions(t *testing.T) {
	bank := sampleBank(50)
	original := append([]domain.Question(nil), bank...)
	rnd := rand.New(rand.NewSource(7))

	for run := 0; run < 100; run++ {
		selection := app.Select(bank, 20, rnd)
		if len(selection) != 20 {
			t.Fatalf("expected 20 questions, got %d", len(selection))
		}
		seen := make(map[string]bool)
		for _, q := range selection {
			if seen[q.Prompt] {
				t.Fatalf("duplicate question %q", q.Prompt)
			}
			seen[q.Prompt] = true
			if !inBank(bank, q) {
				t.Fatalf("question %q not drawn from bank", q.Prompt)
			}
		}
	}
	if !reflect.DeepEqual(bank, original) {
		t.Fatalf("select must not reorder the bank")
	}
}

func TestSelectWholeBankIsPermutation(t *testing.T) {
	bank := sampleBank(20)
	selection := app.Select(bank, 20, rand.New(rand.NewSource(3)))

	if len(selection) != len(bank) {
		t.Fatalf("expected %d questions, got %d", len(bank), len(selection))
	}
	counts := make(map[string]int)
	for _, q := range selection {
		counts[q.Prompt]++
	}
	for _, q := range bank {
		if counts[q.Prompt] != 1 {
			t.Fatalf("question %q appears %d times", q.Prompt, counts[q.Prompt])
		}
	}
}

func TestSelectClampsToBankSize(t *testing.T) {
	bank := sampleBank(5)
	if got := len(app.Select(bank, 20, nil)); got != 5 {
		t.Fatalf("expected clamp to 5, got %d", got)
	}
	if got := len(app.Select(bank, 0, nil)); got != 5 {
		t.Fatalf("expected whole bank for n=0, got %d", got)
	}
	if got := len(app.Select(nil, 20, nil)); got != 0 {
		t.Fatalf("expected empty selection for empty bank, got %d", got)
	}
}

func TestSelectIsRoughlyUniform(t *testing.T) {
	bank := sampleBank(3)
	rnd := rand.New(rand.NewSource(11))
	counts := make(map[string]int)

	const runs = 6000
	for i := 0; i < runs; i++ {
		selection := app.Select(bank, 3, rnd)
		key := selection[0].Prompt + "|" + selection[1].Prompt + "|" + selection[2].Prompt
		counts[key]++
	}
	if len(counts) != 6 {
		t.Fatalf("expected all 6 permutations, got %d", len(counts))
	}
	for key, n := range counts {
		if n < 800 || n > 1200 {
			t.Fatalf("permutation %s drawn %d times out of %d", key, n, runs)
		}
	}
}

func inBank(bank []domain.Question, q domain.Question) bool {
	for _, b := range bank {
		if reflect.DeepEqual(b, q) {
			return true
		}
	}
	return false
}
