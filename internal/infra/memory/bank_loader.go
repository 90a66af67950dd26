package memory

import (
	"context"
	"fmt"
	"os"

	"timed-quiz-service/internal/domain"
)

// StaticBankLoader serves a fixed bank (useful for tests/demos).
type StaticBankLoader struct {
	bank []domain.Question
}

func NewStaticBankLoader(bank []domain.Question) *StaticBankLoader {
	return &StaticBankLoader{bank: bank}
}

func (l *StaticBankLoader) LoadBank(_ context.Context) ([]domain.Question, error) {
	if len(l.bank) == 0 {
		return nil, domain.ErrEmptyBank
	}
	return l.bank, nil
}

// FileBankLoader reads a questions.json file from disk on every call.
type FileBankLoader struct {
	path string
}

func NewFileBankLoader(path string) *FileBankLoader {
	return &FileBankLoader{path: path}
}

func (l *FileBankLoader) LoadBank(_ context.Context) ([]domain.Question, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	return domain.ParseBank(data)
}
