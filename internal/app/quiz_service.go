package app

import (
	"context"

	"github.com/google/uuid"

	"timed-quiz-service/internal/domain"
)

// SessionRepository abstracts where live sessions are tracked (in-memory, Redis, etc).
type SessionRepository interface {
	Put(session *Session)
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// QuizService creates and tracks quiz sessions, one per page load.
type QuizService struct {
	sessions SessionRepository
	loader   BankLoader
	reporter Reporter
	cfg      SessionConfig
	opts     []SessionOption
}

func NewQuizService(store SessionRepository, loader BankLoader, reporter Reporter, cfg SessionConfig, opts ...SessionOption) *QuizService {
	return &QuizService{
		sessions: store,
		loader:   loader,
		reporter: reporter,
		cfg:      cfg,
		opts:     opts,
	}
}

// NewSession creates an idle session bound to view and registers it.
func (s *QuizService) NewSession(view View) *Session {
	session := NewSession(uuid.NewString(), s.cfg, s.loader, view, s.reporter, s.opts...)
	s.sessions.Put(session)
	return session
}

// Start creates a session and runs it up to the running state. Sessions that
// fail to load are discarded.
func (s *QuizService) Start(ctx context.Context, view View) (*Session, error) {
	session := s.NewSession(view)
	if err := session.Start(ctx); err != nil {
		s.Discard(session.ID())
		return nil, err
	}
	return session, nil
}

// Get looks up a live session.
func (s *QuizService) Get(sessionID string) (*Session, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// Answer records a response in a live session.
func (s *QuizService) Answer(sessionID string, index int, option string) error {
	session, err := s.Get(sessionID)
	if err != nil {
		return err
	}
	return session.Answer(index, option)
}

// Submit submits a live session.
func (s *QuizService) Submit(ctx context.Context, sessionID string) (domain.Result, error) {
	session, err := s.Get(sessionID)
	if err != nil {
		return domain.Result{}, err
	}
	return session.Submit(ctx)
}

// Discard closes a session and forgets it.
func (s *QuizService) Discard(sessionID string) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return
	}
	session.Close()
	s.sessions.Delete(sessionID)
}
