package redis

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"timed-quiz-service/internal/app"
)

// SessionStore is a Redis-aware implementation of SessionRepository.
// Sessions own goroutines and a live view, so they stay in a local map;
// Redis only carries a liveness marker per session so that other instances
// (and operators) can count live quizzes.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Session),
	}
}

func (s *SessionStore) Put(session *app.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID()] = session
	// best-effort liveness marker
	if err := s.client.Set(context.Background(), s.key(session.ID()), "1", s.ttl).Err(); err != nil {
		log.Printf("mark session %s live: %v", session.ID(), err)
	}
}

func (s *SessionStore) Get(sessionID string) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if ok {
		// every lookup is activity; keep the marker alive with the session
		if err := s.client.Expire(context.Background(), s.key(sessionID), s.ttl).Err(); err != nil {
			log.Printf("refresh session %s marker: %v", sessionID, err)
		}
	}
	return session, ok
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return
	}
	delete(s.sessions, sessionID)
	if err := s.client.Del(context.Background(), s.key(sessionID)).Err(); err != nil {
		log.Printf("clear session %s marker: %v", sessionID, err)
	}
}

func (s *SessionStore) key(sessionID string) string {
	return "quiz:session:" + sessionID
}
