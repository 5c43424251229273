package memory

import (
	"context"
	"sync"

	"quizzy-attempt-service/internal/domain"
)

// AttemptStore is an in-memory implementation of app.AttemptRepository.
// Attempts are stored as state snapshots and rehydrated on load, so callers
// never share a live aggregate instance with the store.
type AttemptStore struct {
	mu       sync.RWMutex
	attempts map[string]domain.AttemptState
}

func NewAttemptStore() *AttemptStore {
	return &AttemptStore{attempts: make(map[string]domain.AttemptState)}
}

func (s *AttemptStore) FindByID(_ context.Context, id string) (*domain.Attempt, error) {
	s.mu.RLock()
	state, ok := s.attempts[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrAttemptNotFound
	}
	return domain.RestoreAttempt(state)
}

func (s *AttemptStore) FindActiveForPlayerAndQuiz(_ context.Context, playerID, quizID string) (*domain.Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, state := range s.attempts {
		if state.PlayerID == playerID && state.QuizID == quizID && state.Status == domain.StatusInProgress {
			return domain.RestoreAttempt(state)
		}
	}
	return nil, domain.ErrAttemptNotFound
}

func (s *AttemptStore) Save(_ context.Context, attempt *domain.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[attempt.ID()] = attempt.State()
	return nil
}

func (s *AttemptStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.attempts[id]; !ok {
		return domain.ErrAttemptNotFound
	}
	delete(s.attempts, id)
	return nil
}

func (s *AttemptStore) DeleteAllActiveForQuiz(_ context.Context, quizID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, state := range s.attempts {
		if state.QuizID == quizID && state.Status == domain.StatusInProgress {
			delete(s.attempts, id)
		}
	}
	return nil
}
