package app

import (
	"context"
	"sync"

	"quizzy-attempt-service/internal/domain"
)

// AttemptRepository abstracts how attempts are stored (in-memory, Postgres).
type AttemptRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Attempt, error)
	FindActiveForPlayerAndQuiz(ctx context.Context, playerID, quizID string) (*domain.Attempt, error)
	Save(ctx context.Context, attempt *domain.Attempt) error
	Delete(ctx context.Context, id string) error
	DeleteAllActiveForQuiz(ctx context.Context, quizID string) error
}

// QuizRepository loads quiz content (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// Publisher delivers drained domain events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, evs ...domain.Event) error
}

// AttemptService owns the load-mutate-save-publish cycle around the attempt
// aggregate. Mutations for one attempt id are serialized through a keyed
// mutex; the aggregate itself is plain data and assumes at most one in-flight
// mutation. Events are published strictly after a successful save, so a save
// failure leaves them buffered and nothing escapes.
type AttemptService struct {
	attempts  AttemptRepository
	quizzes   QuizRepository
	publisher Publisher
	locks     keyedMutex
}

func NewAttemptService(attempts AttemptRepository, quizzes QuizRepository, publisher Publisher) *AttemptService {
	return &AttemptService{attempts: attempts, quizzes: quizzes, publisher: publisher}
}

// Start returns the player's active attempt for the quiz, creating one when
// none exists. The second return reports whether an attempt was resumed.
func (s *AttemptService) Start(ctx context.Context, playerID, quizID string) (*domain.Attempt, bool, error) {
	unlock := s.locks.lock(playerID + "/" + quizID)
	defer unlock()

	if attempt, err := s.attempts.FindActiveForPlayerAndQuiz(ctx, playerID, quizID); err == nil {
		return attempt, true, nil
	} else if err != domain.ErrAttemptNotFound {
		return nil, false, err
	}

	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, false, err
	}
	attempt, err := domain.NewAttempt(playerID, quizID, len(quiz.Questions))
	if err != nil {
		return nil, false, err
	}
	if err := s.attempts.Save(ctx, attempt); err != nil {
		return nil, false, err
	}
	return attempt, false, nil
}

// SubmitAnswer grades one submission against the attempt's quiz and records
// it. When the last question lands, the attempt is completed in the same
// cycle and its completion event published after the save. Returns the
// recorded answer and whether the attempt is now complete.
func (s *AttemptService) SubmitAnswer(ctx context.Context, attemptID string, sub domain.Submission) (domain.PlayerAnswer, bool, error) {
	unlock := s.locks.lock(attemptID)
	defer unlock()

	attempt, err := s.attempts.FindByID(ctx, attemptID)
	if err != nil {
		return domain.PlayerAnswer{}, false, err
	}
	quiz, err := s.quizzes.GetQuiz(ctx, attempt.QuizID())
	if err != nil {
		return domain.PlayerAnswer{}, false, err
	}

	if _, err := NewEvaluator(attempt, quiz).Evaluate(sub); err != nil {
		return domain.PlayerAnswer{}, false, err
	}
	if attempt.Progress().Exhausted() {
		if err := attempt.Complete(); err != nil {
			return domain.PlayerAnswer{}, false, err
		}
	}

	if err := s.attempts.Save(ctx, attempt); err != nil {
		return domain.PlayerAnswer{}, false, err
	}
	if evs := attempt.PullEvents(); len(evs) > 0 {
		if err := s.publisher.Publish(ctx, evs...); err != nil {
			return domain.PlayerAnswer{}, false, err
		}
	}

	answer, err := attempt.LastAnswer()
	if err != nil {
		return domain.PlayerAnswer{}, false, err
	}
	return answer, !attempt.InProgress(), nil
}

// Resume refreshes the attempt's last-played time without an answer, for a
// player coming back to a paused session.
func (s *AttemptService) Resume(ctx context.Context, attemptID string) (*domain.Attempt, error) {
	unlock := s.locks.lock(attemptID)
	defer unlock()

	attempt, err := s.attempts.FindByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if err := attempt.Continue(); err != nil {
		return nil, err
	}
	if err := s.attempts.Save(ctx, attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

// Get loads an attempt without mutating it.
func (s *AttemptService) Get(ctx context.Context, attemptID string) (*domain.Attempt, error) {
	return s.attempts.FindByID(ctx, attemptID)
}

// Abandon discards a single attempt.
func (s *AttemptService) Abandon(ctx context.Context, attemptID string) error {
	unlock := s.locks.lock(attemptID)
	defer unlock()
	return s.attempts.Delete(ctx, attemptID)
}

// AbandonQuiz discards every in-progress attempt for a quiz, e.g. when the
// quiz content is retracted. Completed attempts are history and stay.
func (s *AttemptService) AbandonQuiz(ctx context.Context, quizID string) error {
	return s.attempts.DeleteAllActiveForQuiz(ctx, quizID)
}

// keyedMutex serializes work per string key. Entries are never reaped; the
// key space here (attempt ids in flight) is small and process-scoped.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
