package app

import (
	"context"
	"sync"
	"time"

	"quizzy-attempt-service/internal/domain"
)

// QuizCompletion is one finished run recorded by the tracker.
type QuizCompletion struct {
	AttemptID       string
	PlayerID        string
	FinalScore      int
	AccuracyPercent float64
	CompletedAt     time.Time
}

// AssignmentTracker consumes completion events to keep a per-quiz record of
// which players finished and how they did. Keyed by player, so redelivered
// events collapse into the same entry and the subscriber stays idempotent.
type AssignmentTracker struct {
	mu          sync.RWMutex
	completions map[string]map[string]QuizCompletion // quizID -> playerID
}

func NewAssignmentTracker() *AssignmentTracker {
	return &AssignmentTracker{completions: make(map[string]map[string]QuizCompletion)}
}

// HandleCompleted is the dispatcher callback. Events of other types are ignored.
func (t *AssignmentTracker) HandleCompleted(_ context.Context, ev domain.Event) error {
	completed, ok := ev.(domain.AttemptCompleted)
	if !ok {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	byPlayer, ok := t.completions[completed.QuizID]
	if !ok {
		byPlayer = make(map[string]QuizCompletion)
		t.completions[completed.QuizID] = byPlayer
	}
	byPlayer[completed.PlayerID] = QuizCompletion{
		AttemptID:       completed.AttemptID,
		PlayerID:        completed.PlayerID,
		FinalScore:      completed.FinalScore,
		AccuracyPercent: completed.AccuracyPercent,
		CompletedAt:     completed.OccurredAt,
	}
	return nil
}

// Completions returns the recorded finishes for a quiz.
func (t *AssignmentTracker) Completions(quizID string) []QuizCompletion {
	t.mu.RLock()
	defer t.mu.RUnlock()
	byPlayer := t.completions[quizID]
	out := make([]QuizCompletion, 0, len(byPlayer))
	for _, c := range byPlayer {
		out = append(out, c)
	}
	return out
}

// HasCompleted reports whether the player finished the quiz at least once.
func (t *AssignmentTracker) HasCompleted(quizID, playerID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.completions[quizID][playerID]
	return ok
}
