package domain

import (
	"time"

	"github.com/google/uuid"
)

// AttemptCompletedName keys subscriptions for the completion event.
const AttemptCompletedName = "attempt.completed"

// Event is a domain notification buffered by the aggregate and drained by the
// persistence layer after a successful save.
type Event interface {
	Name() string
}

// AttemptCompleted is produced exactly once, when an attempt transitions to
// its terminal state. Subscribers must be idempotent: delivery is guaranteed
// only as "published after a successful save", not exactly-once end to end.
type AttemptCompleted struct {
	EventID         string    `json:"eventId"`
	AttemptID       string    `json:"attemptId"`
	PlayerID        string    `json:"playerId"`
	QuizID          string    `json:"quizId"`
	FinalScore      int       `json:"finalScore"`
	AccuracyPercent float64   `json:"accuracyPercent"`
	CorrectAnswers  int       `json:"correctAnswers"`
	TotalQuestions  int       `json:"totalQuestions"`
	OccurredAt      time.Time `json:"occurredAt"`
}

func (AttemptCompleted) Name() string {
	return AttemptCompletedName
}

func newAttemptCompleted(a *Attempt, now time.Time) AttemptCompleted {
	return AttemptCompleted{
		EventID:         uuid.NewString(),
		AttemptID:       a.id,
		PlayerID:        a.playerID,
		QuizID:          a.quizID,
		FinalScore:      a.score.Int(),
		AccuracyPercent: a.AccuracyPercent(),
		CorrectAnswers:  a.CorrectAnswerCount(),
		TotalQuestions:  a.progress.Total,
		OccurredAt:      now,
	}
}
