package app_test

import (
	"context"
	"testing"
	"time"

	"quizzy-attempt-service/internal/app"
	"quizzy-attempt-service/internal/domain"
)

func TestAssignmentTrackerIsIdempotent(t *testing.T) {
	tracker := app.NewAssignmentTracker()
	ev := domain.AttemptCompleted{
		EventID:         "e1",
		AttemptID:       "a1",
		PlayerID:        "p1",
		QuizID:          "quiz-1",
		FinalScore:      150,
		AccuracyPercent: 100,
		CorrectAnswers:  2,
		TotalQuestions:  2,
		OccurredAt:      time.Now(),
	}

	// Redelivery collapses into one entry per player.
	for i := 0; i < 3; i++ {
		if err := tracker.HandleCompleted(context.Background(), ev); err != nil {
			t.Fatalf("handle: %v", err)
		}
	}

	completions := tracker.Completions("quiz-1")
	if len(completions) != 1 {
		t.Fatalf("expected one completion, got %d", len(completions))
	}
	if completions[0].FinalScore != 150 || completions[0].PlayerID != "p1" {
		t.Fatalf("unexpected completion: %+v", completions[0])
	}
	if !tracker.HasCompleted("quiz-1", "p1") || tracker.HasCompleted("quiz-1", "p2") {
		t.Fatalf("completion lookup wrong")
	}
}
