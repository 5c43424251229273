package memory

import (
	"context"
	"testing"

	"quizzy-attempt-service/internal/domain"
)

func TestAttemptStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewAttemptStore()

	attempt, err := domain.NewAttempt("p1", "quiz-1", 2)
	if err != nil {
		t.Fatalf("new attempt: %v", err)
	}
	if err := store.Save(ctx, attempt); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.FindByID(ctx, attempt.ID())
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if loaded.ID() != attempt.ID() || loaded.Status() != domain.StatusInProgress {
		t.Fatalf("loaded attempt differs: %+v", loaded)
	}

	active, err := store.FindActiveForPlayerAndQuiz(ctx, "p1", "quiz-1")
	if err != nil || active.ID() != attempt.ID() {
		t.Fatalf("expected active attempt, got %v (%v)", active, err)
	}
	if _, err := store.FindActiveForPlayerAndQuiz(ctx, "p2", "quiz-1"); err != domain.ErrAttemptNotFound {
		t.Fatalf("expected not found for other player, got %v", err)
	}

	if err := store.Delete(ctx, attempt.ID()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.FindByID(ctx, attempt.ID()); err != domain.ErrAttemptNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := store.Delete(ctx, attempt.ID()); err != domain.ErrAttemptNotFound {
		t.Fatalf("expected not found on double delete, got %v", err)
	}
}

func TestAttemptStoreIsolatesLoadedInstances(t *testing.T) {
	ctx := context.Background()
	store := NewAttemptStore()

	attempt, err := domain.NewAttempt("p1", "quiz-1", 2)
	if err != nil {
		t.Fatalf("new attempt: %v", err)
	}
	if err := store.Save(ctx, attempt); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.FindByID(ctx, attempt.ID())
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if err := loaded.Continue(); err != nil {
		t.Fatalf("continue: %v", err)
	}

	// Mutating the loaded copy must not leak into the store without a save.
	reloaded, err := store.FindByID(ctx, attempt.ID())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Times().LastPlayedAt.After(attempt.Times().LastPlayedAt) {
		t.Fatalf("unsaved mutation leaked into the store")
	}
}

func TestDeleteAllActiveSparesCompleted(t *testing.T) {
	ctx := context.Background()
	store := NewAttemptStore()

	active, err := domain.NewAttempt("p1", "quiz-1", 1)
	if err != nil {
		t.Fatalf("new attempt: %v", err)
	}
	if err := store.Save(ctx, active); err != nil {
		t.Fatalf("save: %v", err)
	}

	done := completedSingleQuestionAttempt(t, "p2", "quiz-1")
	if err := store.Save(ctx, done); err != nil {
		t.Fatalf("save completed: %v", err)
	}

	if err := store.DeleteAllActiveForQuiz(ctx, "quiz-1"); err != nil {
		t.Fatalf("delete active: %v", err)
	}
	if _, err := store.FindByID(ctx, active.ID()); err != domain.ErrAttemptNotFound {
		t.Fatalf("active attempt should be gone, got %v", err)
	}
	if _, err := store.FindByID(ctx, done.ID()); err != nil {
		t.Fatalf("completed attempt is history and must stay: %v", err)
	}
}

func completedSingleQuestionAttempt(t *testing.T, playerID, quizID string) *domain.Attempt {
	t.Helper()
	quiz := domain.Quiz{
		ID: quizID,
		Questions: []domain.Question{
			{ID: "q1", Options: []domain.Option{{Text: "yes", Correct: true}}, Points: 10},
		},
	}
	attempt, err := domain.NewAttempt(playerID, quizID, 1)
	if err != nil {
		t.Fatalf("new attempt: %v", err)
	}
	res, err := quiz.Grade(domain.Submission{QuizID: quizID, QuestionID: "q1", SelectedOptions: []int{0}})
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if err := attempt.RegisterAnswer(res); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := attempt.Complete(); err != nil {
		t.Fatalf("complete: %v", err)
	}
	return attempt
}
