package domain_test

import (
	"testing"
	"time"

	"quizzy-attempt-service/internal/domain"
)

func TestGradeExactCorrectSet(t *testing.T) {
	quiz := threeQuestionQuiz()

	// q3 has two correct options; both must be picked, nothing else.
	cases := []struct {
		name     string
		selected []int
		correct  bool
	}{
		{"both correct options", []int{0, 1}, true},
		{"order does not matter", []int{1, 0}, true},
		{"only one of two", []int{0}, false},
	}
	for _, tc := range cases {
		res, err := quiz.Grade(domain.Submission{
			QuizID:          quiz.ID,
			QuestionID:      "q3",
			SelectedOptions: tc.selected,
			Elapsed:         time.Second,
		})
		if err != nil {
			t.Fatalf("%s: grade: %v", tc.name, err)
		}
		if res.Correct != tc.correct {
			t.Fatalf("%s: expected correct=%v, got %v", tc.name, tc.correct, res.Correct)
		}
		if tc.correct && res.Earned != 60 {
			t.Fatalf("%s: expected 60 points, got %d", tc.name, res.Earned)
		}
		if !tc.correct && res.Earned != 0 {
			t.Fatalf("%s: incorrect answers earn nothing, got %d", tc.name, res.Earned)
		}
	}
}

func TestGradeDefaultsPointsToOne(t *testing.T) {
	quiz := domain.Quiz{
		ID: "quiz-p",
		Questions: []domain.Question{
			{
				ID:      "q1",
				Options: []domain.Option{{Text: "yes", Correct: true}},
			},
		},
	}
	res, err := quiz.Grade(domain.Submission{
		QuizID:          "quiz-p",
		QuestionID:      "q1",
		SelectedOptions: []int{0},
		Elapsed:         time.Second,
	})
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if res.Earned != 1 {
		t.Fatalf("expected default 1 point, got %d", res.Earned)
	}
}

func TestGradeUnknownQuestionAndOption(t *testing.T) {
	quiz := threeQuestionQuiz()

	if _, err := quiz.Grade(domain.Submission{QuizID: quiz.ID, QuestionID: "nope"}); err != domain.ErrQuestionNotFound {
		t.Fatalf("expected question-not-found, got %v", err)
	}
	_, err := quiz.Grade(domain.Submission{
		QuizID:          quiz.ID,
		QuestionID:      "q1",
		SelectedOptions: []int{9},
		Elapsed:         time.Second,
	})
	if err != domain.ErrOptionNotFound {
		t.Fatalf("expected option-not-found, got %v", err)
	}
}

func TestGradeFreezesQuestionSnapshot(t *testing.T) {
	quiz := threeQuestionQuiz()
	res := gradeCorrect(t, quiz, quiz.Questions[0])

	// Edit the quiz after grading; the snapshot must not follow.
	quiz.Questions[0].Title = "rewritten"
	quiz.Questions[0].Options[1].Text = "edited"

	if res.Snapshot.Title != "First" {
		t.Fatalf("snapshot title changed: %q", res.Snapshot.Title)
	}
	if res.Snapshot.Options[1].Text != "right" {
		t.Fatalf("snapshot option changed: %q", res.Snapshot.Options[1].Text)
	}
	if res.Snapshot.TimeLimit != 20*time.Second {
		t.Fatalf("snapshot time limit wrong: %s", res.Snapshot.TimeLimit)
	}
}
