package domain

import "time"

// Option represents a possible answer for a question.
type Option struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// Question models one quiz question. Multiple options may be flagged correct;
// a submission matches when it selects exactly that set.
type Question struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Options   []Option      `json:"options"`
	Points    int           `json:"points"`    // defaults to 1 if zero
	TimeLimit time.Duration `json:"timeLimit"` // full allotment consumed on timeout
}

// Quiz is the rules aggregate the attempt engine evaluates against. The engine
// treats it as read-only content; editing quizzes lives elsewhere.
type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Submission is a player's raw input for one question: which options they
// picked (none on timeout) and how long they took.
type Submission struct {
	QuizID          string
	QuestionID      string
	SelectedOptions []int
	Elapsed         time.Duration
}

// TimedOut reports whether the submission carries no selection.
func (s Submission) TimedOut() bool {
	return len(s.SelectedOptions) == 0
}

// Result is the graded outcome of a submission, including the frozen question
// snapshot so later quiz edits never rewrite answer history.
type Result struct {
	Submission    Submission
	Correct       bool
	Earned        Score
	SelectedTexts []string
	Snapshot      QuestionSnapshot
}

// Grade evaluates a submission against the quiz content. A timed-out
// submission is always incorrect and earns nothing.
func (q Quiz) Grade(sub Submission) (Result, error) {
	var question *Question
	for i := range q.Questions {
		if q.Questions[i].ID == sub.QuestionID {
			question = &q.Questions[i]
			break
		}
	}
	if question == nil {
		return Result{}, ErrQuestionNotFound
	}

	selectedTexts := make([]string, 0, len(sub.SelectedOptions))
	picked := make(map[int]bool, len(sub.SelectedOptions))
	for _, idx := range sub.SelectedOptions {
		if idx < 0 || idx >= len(question.Options) {
			return Result{}, ErrOptionNotFound
		}
		picked[idx] = true
		selectedTexts = append(selectedTexts, question.Options[idx].Text)
	}

	correct := !sub.TimedOut() && matchesCorrectSet(question.Options, picked)
	var earned Score
	if correct {
		points := question.Points
		if points == 0 {
			points = 1
		}
		earned = Score(points)
	}
	if sub.TimedOut() {
		selectedTexts = nil
	}

	return Result{
		Submission:    sub,
		Correct:       correct,
		Earned:        earned,
		SelectedTexts: selectedTexts,
		Snapshot:      snapshotQuestion(*question),
	}, nil
}

// matchesCorrectSet reports whether picked is exactly the set of correct options.
func matchesCorrectSet(options []Option, picked map[int]bool) bool {
	correctCount := 0
	for i, opt := range options {
		if opt.Correct {
			correctCount++
			if !picked[i] {
				return false
			}
		}
	}
	return correctCount > 0 && len(picked) == correctCount
}
