package domain

import (
	"fmt"
	"time"
)

// OptionSnapshot freezes one option's content at answer time.
type OptionSnapshot struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// QuestionSnapshot freezes the question as it existed when the answer was
// recorded. Later edits to the quiz do not retroactively alter history.
type QuestionSnapshot struct {
	QuestionID string           `json:"questionId"`
	Title      string           `json:"title"`
	Options    []OptionSnapshot `json:"options"`
	TimeLimit  time.Duration    `json:"timeLimit"`
}

func snapshotQuestion(q Question) QuestionSnapshot {
	options := make([]OptionSnapshot, len(q.Options))
	for i, opt := range q.Options {
		options[i] = OptionSnapshot{Text: opt.Text, Correct: opt.Correct}
	}
	return QuestionSnapshot{
		QuestionID: q.ID,
		Title:      q.Title,
		Options:    options,
		TimeLimit:  q.TimeLimit,
	}
}

// PlayerAnswer is the immutable record of one submitted or timed-out answer.
// SelectedOptions is nil when the player ran out of time.
type PlayerAnswer struct {
	QuestionID      string           `json:"questionId"`
	Position        int              `json:"position"`
	SelectedOptions []int            `json:"selectedOptions,omitempty"`
	SelectedTexts   []string         `json:"selectedTexts,omitempty"`
	Correct         bool             `json:"correct"`
	Earned          Score            `json:"earned"`
	Elapsed         time.Duration    `json:"elapsed"`
	Snapshot        QuestionSnapshot `json:"snapshot"`
}

// NewPlayerAnswer builds the answer record for a graded result at the given
// 1-based position in the attempt's history.
func NewPlayerAnswer(res Result, position int) (PlayerAnswer, error) {
	if position < 1 {
		return PlayerAnswer{}, fmt.Errorf("answer position must be positive, got %d", position)
	}
	sub := res.Submission
	if sub.TimedOut() && sub.Elapsed != res.Snapshot.TimeLimit {
		// A timeout consumes the full allotted time, nothing less or more.
		return PlayerAnswer{}, ErrTimeoutElapsed
	}
	return PlayerAnswer{
		QuestionID:      sub.QuestionID,
		Position:        position,
		SelectedOptions: append([]int(nil), sub.SelectedOptions...),
		SelectedTexts:   append([]string(nil), res.SelectedTexts...),
		Correct:         res.Correct,
		Earned:          res.Earned,
		Elapsed:         sub.Elapsed,
		Snapshot:        res.Snapshot,
	}, nil
}

// TimedOut reports whether this answer was recorded without a selection.
func (a PlayerAnswer) TimedOut() bool {
	return len(a.SelectedOptions) == 0
}
