package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an attempt. Completed is terminal.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Attempt is the aggregate root for one player's run through one quiz. It
// owns the score, progress and time details, enforces their mutual
// consistency after every mutation, and buffers the completion event until
// the persistence layer drains it. Plain in-memory data: no locking, no I/O.
// Concurrent mutation of the same attempt must be serialized by the caller.
type Attempt struct {
	id       string
	quizID   string
	playerID string
	status   Status
	score    Score
	progress Progress
	times    TimeDetails
	answers  []PlayerAnswer
	events   []Event
	now      func() time.Time
}

// NewAttempt constructs a fresh attempt in a valid initial state: zero
// answers, zero score, in progress. totalQuestions comes from the quiz
// aggregate; the factory does not look it up itself.
func NewAttempt(playerID, quizID string, totalQuestions int) (*Attempt, error) {
	return NewAttemptWithClock(playerID, quizID, totalQuestions, time.Now)
}

// NewAttemptWithClock allows deterministic timestamps in tests.
func NewAttemptWithClock(playerID, quizID string, totalQuestions int, now func() time.Time) (*Attempt, error) {
	if playerID == "" || quizID == "" {
		return nil, fmt.Errorf("player and quiz ids must be set")
	}
	progress, err := NewProgress(totalQuestions)
	if err != nil {
		return nil, err
	}
	times, err := NewTimeDetails(now())
	if err != nil {
		return nil, err
	}
	a := &Attempt{
		id:       uuid.NewString(),
		quizID:   quizID,
		playerID: playerID,
		status:   StatusInProgress,
		progress: progress,
		times:    times,
		now:      now,
	}
	if err := a.checkInvariants(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Attempt) ID() string         { return a.id }
func (a *Attempt) QuizID() string     { return a.quizID }
func (a *Attempt) PlayerID() string   { return a.playerID }
func (a *Attempt) Status() Status     { return a.status }
func (a *Attempt) Score() Score       { return a.score }
func (a *Attempt) Progress() Progress { return a.progress }
func (a *Attempt) Times() TimeDetails { return a.times }
func (a *Attempt) InProgress() bool   { return a.status == StatusInProgress }

// Answers returns a copy of the answer history in registration order.
func (a *Attempt) Answers() []PlayerAnswer {
	return append([]PlayerAnswer(nil), a.answers...)
}

// RegisterAnswer appends the answer built from a graded result, accumulates
// its score, advances progress and refreshes the last-played time. It fails
// with ErrAttemptCompleted on a finished attempt and ErrDuplicateAnswer when
// the question was already answered; state is untouched on failure.
func (a *Attempt) RegisterAnswer(res Result) error {
	if a.status != StatusInProgress {
		return ErrAttemptCompleted
	}
	if a.IsQuestionAnswered(res.Submission.QuestionID) {
		return ErrDuplicateAnswer
	}

	answer, err := NewPlayerAnswer(res, a.progress.Answered+1)
	if err != nil {
		return err
	}
	times, err := a.times.Touched(a.now())
	if err != nil {
		return err
	}

	a.answers = append(a.answers, answer)
	if answer.Earned > 0 {
		a.score = a.score.Add(answer.Earned)
	}
	a.progress = a.progress.Advance()
	a.times = times
	return a.checkInvariants()
}

// Continue refreshes the last-played time without recording an answer, for a
// player resuming a paused session.
func (a *Attempt) Continue() error {
	if a.status != StatusInProgress {
		return ErrAttemptCompleted
	}
	times, err := a.times.Touched(a.now())
	if err != nil {
		return err
	}
	a.times = times
	return a.checkInvariants()
}

// Complete transitions the attempt to its terminal state, stamps the
// completion time and buffers the completion event. It does not pre-validate
// that every question was answered; calling it early trips the invariant
// check, which is fatal. Callers invoke it once progress is exhausted.
func (a *Attempt) Complete() error {
	if a.status != StatusInProgress {
		return ErrAttemptCompleted
	}
	now := a.now()
	times, err := a.times.Completed(now)
	if err != nil {
		return err
	}
	a.status = StatusCompleted
	a.times = times
	a.events = append(a.events, newAttemptCompleted(a, now))
	return a.checkInvariants()
}

// IsQuestionAnswered reports whether the question already has an answer.
func (a *Attempt) IsQuestionAnswered(questionID string) bool {
	for _, answer := range a.answers {
		if answer.QuestionID == questionID {
			return true
		}
	}
	return false
}

// CurrentQuestionID returns the question of the highest-position answer.
func (a *Attempt) CurrentQuestionID() (string, error) {
	last, err := a.LastAnswer()
	if err != nil {
		return "", err
	}
	return last.QuestionID, nil
}

// AnswerFor looks up the recorded answer for a question.
func (a *Attempt) AnswerFor(questionID string) (PlayerAnswer, error) {
	for _, answer := range a.answers {
		if answer.QuestionID == questionID {
			return answer, nil
		}
	}
	return PlayerAnswer{}, ErrNoAnswers
}

// LastAnswer returns the most recently registered answer.
func (a *Attempt) LastAnswer() (PlayerAnswer, error) {
	if len(a.answers) == 0 {
		return PlayerAnswer{}, ErrNoAnswers
	}
	return a.answers[len(a.answers)-1], nil
}

// CorrectAnswerCount counts answers graded correct so far.
func (a *Attempt) CorrectAnswerCount() int {
	count := 0
	for _, answer := range a.answers {
		if answer.Correct {
			count++
		}
	}
	return count
}

// AccuracyPercent is the share of the quiz answered correctly, 0 when the
// quiz has no questions.
func (a *Attempt) AccuracyPercent() float64 {
	if a.progress.Total == 0 {
		return 0
	}
	return float64(a.CorrectAnswerCount()) / float64(a.progress.Total) * 100
}

// PullEvents drains the buffered events. The persistence layer calls it after
// a successful save and publishes what it gets; a second call returns nothing.
func (a *Attempt) PullEvents() []Event {
	events := a.events
	a.events = nil
	return events
}

// checkInvariants verifies cross-field consistency after a mutation. Any
// failure is an upstream bug, surfaced as a fatal *InvariantError.
func (a *Attempt) checkInvariants() error {
	switch {
	case a.progress.Answered != len(a.answers):
		return a.violation(fmt.Sprintf("progress says %d answered but history holds %d", a.progress.Answered, len(a.answers)))
	case a.progress.Answered < 0 || a.progress.Answered > a.progress.Total:
		return a.violation(fmt.Sprintf("answered count %d outside [0,%d]", a.progress.Answered, a.progress.Total))
	case !a.times.ordered():
		return a.violation("timestamps out of order")
	}

	var sum Score
	for _, answer := range a.answers {
		sum = sum.Add(answer.Earned)
	}
	if sum != a.score {
		return a.violation(fmt.Sprintf("cached score %d != summed %d", a.score, sum))
	}

	switch a.status {
	case StatusInProgress:
		if a.times.CompletedAt != nil {
			return a.violation("in-progress attempt carries a completion time")
		}
	case StatusCompleted:
		if !a.progress.Exhausted() {
			return a.violation(fmt.Sprintf("completed with %d of %d questions answered", a.progress.Answered, a.progress.Total))
		}
		if a.times.CompletedAt == nil {
			return a.violation("completed attempt missing completion time")
		}
	default:
		return a.violation(fmt.Sprintf("unknown status %q", a.status))
	}
	return nil
}

func (a *Attempt) violation(reason string) error {
	return &InvariantError{AttemptID: a.id, Reason: reason}
}
