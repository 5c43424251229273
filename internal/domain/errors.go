package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrAttemptCompleted is returned when a mutation targets an attempt that
	// already reached its terminal state.
	ErrAttemptCompleted = errors.New("attempt already completed")
	// ErrDuplicateAnswer is returned when a question was already answered in this attempt.
	ErrDuplicateAnswer = errors.New("question already answered in this attempt")
	// ErrNoAnswers is returned by history accessors before any answer exists.
	ErrNoAnswers = errors.New("attempt has no answers yet")
	// ErrQuizMismatch indicates an evaluation was wired up with a quiz that does
	// not belong to the submission. This is a programming error, not user input.
	ErrQuizMismatch = errors.New("submission quiz does not match loaded quiz")
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound indicates a submitted question ID is not part of the quiz.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrOptionNotFound indicates a selected option index is out of range.
	ErrOptionNotFound = errors.New("option not found")
	// ErrAttemptNotFound is returned by repositories when no attempt matches.
	ErrAttemptNotFound = errors.New("attempt not found")
	// ErrTimeoutElapsed is returned when a timed-out answer does not consume the
	// question's full time limit.
	ErrTimeoutElapsed = errors.New("timed-out answer must consume the full time limit")
)

// InvariantError reports broken cross-field consistency inside an attempt.
// It is fatal: the aggregate instance that produced it must be discarded, not
// retried. Recoverable conditions use the sentinel errors above instead.
type InvariantError struct {
	AttemptID string
	Reason    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("attempt %s invariant violated: %s", e.AttemptID, e.Reason)
}

// IsInvariantViolation reports whether err carries a fatal invariant failure.
func IsInvariantViolation(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}
