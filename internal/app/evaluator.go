package app

import "quizzy-attempt-service/internal/domain"

// Evaluator is the stateless bridge between quiz rules and one loaded
// attempt. It lives for a single evaluation call.
type Evaluator struct {
	attempt *domain.Attempt
	quiz    domain.Quiz
}

func NewEvaluator(attempt *domain.Attempt, quiz domain.Quiz) Evaluator {
	return Evaluator{attempt: attempt, quiz: quiz}
}

// Evaluate grades the submission against the quiz rules and registers the
// outcome on the attempt, mutating it in place. It rejects mismatched
// aggregates with domain.ErrQuizMismatch before touching any state; that
// pairing is the wiring layer's bug, never user input. Whether the attempt is
// then complete is for the caller to decide from its progress.
func (e Evaluator) Evaluate(sub domain.Submission) (domain.Result, error) {
	if sub.QuizID != e.quiz.ID || e.attempt.QuizID() != e.quiz.ID {
		return domain.Result{}, domain.ErrQuizMismatch
	}
	res, err := e.quiz.Grade(sub)
	if err != nil {
		return domain.Result{}, err
	}
	if err := e.attempt.RegisterAnswer(res); err != nil {
		return domain.Result{}, err
	}
	return res, nil
}
