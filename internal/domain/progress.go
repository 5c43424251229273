package domain

import "fmt"

// Progress tracks how far through a quiz an attempt has gone. Total is fixed
// at creation; Answered only ever moves forward, one question per call.
type Progress struct {
	Total    int `json:"total"`
	Answered int `json:"answered"`
}

// NewProgress builds the initial progress for a quiz with total questions.
func NewProgress(total int) (Progress, error) {
	if total < 1 {
		return Progress{}, fmt.Errorf("quiz must have at least one question, got %d", total)
	}
	return Progress{Total: total}, nil
}

// Advance returns a copy with one more question answered. Overshooting Total
// is not rejected here; the attempt's invariant check treats it as fatal.
func (p Progress) Advance() Progress {
	return Progress{Total: p.Total, Answered: p.Answered + 1}
}

// Exhausted reports whether every question has been answered.
func (p Progress) Exhausted() bool {
	return p.Answered == p.Total
}
