package domain

import "fmt"

// Score is a non-negative point total. The zero value is a valid empty score;
// Add returns a new value rather than mutating in place.
type Score int

// NewScore validates v and wraps it as a Score.
func NewScore(v int) (Score, error) {
	if v < 0 {
		return 0, fmt.Errorf("score must be non-negative, got %d", v)
	}
	return Score(v), nil
}

// Add returns the sum of s and other as a new Score.
func (s Score) Add(other Score) Score {
	return s + other
}

// Int unwraps the raw point value.
func (s Score) Int() int {
	return int(s)
}
