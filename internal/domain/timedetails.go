package domain

import (
	"fmt"
	"time"
)

// TimeDetails carries the three lifecycle timestamps of an attempt. Values are
// immutable; every mutator returns a fresh copy so callers never share state.
type TimeDetails struct {
	StartedAt    time.Time  `json:"startedAt"`
	LastPlayedAt time.Time  `json:"lastPlayedAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// NewTimeDetails starts the clock for a fresh attempt.
func NewTimeDetails(now time.Time) (TimeDetails, error) {
	if now.IsZero() {
		return TimeDetails{}, fmt.Errorf("start time must be set")
	}
	return TimeDetails{StartedAt: now, LastPlayedAt: now}, nil
}

// Touched returns a copy with LastPlayedAt refreshed.
func (t TimeDetails) Touched(now time.Time) (TimeDetails, error) {
	if now.Before(t.StartedAt) {
		return TimeDetails{}, fmt.Errorf("last-played %s precedes started %s", now, t.StartedAt)
	}
	return TimeDetails{StartedAt: t.StartedAt, LastPlayedAt: now, CompletedAt: t.CompletedAt}, nil
}

// Completed returns a copy stamped with a completion time.
func (t TimeDetails) Completed(now time.Time) (TimeDetails, error) {
	if now.Before(t.LastPlayedAt) {
		return TimeDetails{}, fmt.Errorf("completed %s precedes last-played %s", now, t.LastPlayedAt)
	}
	completed := now
	return TimeDetails{StartedAt: t.StartedAt, LastPlayedAt: now, CompletedAt: &completed}, nil
}

// ordered reports whether started <= last-played <= completed (when present).
func (t TimeDetails) ordered() bool {
	if t.LastPlayedAt.Before(t.StartedAt) {
		return false
	}
	if t.CompletedAt != nil && t.CompletedAt.Before(t.LastPlayedAt) {
		return false
	}
	return true
}
