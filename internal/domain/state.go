package domain

import "time"

// AttemptState is the persistence memento of an attempt. Repositories map it
// to and from storage without reaching into the aggregate's private fields.
// Buffered events are transient and deliberately absent.
type AttemptState struct {
	ID           string         `json:"id"`
	QuizID       string         `json:"quizId"`
	PlayerID     string         `json:"playerId"`
	Status       Status         `json:"status"`
	Score        int            `json:"score"`
	Progress     Progress       `json:"progress"`
	StartedAt    time.Time      `json:"startedAt"`
	LastPlayedAt time.Time      `json:"lastPlayedAt"`
	CompletedAt  *time.Time     `json:"completedAt,omitempty"`
	Answers      []PlayerAnswer `json:"answers"`
}

// State snapshots the aggregate for persistence.
func (a *Attempt) State() AttemptState {
	var completed *time.Time
	if a.times.CompletedAt != nil {
		c := *a.times.CompletedAt
		completed = &c
	}
	return AttemptState{
		ID:           a.id,
		QuizID:       a.quizID,
		PlayerID:     a.playerID,
		Status:       a.status,
		Score:        a.score.Int(),
		Progress:     a.progress,
		StartedAt:    a.times.StartedAt,
		LastPlayedAt: a.times.LastPlayedAt,
		CompletedAt:  completed,
		Answers:      a.Answers(),
	}
}

// RestoreAttempt rehydrates an aggregate from persisted state. The invariant
// check runs on the restored instance, so corrupt rows fail loud at load time
// instead of corrupting later mutations.
func RestoreAttempt(state AttemptState) (*Attempt, error) {
	return RestoreAttemptWithClock(state, time.Now)
}

// RestoreAttemptWithClock is test-only for deterministic timestamps.
func RestoreAttemptWithClock(state AttemptState, now func() time.Time) (*Attempt, error) {
	score, err := NewScore(state.Score)
	if err != nil {
		return nil, err
	}
	var completed *time.Time
	if state.CompletedAt != nil {
		c := *state.CompletedAt
		completed = &c
	}
	a := &Attempt{
		id:       state.ID,
		quizID:   state.QuizID,
		playerID: state.PlayerID,
		status:   state.Status,
		score:    score,
		progress: state.Progress,
		times: TimeDetails{
			StartedAt:    state.StartedAt,
			LastPlayedAt: state.LastPlayedAt,
			CompletedAt:  completed,
		},
		answers: append([]PlayerAnswer(nil), state.Answers...),
		now:     now,
	}
	if err := a.checkInvariants(); err != nil {
		return nil, err
	}
	return a, nil
}
