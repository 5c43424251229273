package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"quizzy-attempt-service/internal/domain"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// AttemptRepository persists attempt state as JSONB, one row per attempt.
// The id, player, quiz and status columns are lifted out of the document so
// the active-attempt lookup and quiz-wide deletes stay indexable.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

func (r *AttemptRepository) FindByID(ctx context.Context, id string) (*domain.Attempt, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT state FROM attempts WHERE id=$1`, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAttemptNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load attempt: %w", err)
	}
	return restore(raw)
}

func (r *AttemptRepository) FindActiveForPlayerAndQuiz(ctx context.Context, playerID, quizID string) (*domain.Attempt, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx,
		`SELECT state FROM attempts WHERE player_id=$1 AND quiz_id=$2 AND status=$3`,
		playerID, quizID, string(domain.StatusInProgress),
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAttemptNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load active attempt: %w", err)
	}
	return restore(raw)
}

func (r *AttemptRepository) Save(ctx context.Context, attempt *domain.Attempt) error {
	state := attempt.State()
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal attempt: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO attempts (id, quiz_id, player_id, status, state, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (id) DO UPDATE SET status=EXCLUDED.status, state=EXCLUDED.state, updated_at=now()`,
		state.ID, state.QuizID, state.PlayerID, string(state.Status), raw,
	)
	if err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	return nil
}

func (r *AttemptRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM attempts WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete attempt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAttemptNotFound
	}
	return nil
}

func (r *AttemptRepository) DeleteAllActiveForQuiz(ctx context.Context, quizID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM attempts WHERE quiz_id=$1 AND status=$2`,
		quizID, string(domain.StatusInProgress),
	)
	if err != nil {
		return fmt.Errorf("delete active attempts: %w", err)
	}
	return nil
}

func restore(raw []byte) (*domain.Attempt, error) {
	var state domain.AttemptState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("unmarshal attempt: %w", err)
	}
	return domain.RestoreAttempt(state)
}
