package repository

import (
	"context"

	"wordle_duel/internal/db"
	"wordle_duel/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AttemptRepository is the append-only guess log. Multiplayer attempts are always read per turn.
type AttemptRepository struct {
	db *pgxpool.Pool
}

func NewAttemptRepository(db *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{db: db}
}

func (r *AttemptRepository) AppendSingleWithTx(ctx context.Context, tx pgx.Tx, a *domain.Attempt) error {
	return tx.QueryRow(ctx,
		`INSERT INTO single_player_attempts (game_id, user_id, attempt_num, attempt, is_correct)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		a.GameID, a.UserID, a.AttemptNum, a.Word, a.IsCorrect,
	).Scan(&a.ID, &a.CreatedAt)
}

func (r *AttemptRepository) AppendMultiWithTx(ctx context.Context, tx pgx.Tx, a *domain.Attempt) error {
	return tx.QueryRow(ctx,
		`INSERT INTO multiplayer_attempts (game_id, turn_num, user_id, attempt_num, attempt, is_correct)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		a.GameID, a.TurnNum, a.UserID, a.AttemptNum, a.Word, a.IsCorrect,
	).Scan(&a.ID, &a.CreatedAt)
}

// ListSingle returns a session's attempts by attempt number.
func (r *AttemptRepository) ListSingle(ctx context.Context, q db.DBTX, gameID int64) ([]*domain.Attempt, error) {
	rows, err := q.Query(ctx,
		`SELECT id, game_id, 0, user_id, attempt_num, attempt, is_correct, created_at
		 FROM single_player_attempts
		 WHERE game_id = $1
		 ORDER BY attempt_num ASC`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAttempts(rows)
}

// ListMulti returns the attempts of one turn by attempt number.
func (r *AttemptRepository) ListMulti(ctx context.Context, q db.DBTX, gameID int64, turnNum int) ([]*domain.Attempt, error) {
	rows, err := q.Query(ctx,
		`SELECT id, game_id, turn_num, user_id, attempt_num, attempt, is_correct, created_at
		 FROM multiplayer_attempts
		 WHERE game_id = $1 AND turn_num = $2
		 ORDER BY attempt_num ASC`, gameID, turnNum)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAttempts(rows)
}

func scanAttempts(rows pgx.Rows) ([]*domain.Attempt, error) {
	res := make([]*domain.Attempt, 0, domain.MaxAttempts)
	for rows.Next() {
		var a domain.Attempt
		if err := rows.Scan(&a.ID, &a.GameID, &a.TurnNum, &a.UserID, &a.AttemptNum, &a.Word, &a.IsCorrect, &a.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &a)
	}
	return res, rows.Err()
}
