package repository

import (
	"context"
	"errors"

	"wordle_duel/internal/db"
	"wordle_duel/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const singleColumns = `id, user_id, word, status, current_turn_num, won, points, last_turn_time, completed_at, created_at`

// SingleGameRepository stores single-player sessions.
type SingleGameRepository struct {
	db *pgxpool.Pool
}

func NewSingleGameRepository(db *pgxpool.Pool) *SingleGameRepository {
	return &SingleGameRepository{db: db}
}

func (r *SingleGameRepository) GetByID(ctx context.Context, id int64) (*domain.SinglePlayerGame, error) {
	return scanSingle(r.db.QueryRow(ctx, `SELECT `+singleColumns+` FROM single_player_games WHERE id = $1`, id))
}

// GetForUpdate loads and row-locks a session for the rest of tx.
func (r *SingleGameRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.SinglePlayerGame, error) {
	return scanSingle(tx.QueryRow(ctx, `SELECT `+singleColumns+` FROM single_player_games WHERE id = $1 FOR UPDATE`, id))
}

// Active returns the player's in-progress session, or nil.
func (r *SingleGameRepository) Active(ctx context.Context, q db.DBTX, userID int64) (*domain.SinglePlayerGame, error) {
	g, err := scanSingle(q.QueryRow(ctx,
		`SELECT `+singleColumns+` FROM single_player_games
		 WHERE user_id = $1 AND status = 'in_progress'
		 ORDER BY id DESC LIMIT 1`, userID))
	if errors.Is(err, domain.ErrGameNotFound) {
		return nil, nil
	}
	return g, err
}

func (r *SingleGameRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, g *domain.SinglePlayerGame) error {
	return tx.QueryRow(ctx,
		`INSERT INTO single_player_games (user_id, word, status, current_turn_num, last_turn_time)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		g.UserID,
		g.SecretWord(),
		g.Status,
		g.TurnNum,
		g.LastTurnTime,
	).Scan(&g.ID, &g.CreatedAt)
}

func (r *SingleGameRepository) UpdateWithTx(ctx context.Context, tx pgx.Tx, g *domain.SinglePlayerGame) error {
	_, err := tx.Exec(ctx,
		`UPDATE single_player_games
		 SET status = $2, won = $3, points = $4, last_turn_time = $5, completed_at = $6
		 WHERE id = $1`,
		g.ID, g.Status, g.Won, g.Points, g.LastTurnTime, g.CompletedAt,
	)
	return err
}

// TouchWithTx records activity on a session.
func (r *SingleGameRepository) TouchWithTx(ctx context.Context, tx pgx.Tx, g *domain.SinglePlayerGame) error {
	_, err := tx.Exec(ctx, `UPDATE single_player_games SET last_turn_time = $2 WHERE id = $1`, g.ID, g.LastTurnTime)
	return err
}

func scanSingle(row pgx.Row) (*domain.SinglePlayerGame, error) {
	var g domain.SinglePlayerGame
	var word string
	if err := row.Scan(
		&g.ID,
		&g.UserID,
		&word,
		&g.Status,
		&g.TurnNum,
		&g.Won,
		&g.Points,
		&g.LastTurnTime,
		&g.CompletedAt,
		&g.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGameNotFound
		}
		return nil, err
	}
	g.Word = &word
	return &g, nil
}
