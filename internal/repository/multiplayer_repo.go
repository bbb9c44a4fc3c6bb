package repository

import (
	"context"
	"errors"

	"wordle_duel/internal/db"
	"wordle_duel/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const multiColumns = `id, player1_id, player2_id, player_turn, word, status, current_turn_num,
	player1_score, player2_score, last_turn_time, completed_at, created_at`

// pairFilter matches both orderings of ($1, $2).
const pairFilter = `LEAST(player1_id, player2_id) = LEAST($1::bigint, $2::bigint)
	AND GREATEST(player1_id, player2_id) = GREATEST($1::bigint, $2::bigint)`

// MultiplayerGameRepository stores turn rows. Each row is one turn; completed rows are history.
type MultiplayerGameRepository struct {
	db *pgxpool.Pool
}

func NewMultiplayerGameRepository(db *pgxpool.Pool) *MultiplayerGameRepository {
	return &MultiplayerGameRepository{db: db}
}

func (r *MultiplayerGameRepository) GetByID(ctx context.Context, q db.DBTX, id int64) (*domain.MultiplayerGame, error) {
	return scanMulti(q.QueryRow(ctx, `SELECT `+multiColumns+` FROM multiplayer_games WHERE id = $1`, id))
}

// GetForUpdate loads and row-locks a turn for the rest of tx.
func (r *MultiplayerGameRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.MultiplayerGame, error) {
	return scanMulti(tx.QueryRow(ctx, `SELECT `+multiColumns+` FROM multiplayer_games WHERE id = $1 FOR UPDATE`, id))
}

// ActiveForPair returns the pair's in-progress turn, or nil.
func (r *MultiplayerGameRepository) ActiveForPair(ctx context.Context, q db.DBTX, a, b int64) (*domain.MultiplayerGame, error) {
	g, err := scanMulti(q.QueryRow(ctx,
		`SELECT `+multiColumns+` FROM multiplayer_games
		 WHERE `+pairFilter+` AND status = 'in_progress'
		 ORDER BY id DESC LIMIT 1`, a, b))
	if errors.Is(err, domain.ErrGameNotFound) {
		return nil, nil
	}
	return g, err
}

// LatestForPair returns the pair's newest row in any status, or nil for a new pair.
func (r *MultiplayerGameRepository) LatestForPair(ctx context.Context, q db.DBTX, a, b int64) (*domain.MultiplayerGame, error) {
	g, err := scanMulti(q.QueryRow(ctx,
		`SELECT `+multiColumns+` FROM multiplayer_games
		 WHERE `+pairFilter+`
		 ORDER BY id DESC LIMIT 1`, a, b))
	if errors.Is(err, domain.ErrGameNotFound) {
		return nil, nil
	}
	return g, err
}

func (r *MultiplayerGameRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, g *domain.MultiplayerGame) error {
	return tx.QueryRow(ctx,
		`INSERT INTO multiplayer_games
			(player1_id, player2_id, player_turn, word, status, current_turn_num, player1_score, player2_score, last_turn_time)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at`,
		g.Player1ID,
		g.Player2ID,
		g.PlayerTurn,
		g.Word,
		g.Status,
		g.TurnNum,
		g.Player1Score,
		g.Player2Score,
		g.LastTurnTime,
	).Scan(&g.ID, &g.CreatedAt)
}

// UpdateWithTx writes the mutable fields of a turn row.
func (r *MultiplayerGameRepository) UpdateWithTx(ctx context.Context, tx pgx.Tx, g *domain.MultiplayerGame) error {
	_, err := tx.Exec(ctx,
		`UPDATE multiplayer_games
		 SET player_turn = $2, word = $3, status = $4, player1_score = $5, player2_score = $6,
		     last_turn_time = $7, completed_at = $8
		 WHERE id = $1`,
		g.ID, g.PlayerTurn, g.Word, g.Status, g.Player1Score, g.Player2Score, g.LastTurnTime, g.CompletedAt,
	)
	return err
}

func (r *MultiplayerGameRepository) TouchWithTx(ctx context.Context, tx pgx.Tx, g *domain.MultiplayerGame) error {
	_, err := tx.Exec(ctx, `UPDATE multiplayer_games SET last_turn_time = $2 WHERE id = $1`, g.ID, g.LastTurnTime)
	return err
}

func scanMulti(row pgx.Row) (*domain.MultiplayerGame, error) {
	var g domain.MultiplayerGame
	if err := row.Scan(
		&g.ID,
		&g.Player1ID,
		&g.Player2ID,
		&g.PlayerTurn,
		&g.Word,
		&g.Status,
		&g.TurnNum,
		&g.Player1Score,
		&g.Player2Score,
		&g.LastTurnTime,
		&g.CompletedAt,
		&g.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGameNotFound
		}
		return nil, err
	}
	return &g, nil
}
