package repository

import (
	"context"
	"errors"

	"wordle_duel/internal/db"
	"wordle_duel/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WordRepository reads the lexicon. Words are stored upper-case.
type WordRepository struct {
	db *pgxpool.Pool
}

func NewWordRepository(db *pgxpool.Pool) *WordRepository {
	return &WordRepository{db: db}
}

// Get returns the entry for word, or nil when the word is not in the lexicon.
func (r *WordRepository) Get(ctx context.Context, q db.DBTX, word string) (*domain.Word, error) {
	var w domain.Word
	err := q.QueryRow(ctx,
		`SELECT word, frequency, score::float8 FROM words WHERE word = $1`, word,
	).Scan(&w.Text, &w.Frequency, &w.Score)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// RandomForPlayer picks a game word the player has not completed within windowDays.
// It returns pgx.ErrNoRows when every eligible word was used.
func (r *WordRepository) RandomForPlayer(ctx context.Context, q db.DBTX, userID, minFreq int64, windowDays int) (string, error) {
	var word string
	err := q.QueryRow(ctx, `
		SELECT w.word
		FROM words w
		WHERE w.frequency >= $1
		  AND NOT EXISTS (
			SELECT 1 FROM single_player_games g
			WHERE g.user_id = $2
			  AND g.status = 'completed'
			  AND g.word = w.word
			  AND g.completed_at >= now() - make_interval(days => $3)
		  )
		ORDER BY random()
		LIMIT 1
	`, minFreq, userID, windowDays).Scan(&word)
	return word, err
}

// CandidatesForPair returns up to n random game words the pair has not completed within windowDays,
// ordered from easiest to hardest.
func (r *WordRepository) CandidatesForPair(ctx context.Context, q db.DBTX, a, b, minFreq int64, windowDays, n int) ([]domain.Word, error) {
	rows, err := q.Query(ctx, `
		SELECT c.word, c.frequency, c.score FROM (
			SELECT w.word, w.frequency, w.score::float8 AS score
			FROM words w
			WHERE w.frequency >= $1
			  AND NOT EXISTS (
				SELECT 1 FROM multiplayer_games g
				WHERE LEAST(g.player1_id, g.player2_id) = LEAST($2::bigint, $3::bigint)
				  AND GREATEST(g.player1_id, g.player2_id) = GREATEST($2::bigint, $3::bigint)
				  AND g.status = 'completed'
				  AND g.word = w.word
				  AND g.completed_at >= now() - make_interval(days => $4)
			  )
			ORDER BY random()
			LIMIT $5
		) c
		ORDER BY c.score, c.word
	`, minFreq, a, b, windowDays, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Word
	for rows.Next() {
		var w domain.Word
		if err := rows.Scan(&w.Text, &w.Frequency, &w.Score); err != nil {
			return nil, err
		}
		res = append(res, w)
	}
	return res, rows.Err()
}

// PlayedByPair reports whether the pair completed a turn on word within the last windowDays.
func (r *WordRepository) PlayedByPair(ctx context.Context, q db.DBTX, a, b int64, word string, windowDays int) (bool, error) {
	var played bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM multiplayer_games g
			WHERE LEAST(g.player1_id, g.player2_id) = LEAST($1::bigint, $2::bigint)
			  AND GREATEST(g.player1_id, g.player2_id) = GREATEST($1::bigint, $2::bigint)
			  AND g.status = 'completed'
			  AND g.word = $3
			  AND g.completed_at >= now() - make_interval(days => $4)
		)
	`, a, b, word, windowDays).Scan(&played)
	return played, err
}

// GameWords lists every word eligible as a secret.
func (r *WordRepository) GameWords(ctx context.Context, minFreq int64) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT word FROM words WHERE frequency >= $1 ORDER BY word`, minFreq)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		res = append(res, w)
	}
	return res, rows.Err()
}

// Upsert writes words in one batch, replacing frequency and score of existing entries.
func (r *WordRepository) Upsert(ctx context.Context, words []domain.Word) error {
	if len(words) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, w := range words {
		batch.Queue(`
			INSERT INTO words (word, frequency, score)
			VALUES ($1, $2, $3)
			ON CONFLICT (word) DO UPDATE SET frequency = EXCLUDED.frequency, score = EXCLUDED.score
		`, w.Text, w.Frequency, w.Score)
	}
	return r.db.SendBatch(ctx, batch).Close()
}
