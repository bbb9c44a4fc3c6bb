package domain

import "time"

// Attempt is one guess. TurnNum is always 0 for single-player sessions.
type Attempt struct {
	ID         int64     `db:"id" json:"id"`
	GameID     int64     `db:"game_id" json:"game_id"`
	TurnNum    int       `db:"turn_num" json:"turn_num"`
	UserID     int64     `db:"user_id" json:"player_id"`
	AttemptNum int       `db:"attempt_num" json:"attempt_num"`
	Word       string    `db:"attempt" json:"attempt"`
	IsCorrect  bool      `db:"is_correct" json:"is_correct"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Word is a lexicon entry. Score is the base difficulty score in [1, 10].
type Word struct {
	Text      string  `db:"word" json:"word"`
	Frequency int64   `db:"frequency" json:"-"`
	Score     float64 `db:"score" json:"score"`
}
