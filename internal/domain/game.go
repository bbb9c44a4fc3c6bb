package domain

import (
	"strings"
	"time"
)

const (
	WordLength  = 5
	MaxAttempts = 6
)

type GameMode string

const (
	GameModeSingle      GameMode = "single"
	GameModeMultiplayer GameMode = "multiplayer"
)

// ParseGameMode accepts the tags clients send as game_type.
func ParseGameMode(s string) (GameMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "single_player", "singleplayer":
		return GameModeSingle, nil
	case "multiplayer", "multi", "multi_player":
		return GameModeMultiplayer, nil
	default:
		return "", ErrUnknownGameMode
	}
}

type GameStatus string

const (
	GameStatusInProgress GameStatus = "in_progress"
	GameStatusCompleted  GameStatus = "completed"
)

// Game is either a *SinglePlayerGame or a *MultiplayerGame.
type Game interface {
	Mode() GameMode
	Common() *GameBase
	game()
}

// GameBase holds the fields both modes share.
type GameBase struct {
	ID           int64      `json:"game_id"`
	Word         *string    `json:"-"`
	Status       GameStatus `json:"status"`
	TurnNum      int        `json:"current_turn_num"`
	LastTurnTime time.Time  `json:"last_turn_time"`
	CompletedAt  *time.Time `json:"completed_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (b *GameBase) Common() *GameBase { return b }

func (b *GameBase) HasWord() bool { return b.Word != nil && *b.Word != "" }

func (b *GameBase) Completed() bool { return b.Status == GameStatusCompleted }

// SecretWord returns the secret or "" while none is set.
func (b *GameBase) SecretWord() string {
	if b.Word == nil {
		return ""
	}
	return *b.Word
}

type SinglePlayerGame struct {
	GameBase
	UserID int64 `json:"player_id"`
	Won    *bool `json:"won"`
	Points int   `json:"points"`
}

func (*SinglePlayerGame) Mode() GameMode { return GameModeSingle }
func (*SinglePlayerGame) game()          {}

// NewSinglePlayerGame starts a session at turn 0.
func NewSinglePlayerGame(userID int64, word string, now time.Time) *SinglePlayerGame {
	return &SinglePlayerGame{
		GameBase: GameBase{
			Word:         &word,
			Status:       GameStatusInProgress,
			TurnNum:      0,
			LastTurnTime: now,
		},
		UserID: userID,
	}
}

// CanGuess checks that playerID may submit attempt number attemptNum.
func (g *SinglePlayerGame) CanGuess(playerID int64, attemptNum int) error {
	if g.UserID != playerID {
		return ErrNotParticipant
	}
	if g.Completed() {
		return ErrGameCompleted
	}
	if attemptNum > MaxAttempts {
		return ErrAttemptLimit
	}
	return nil
}

// Complete closes the session. Completing twice is rejected.
func (g *SinglePlayerGame) Complete(won bool, points int, now time.Time) error {
	if g.Completed() {
		return ErrGameCompleted
	}
	if !won {
		points = 0
	}
	g.Status = GameStatusCompleted
	g.Won = &won
	g.Points = points
	g.CompletedAt = &now
	g.LastTurnTime = now
	return nil
}

// TurnState is the multiplayer sub-state of a turn row.
type TurnState string

const (
	TurnAwaitingWord TurnState = "awaiting_word"
	TurnGuessing     TurnState = "guessing"
	TurnCompleted    TurnState = "completed"
)

// MultiplayerGame is one turn of a two-player match. Every completed turn is followed by a new row.
type MultiplayerGame struct {
	GameBase
	Player1ID    int64 `json:"player1_id"`
	Player2ID    int64 `json:"player2_id"`
	PlayerTurn   int64 `json:"player_turn"`
	Player1Score int   `json:"player1_score"`
	Player2Score int   `json:"player2_score"`
}

func (*MultiplayerGame) Mode() GameMode { return GameModeMultiplayer }
func (*MultiplayerGame) game()          {}

// NewMultiplayerTurn creates a turn awaiting the challenger's word.
func NewMultiplayerTurn(player1, player2, challenger int64, turnNum, score1, score2 int, now time.Time) *MultiplayerGame {
	return &MultiplayerGame{
		GameBase: GameBase{
			Status:       GameStatusInProgress,
			TurnNum:      turnNum,
			LastTurnTime: now,
		},
		Player1ID:    player1,
		Player2ID:    player2,
		PlayerTurn:   challenger,
		Player1Score: score1,
		Player2Score: score2,
	}
}

func (g *MultiplayerGame) State() TurnState {
	switch {
	case g.Completed():
		return TurnCompleted
	case g.HasWord():
		return TurnGuessing
	default:
		return TurnAwaitingWord
	}
}

func (g *MultiplayerGame) IsPlayer(id int64) bool {
	return id == g.Player1ID || id == g.Player2ID
}

// Opponent returns the other participant, or false if id is not in the pair.
func (g *MultiplayerGame) Opponent(id int64) (int64, bool) {
	switch id {
	case g.Player1ID:
		return g.Player2ID, true
	case g.Player2ID:
		return g.Player1ID, true
	}
	return 0, false
}

// Challenger is the player who picked (or is picking) the word.
func (g *MultiplayerGame) Challenger() int64 {
	if g.State() == TurnGuessing {
		opp, _ := g.Opponent(g.PlayerTurn)
		return opp
	}
	return g.PlayerTurn
}

func (g *MultiplayerGame) ScoreOf(id int64) int {
	if id == g.Player1ID {
		return g.Player1Score
	}
	if id == g.Player2ID {
		return g.Player2Score
	}
	return 0
}

func (g *MultiplayerGame) checkActor(playerID int64) error {
	if !g.IsPlayer(playerID) {
		return ErrNotParticipant
	}
	if g.PlayerTurn != playerID {
		return ErrNotYourTurn
	}
	return nil
}

// ChooseWord moves AwaitingWord -> Guessing and hands the turn to the opponent.
func (g *MultiplayerGame) ChooseWord(playerID int64, word string, now time.Time) error {
	switch g.State() {
	case TurnCompleted:
		return ErrGameCompleted
	case TurnGuessing:
		return ErrWordAlreadyChosen
	}
	if err := g.checkActor(playerID); err != nil {
		return err
	}
	opp, _ := g.Opponent(playerID)
	g.Word = &word
	g.PlayerTurn = opp
	g.LastTurnTime = now
	return nil
}

// CanGuess checks that playerID may submit attempt number attemptNum in this turn.
func (g *MultiplayerGame) CanGuess(playerID int64, attemptNum int) error {
	switch g.State() {
	case TurnCompleted:
		return ErrGameCompleted
	case TurnAwaitingWord:
		if !g.IsPlayer(playerID) {
			return ErrNotParticipant
		}
		return ErrAwaitingWord
	}
	if err := g.checkActor(playerID); err != nil {
		return err
	}
	if attemptNum > MaxAttempts {
		return ErrAttemptLimit
	}
	return nil
}

// CompleteTurn closes the turn for the guesser, adds points and returns the next turn row,
// which the guesser opens as the new challenger.
func (g *MultiplayerGame) CompleteTurn(actingID int64, points int, now time.Time) (*MultiplayerGame, error) {
	switch g.State() {
	case TurnCompleted:
		return nil, ErrGameCompleted
	case TurnAwaitingWord:
		if !g.IsPlayer(actingID) {
			return nil, ErrNotParticipant
		}
		return nil, ErrAwaitingWord
	}
	if err := g.checkActor(actingID); err != nil {
		return nil, err
	}
	if points < 0 {
		points = 0
	}
	if actingID == g.Player1ID {
		g.Player1Score += points
	} else {
		g.Player2Score += points
	}
	g.Status = GameStatusCompleted
	g.CompletedAt = &now
	g.LastTurnTime = now

	return NewMultiplayerTurn(g.Player1ID, g.Player2ID, actingID, g.TurnNum+1, g.Player1Score, g.Player2Score, now), nil
}

// CanonicalPair orders a new pair with the requester first.
func CanonicalPair(requester, opponent int64, prev *MultiplayerGame) (player1, player2 int64) {
	if prev != nil && prev.IsPlayer(requester) && prev.IsPlayer(opponent) {
		return prev.Player1ID, prev.Player2ID
	}
	return requester, opponent
}

// NormalizeWord upper-cases and trims a word.
func NormalizeWord(w string) string {
	return strings.ToUpper(strings.TrimSpace(w))
}

// ValidateWord checks shape only: length and alphabet.
func ValidateWord(w string) error {
	if len(w) != WordLength {
		return ErrGuessLength
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'A' || w[i] > 'Z' {
			return ErrGuessAlphabet
		}
	}
	return nil
}
