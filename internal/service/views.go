package service

import (
	"time"

	"wordle_duel/internal/domain"
	"wordle_duel/internal/game"
)

// GameView is the wire form of a game: *SingleGameView or *MultiplayerGameView.
type GameView interface {
	gameView()
}

type gameViewBase struct {
	GameID       int64             `json:"game_id"`
	GameType     domain.GameMode   `json:"game_type"`
	Status       domain.GameStatus `json:"status"`
	TurnNum      int               `json:"current_turn_num"`
	Word         *string           `json:"word"`
	HasWord      bool              `json:"has_word"`
	LastTurnTime time.Time         `json:"last_turn_time"`
	CompletedAt  *time.Time        `json:"completed_at"`
}

func (gameViewBase) gameView() {}

type SingleGameView struct {
	gameViewBase
	PlayerID int64 `json:"player_id"`
	Won      *bool `json:"won"`
	Points   int   `json:"points"`
}

type MultiplayerGameView struct {
	gameViewBase
	Player1ID    int64            `json:"player1_id"`
	Player2ID    int64            `json:"player2_id"`
	PlayerTurn   int64            `json:"player_turn"`
	Player1Score int              `json:"player1_score"`
	Player2Score int              `json:"player2_score"`
	TurnState    domain.TurnState `json:"turn_state"`
}

// secretVisible hides the secret from whoever still has to guess it.
func secretVisible(g domain.Game, viewerID int64) bool {
	switch g := g.(type) {
	case *domain.SinglePlayerGame:
		return g.Completed()
	case *domain.MultiplayerGame:
		switch g.State() {
		case domain.TurnCompleted:
			return true
		case domain.TurnGuessing:
			return viewerID == g.Challenger()
		}
	}
	return false
}

// NewGameView renders g for viewerID.
func NewGameView(g domain.Game, viewerID int64) GameView {
	c := g.Common()
	base := gameViewBase{
		GameID:       c.ID,
		GameType:     g.Mode(),
		Status:       c.Status,
		TurnNum:      c.TurnNum,
		HasWord:      c.HasWord(),
		LastTurnTime: c.LastTurnTime,
		CompletedAt:  c.CompletedAt,
	}
	if secretVisible(g, viewerID) && c.HasWord() {
		w := c.SecretWord()
		base.Word = &w
	}

	switch g := g.(type) {
	case *domain.SinglePlayerGame:
		return &SingleGameView{
			gameViewBase: base,
			PlayerID:     g.UserID,
			Won:          g.Won,
			Points:       g.Points,
		}
	case *domain.MultiplayerGame:
		return &MultiplayerGameView{
			gameViewBase: base,
			Player1ID:    g.Player1ID,
			Player2ID:    g.Player2ID,
			PlayerTurn:   g.PlayerTurn,
			Player1Score: g.Player1Score,
			Player2Score: g.Player2Score,
			TurnState:    g.State(),
		}
	}
	return nil
}

// AttemptView is an attempt with its per-letter verdict.
type AttemptView struct {
	AttemptNum int                 `json:"attempt_num"`
	Attempt    string              `json:"attempt"`
	IsCorrect  bool                `json:"is_correct"`
	PlayerID   int64               `json:"player_id"`
	TurnNum    int                 `json:"turn_num"`
	Marks      []game.LetterStatus `json:"marks"`
	CreatedAt  time.Time           `json:"created_at"`
}

// attemptViews evaluates attempts against secret and aggregates the keyboard.
func attemptViews(attempts []*domain.Attempt, secret string) ([]AttemptView, game.Keyboard) {
	views := make([]AttemptView, 0, len(attempts))
	kb := game.Keyboard{}
	for _, a := range attempts {
		marks, err := game.Evaluate(a.Word, secret)
		if err == nil {
			kb.Apply(a.Word, marks)
		}
		views = append(views, AttemptView{
			AttemptNum: a.AttemptNum,
			Attempt:    a.Word,
			IsCorrect:  a.IsCorrect,
			PlayerID:   a.UserID,
			TurnNum:    a.TurnNum,
			Marks:      marks,
			CreatedAt:  a.CreatedAt,
		})
	}
	return views, kb
}

// SessionView answers the get-or-create calls. Attempts is nil while a turn awaits its word.
type SessionView struct {
	Game     GameView      `json:"game"`
	Attempts []AttemptView `json:"attempts"`
	Keyboard game.Keyboard `json:"keyboard"`
	IsNew    bool          `json:"newGame"`
}

func newSessionView(g domain.Game, attempts []*domain.Attempt, viewerID int64, isNew bool) *SessionView {
	v := &SessionView{
		Game:     NewGameView(g, viewerID),
		Keyboard: game.Keyboard{},
		IsNew:    isNew,
	}
	if g.Common().HasWord() && attempts != nil {
		v.Attempts, v.Keyboard = attemptViews(attempts, g.Common().SecretWord())
	}
	return v
}

// TurnStatus is the poll response. GameID is set only when the polled turn was handed off.
type TurnStatus struct {
	PlayerTurn     int64  `json:"player_turn"`
	HasWord        bool   `json:"has_word"`
	TurnCompleted  bool   `json:"turn_completed"`
	GameID         *int64 `json:"game_id,omitempty"`
	TurnNum        int    `json:"turn_num"`
	PollIntervalMS int64  `json:"poll_interval_ms"`
}

// AttemptResult answers a guess submission.
type AttemptResult struct {
	Attempts     []AttemptView       `json:"attempts"`
	Keyboard     game.Keyboard       `json:"keyboard"`
	Marks        []game.LetterStatus `json:"marks"`
	IsCorrect    bool                `json:"is_correct"`
	Completed    bool                `json:"completed"`
	Won          bool                `json:"won"`
	PointsEarned int                 `json:"pointsEarned"`
	Game         GameView            `json:"game"`
}

// TurnCompletion answers an explicit turn completion.
type TurnCompletion struct {
	Game          GameView `json:"game"`
	TurnCompleted bool     `json:"turnCompleted"`
	PointsEarned  int      `json:"pointsEarned"`
}

// SingleCompletion answers the single-player completion call.
type SingleCompletion struct {
	Success      bool `json:"success"`
	Won          bool `json:"won"`
	PointsEarned int  `json:"points_earned"`
}

// Hint is the suggested next guess for a single-player session.
type Hint struct {
	Hint           string  `json:"hint"`
	Entropy        float64 `json:"entropy"`
	CandidatesLeft int     `json:"candidates_left"`
}
