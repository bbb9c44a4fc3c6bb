package service

import "context"

// Turn event names.
const (
	EventTurnCreated   = "turn_created"
	EventWordChosen    = "word_chosen"
	EventGuess         = "guess"
	EventTurnCompleted = "turn_completed"
)

// TurnEvent is pushed to both players after a committed multiplayer change.
// It carries the same fields as the status endpoint.
type TurnEvent struct {
	Event         string `json:"event"`
	GameID        int64  `json:"game_id"`
	Player1ID     int64  `json:"player1_id"`
	Player2ID     int64  `json:"player2_id"`
	PlayerTurn    int64  `json:"player_turn"`
	HasWord       bool   `json:"has_word"`
	TurnCompleted bool   `json:"turn_completed"`
	NewGameID     *int64 `json:"new_game_id,omitempty"`
	TurnNum       int    `json:"turn_num"`
	AttemptNum    int    `json:"attempt_num,omitempty"`
}

// TurnNotifier delivers turn events to connected players.
type TurnNotifier interface {
	PublishTurn(ctx context.Context, ev TurnEvent)
}
