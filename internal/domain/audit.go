package domain

import "time"

// AuditLog records a player action. Game actions are written in the same transaction as the change.
type AuditLog struct {
	ID        int64                  `db:"id" json:"id"`
	UserID    int64                  `db:"user_id" json:"user_id"`
	GameID    *int64                 `db:"game_id" json:"game_id,omitempty"`
	Action    string                 `db:"action" json:"action"`
	Category  string                 `db:"category" json:"category"`
	Details   map[string]interface{} `db:"details" json:"details"`
	IP        string                 `db:"ip" json:"ip,omitempty"`
	UserAgent string                 `db:"user_agent" json:"user_agent,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}

// Audit action categories
const (
	AuditCategoryAuth = "auth"
	AuditCategoryGame = "game"
)

// Audit actions
const (
	AuditActionRegister = "register"
	AuditActionLogin    = "login"

	AuditActionGameStart    = "game_start"
	AuditActionWordChosen   = "word_chosen"
	AuditActionGuess        = "guess"
	AuditActionTurnComplete = "turn_complete"
	AuditActionGameWin      = "game_win"
	AuditActionGameLose     = "game_lose"
)
