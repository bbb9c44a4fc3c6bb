package handlers

import (
	"context"

	"wordle_duel/internal/domain"
	"wordle_duel/internal/service"
)

// GameAPI is the game surface the handlers drive. *service.GameService implements it.
type GameAPI interface {
	GetOrCreateSinglePlayer(ctx context.Context, playerID int64) (*service.SessionView, error)
	CompleteSinglePlayer(ctx context.Context, playerID, gameID int64, won bool) (*service.SingleCompletion, error)
	Hint(ctx context.Context, playerID, gameID int64) (*service.Hint, error)
	GetOrCreateMultiplayer(ctx context.Context, requesterID, opponentID int64) (*service.SessionView, error)
	WordChoices(ctx context.Context, requesterID, opponentID int64) ([]domain.Word, error)
	ChooseWord(ctx context.Context, playerID, gameID int64, word string) (service.GameView, error)
	CompleteTurn(ctx context.Context, actingID int64, req service.CompleteTurnRequest) (*service.TurnCompletion, error)
	CheckStatus(ctx context.Context, viewerID, gameID int64) (*service.TurnStatus, error)
	SubmitAttempt(ctx context.Context, playerID int64, req service.AttemptRequest) (*service.AttemptResult, error)
	ListAttempts(ctx context.Context, viewerID int64, mode domain.GameMode, gameID int64, turnNum *int) ([]service.AttemptView, error)
	CheckWord(ctx context.Context, raw string) (string, bool, error)
}

type AuthAPI interface {
	Register(ctx context.Context, username, password string) (*domain.User, string, error)
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

type ActivityAPI interface {
	Recent(ctx context.Context, userID int64, limit int) ([]*domain.AuditLog, error)
}

type Handler struct {
	Games GameAPI
	Auth  AuthAPI
	Audit ActivityAPI
}

func NewHandler(games *service.GameService, auth *service.AuthService, audit *service.AuditService) *Handler {
	return &Handler{
		Games: games,
		Auth:  auth,
		Audit: audit,
	}
}

// getUserID извлекает user_id из контекста Gin
func getUserID(c interface{ Get(string) (any, bool) }) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// resolvePair maps a (player1, player2) pair from the client to (requester, opponent).
// The authenticated player must be one of the two. A zero player1 means "me".
func resolvePair(userID, player1, player2 int64) (int64, error) {
	switch {
	case player1 == 0 || player1 == userID:
		return player2, nil
	case player2 == userID:
		return player1, nil
	default:
		return 0, domain.ErrPlayerMismatch
	}
}

// checkClaimedPlayer rejects a body player_id that disagrees with the token. Zero means absent.
func checkClaimedPlayer(userID, claimed int64) error {
	if claimed != 0 && claimed != userID {
		return domain.ErrPlayerMismatch
	}
	return nil
}
