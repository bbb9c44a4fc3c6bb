package handlers

import (
	"net/http"

	"wordle_duel/internal/domain"
	"wordle_duel/internal/service"

	"github.com/gin-gonic/gin"
)

// attemptRequest is a guess. is_correct is accepted for compatibility and ignored.
type attemptRequest struct {
	GameID     int64  `json:"game_id" binding:"required"`
	GameType   string `json:"game_type" binding:"required"`
	PlayerID   int64  `json:"player_id"`
	Attempt    string `json:"attempt" binding:"required"`
	AttemptNum int    `json:"attempt_num"`
	IsCorrect  bool   `json:"is_correct"`
	TurnNum    *int   `json:"turn_num"`
}

func (h *Handler) SubmitAttempt(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		unauthorized(c)
		return
	}
	var req attemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "game_id, game_type and attempt are required")
		return
	}
	mode, err := domain.ParseGameMode(req.GameType)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := checkClaimedPlayer(userID, req.PlayerID); err != nil {
		respondError(c, err)
		return
	}

	res, err := h.Games.SubmitAttempt(c.Request.Context(), userID, service.AttemptRequest{
		GameID:     req.GameID,
		Mode:       mode,
		Guess:      req.Attempt,
		AttemptNum: req.AttemptNum,
		TurnNum:    req.TurnNum,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListAttempts(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		unauthorized(c)
		return
	}
	mode, err := domain.ParseGameMode(c.Query("game_type"))
	if err != nil {
		respondError(c, err)
		return
	}
	gameID, ok := queryID(c, "game_id")
	if !ok {
		return
	}
	turnNum, ok := optionalInt(c, "turn_num")
	if !ok {
		return
	}

	attempts, err := h.Games.ListAttempts(c.Request.Context(), userID, mode, gameID, turnNum)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attempts": attempts})
}
