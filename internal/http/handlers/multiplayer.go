package handlers

import (
	"net/http"

	"wordle_duel/internal/service"

	"github.com/gin-gonic/gin"
)

type pairRequest struct {
	Player1ID int64 `json:"player1_id"`
	Player2ID int64 `json:"player2_id" binding:"required"`
}

// Multiplayer returns the pair's open turn or starts one with the requester as challenger.
func (h *Handler) Multiplayer(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		unauthorized(c)
		return
	}
	var req pairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "player2_id is required")
		return
	}
	opponent, err := resolvePair(userID, req.Player1ID, req.Player2ID)
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.Games.GetOrCreateMultiplayer(c.Request.Context(), userID, opponent)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) WordChoices(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		unauthorized(c)
		return
	}
	player2, ok := queryID(c, "player2_id")
	if !ok {
		return
	}
	var player1 int64
	if c.Query("player1_id") != "" {
		if player1, ok = queryID(c, "player1_id"); !ok {
			return
		}
	}
	opponent, err := resolvePair(userID, player1, player2)
	if err != nil {
		respondError(c, err)
		return
	}

	words, err := h.Games.WordChoices(c.Request.Context(), userID, opponent)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, words)
}

type chooseWordRequest struct {
	GameID   int64  `json:"game_id" binding:"required"`
	PlayerID int64  `json:"player_id"`
	Word     string `json:"word" binding:"required"`
}

func (h *Handler) ChooseWord(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		unauthorized(c)
		return
	}
	var req chooseWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "game_id and word are required")
		return
	}
	if err := checkClaimedPlayer(userID, req.PlayerID); err != nil {
		respondError(c, err)
		return
	}

	view, err := h.Games.ChooseWord(c.Request.Context(), userID, req.GameID, req.Word)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"game": view})
}

type completeTurnRequest struct {
	GameID       int64 `json:"game_id" binding:"required"`
	PlayerID     int64 `json:"player_id"`
	AttemptsUsed int   `json:"attempts_used"`
	Won          bool  `json:"won"`
}

func (h *Handler) CompleteTurn(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		unauthorized(c)
		return
	}
	var req completeTurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "game_id is required")
		return
	}
	if req.AttemptsUsed < 0 {
		badRequest(c, "attempts_used must not be negative")
		return
	}
	if err := checkClaimedPlayer(userID, req.PlayerID); err != nil {
		respondError(c, err)
		return
	}

	res, err := h.Games.CompleteTurn(c.Request.Context(), userID, service.CompleteTurnRequest{
		GameID:       req.GameID,
		AttemptsUsed: req.AttemptsUsed,
		Won:          req.Won,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// TurnStatus is the polling endpoint. It never changes state.
func (h *Handler) TurnStatus(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		unauthorized(c)
		return
	}
	gameID, ok := queryID(c, "game_id")
	if !ok {
		return
	}
	st, err := h.Games.CheckStatus(c.Request.Context(), userID, gameID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
