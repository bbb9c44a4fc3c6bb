package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type singleRequest struct {
	PlayerID int64 `json:"player_id"`
}

// SinglePlayer returns the player's open session or starts one.
func (h *Handler) SinglePlayer(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		unauthorized(c)
		return
	}
	var req singleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
	}
	if err := checkClaimedPlayer(userID, req.PlayerID); err != nil {
		respondError(c, err)
		return
	}

	view, err := h.Games.GetOrCreateSinglePlayer(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type completeSingleRequest struct {
	GameID   int64 `json:"game_id" binding:"required"`
	PlayerID int64 `json:"player_id"`
	Won      bool  `json:"won"`
}

func (h *Handler) CompleteSinglePlayer(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		unauthorized(c)
		return
	}
	var req completeSingleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "game_id is required")
		return
	}
	if err := checkClaimedPlayer(userID, req.PlayerID); err != nil {
		respondError(c, err)
		return
	}

	res, err := h.Games.CompleteSinglePlayer(c.Request.Context(), userID, req.GameID, req.Won)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Hint(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		unauthorized(c)
		return
	}
	gameID, ok := queryID(c, "game_id")
	if !ok {
		return
	}
	hint, err := h.Games.Hint(c.Request.Context(), userID, gameID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hint)
}
