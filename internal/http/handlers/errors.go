package handlers

import (
	"errors"
	"net/http"

	"wordle_duel/internal/domain"
	"wordle_duel/internal/logger"
	"wordle_duel/internal/repository"
	"wordle_duel/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError writes {"error", "code"} with the status for err's kind.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "code": "unauthorized"})
		return
	case errors.Is(err, repository.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "conflict"})
		return
	}

	var status int
	switch domain.Kind(err) {
	case domain.ErrValidation:
		status = http.StatusBadRequest
	case domain.ErrNotFound:
		status = http.StatusNotFound
	case domain.ErrState:
		status = http.StatusConflict
	case domain.ErrOwnership:
		status = http.StatusForbidden
	default:
		logger.WithContext(c.Request.Context()).Error("request failed", "route", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "code": "storage"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": domain.KindCode(err)})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg, "code": "validation"})
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found", "code": "unauthorized"})
}
