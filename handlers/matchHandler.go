package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"xobot/game"
	"xobot/middlewares"
	"xobot/models"
)

// matchStatus maps engine rejections onto HTTP statuses. All of these
// are non-fatal user-visible rejections; session state is unchanged.
func matchStatus(err error) int {
	switch {
	case errors.Is(err, game.ErrGameUnavailable):
		return http.StatusNotFound
	case errors.Is(err, game.ErrSelfJoin),
		errors.Is(err, game.ErrNotAPlayer),
		errors.Is(err, game.ErrNotYourTurn):
		return http.StatusForbidden
	case errors.Is(err, game.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, game.ErrInvalidMove):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrPlayerNotFound):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// CreateMatch opens a session for the caller's stake.
func CreateMatch(c *gin.Context, engine *game.Engine, logger *zap.Logger) {
	var request models.CreateMatchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := engine.Create(c.Request.Context(), middlewares.PlayerID(c), request.Stake)
	if err != nil {
		c.JSON(matchStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"sessionID": session.ID, "stake": session.Stake})
}

// JoinMatch seats the caller as the second player.
func JoinMatch(c *gin.Context, engine *game.Engine, logger *zap.Logger) {
	sessionID := c.Param("id")
	if err := engine.Join(c.Request.Context(), sessionID, middlewares.PlayerID(c)); err != nil {
		c.JSON(matchStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionID": sessionID})
}

// MoveMatch marks a cell for the caller. An occupied target cell is a
// silent no-op, indistinguishable from success here.
func MoveMatch(c *gin.Context, engine *game.Engine, logger *zap.Logger) {
	var request models.MoveRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID := c.Param("id")
	err := engine.Move(c.Request.Context(), sessionID, middlewares.PlayerID(c), *request.Cell)
	if err != nil {
		c.JSON(matchStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionID": sessionID})
}

// GetMatch returns the current board view of a live session.
func GetMatch(c *gin.Context, engine *game.Engine, logger *zap.Logger) {
	view, err := engine.View(c.Param("id"))
	if err != nil {
		c.JSON(matchStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}
