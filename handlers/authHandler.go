package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"xobot/database"
	"xobot/middlewares"
	"xobot/models"
)

// IssueToken registers the caller's chat-platform identity on first
// contact (default balance and rating) and hands back a JWT for the
// gameplay routes.
func IssueToken(c *gin.Context, profiles *database.Profiles, secret []byte, logger *zap.Logger) {
	var request models.TokenRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := profiles.EnsureRegistered(c.Request.Context(), request.UserID, request.Username, request.Name); err != nil {
		logger.Error("registration failed", zap.Uint("userID", request.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	token, err := middlewares.GenerateToken(secret, request.UserID, request.Username)
	if err != nil {
		logger.Error("token generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "userID": request.UserID})
}
