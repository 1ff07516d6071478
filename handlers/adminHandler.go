package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"xobot/models"
)

// AdjustCoins applies a signed delta to a player's balance, flooring
// at zero. Reachable only through the AdminOnly middleware.
func AdjustCoins(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid player id"})
		return
	}

	var request models.AdjustCoinsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, uint(targetID)).Error; err != nil {
			return err
		}
		user.Coins += request.Amount
		if user.Coins < 0 {
			user.Coins = 0
		}
		return tx.Model(&user).Update("coins", user.Coins).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
			return
		}
		logger.Error("balance adjustment failed",
			zap.Uint64("targetID", targetID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "adjustment failed"})
		return
	}

	logger.Info("balance adjusted",
		zap.Uint64("targetID", targetID),
		zap.Int64("amount", request.Amount),
		zap.Int64("coins", user.Coins))
	c.JSON(http.StatusOK, gin.H{"userID": user.ID, "coins": user.Coins})
}
