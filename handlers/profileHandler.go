package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"xobot/database"
	"xobot/game"
	"xobot/middlewares"
	"xobot/models"
)

// GetProfile returns the caller's own profile card: wallet, stats,
// rating with rank name and the currently equipped cosmetics.
func GetProfile(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	var user models.User
	if err := db.First(&user, middlewares.PlayerID(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
			return
		}
		logger.Error("profile load failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile load failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userID":   user.ID,
		"username": user.Username,
		"name":     user.Name,
		"coins":    user.Coins,
		"wins":     user.Wins,
		"losses":   user.Losses,
		"draws":    user.Draws,
		"rating":   user.Rating,
		"rank":     game.RankName(user.Rating),
		"equipped": gin.H{
			"symbol":     user.EquippedSymbol,
			"background": user.EquippedBg,
			"emojiPack":  user.EquippedEmojiPack,
			"animation":  user.EquippedAnimation,
		},
	})
}

// GetTop returns the top-10 listing, mode picked by ?by=rating|wins|coins.
func GetTop(c *gin.Context, leaderboard *database.Leaderboard, logger *zap.Logger) {
	mode := c.DefaultQuery("by", "rating")
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	if err != nil || limit <= 0 || limit > 100 {
		limit = 10
	}

	entries, err := leaderboard.Top(c.Request.Context(), mode, limit)
	if err != nil {
		logger.Error("leaderboard read failed", zap.String("mode", mode), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "leaderboard unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"by": mode, "entries": entries})
}
