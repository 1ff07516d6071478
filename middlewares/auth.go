package middlewares

import (
	"net/http"
	"strings"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"xobot/models"
)

// Context keys set by AuthMiddleware.
const (
	CtxPlayerID = "playerID"
	CtxUsername = "username"
)

const tokenTTL = 72 * time.Hour

// GenerateToken issues an HS256 token binding the chat-platform user
// id the bot gateway resolved for this player.
func GenerateToken(secret []byte, playerID uint, username string) (string, error) {
	claims := &models.MyClaims{
		UserID:   playerID,
		Username: username,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(tokenTTL).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken validates a token string and returns its claims.
func ParseToken(secret []byte, tokenString string) (*models.MyClaims, error) {
	claims := &models.MyClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.NewValidationError("invalid token", jwt.ValidationErrorClaimsInvalid)
	}
	return claims, nil
}

// AuthMiddleware resolves the calling player from the Authorization
// header and stores the identity on the request context.
func AuthMiddleware(secret []byte, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := ParseToken(secret, tokenString)
		if err != nil {
			logger.Warn("token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(CtxPlayerID, claims.UserID)
		c.Set(CtxUsername, claims.Username)
		c.Next()
	}
}

// AdminOnly gates the admin console to the configured operator id.
func AdminOnly(adminID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		if PlayerID(c) != adminID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin only"})
			return
		}
		c.Next()
	}
}

// PlayerID reads the authenticated player id off the context.
func PlayerID(c *gin.Context) uint {
	id, _ := c.Get(CtxPlayerID)
	playerID, _ := id.(uint)
	return playerID
}
