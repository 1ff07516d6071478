package models

import (
	jwt "github.com/dgrijalva/jwt-go"
)

// MyClaims is the JWT payload identifying a player.
type MyClaims struct {
	UserID   uint   `json:"userID"`
	Username string `json:"username"`
	jwt.StandardClaims
}
