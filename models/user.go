package models

import (
	"gorm.io/gorm"
)

// Defaults applied when a player is registered on first contact.
const (
	DefaultCoins  = 5000
	DefaultRating = 1200
)

// User is the persistent player profile: wallet, match stats, rating
// and the cosmetic items currently equipped.
type User struct {
	gorm.Model
	Username          string `gorm:"not null"`
	Name              string `gorm:"not null;default:''"`
	Coins             int64  `gorm:"not null"`
	Wins              int    `gorm:"not null;default:0"`
	Losses            int    `gorm:"not null;default:0"`
	Draws             int    `gorm:"not null;default:0"`
	Rating            int    `gorm:"not null;default:1200"`
	EquippedSymbol    string `gorm:"not null;default:''"`
	EquippedBg        string `gorm:"not null;default:''"`
	EquippedEmojiPack string `gorm:"not null;default:''"`
	EquippedAnimation string `gorm:"not null;default:''"`
}

// Purchase records one owned shop item per (user, item) pair.
type Purchase struct {
	UserID   uint   `gorm:"primaryKey;autoIncrement:false"`
	ItemID   string `gorm:"primaryKey"`
	BoughtAt int64  `gorm:"not null"`
}
