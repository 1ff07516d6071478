package models

// TokenRequest identifies a chat-platform account to issue a JWT for.
// The platform user id is the stable identity; username and name are
// refreshed on every call, the way the bot re-reads them per update.
type TokenRequest struct {
	UserID   uint   `json:"userID" binding:"required"`
	Username string `json:"username" binding:"required"`
	Name     string `json:"name"`
}

// CreateMatchRequest starts a new session. A zero stake means "use the
// configured default".
type CreateMatchRequest struct {
	Stake int64 `json:"stake"`
}

// MoveRequest marks one cell, row-major index 0-8.
type MoveRequest struct {
	Cell *int `json:"cell" binding:"required"`
}

// AdjustCoinsRequest is the admin console's balance delta.
type AdjustCoinsRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}

// ShopActionRequest names the item to buy, equip or unequip.
type ShopActionRequest struct {
	ItemID string `json:"itemID" binding:"required"`
}
