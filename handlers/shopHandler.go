package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"xobot/middlewares"
	"xobot/models"
	"xobot/shop"
)

func shopStatus(err error) int {
	switch {
	case errors.Is(err, shop.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, shop.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, shop.ErrAlreadyOwned),
		errors.Is(err, shop.ErrNotOwned),
		errors.Is(err, shop.ErrNotEquipped):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ListShopCategory lists the items of one category, flagging which the
// caller already owns.
func ListShopCategory(c *gin.Context, store *shop.Shop, logger *zap.Logger) {
	category := c.Param("category")
	items := shop.ByCategory(category)
	if len(items) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no items in this category"})
		return
	}

	owned, err := store.OwnedItems(c.Request.Context(), middlewares.PlayerID(c))
	if err != nil {
		logger.Error("owned items load failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "shop unavailable"})
		return
	}
	ownedSet := make(map[string]bool, len(owned))
	for _, itemID := range owned {
		ownedSet[itemID] = true
	}

	type listed struct {
		shop.Item
		Owned bool `json:"owned"`
	}
	response := make([]listed, 0, len(items))
	for _, item := range items {
		response = append(response, listed{Item: item, Owned: ownedSet[item.ID]})
	}
	c.JSON(http.StatusOK, gin.H{"category": category, "items": response})
}

// BuyItem charges and grants an item.
func BuyItem(c *gin.Context, store *shop.Shop, logger *zap.Logger) {
	var request models.ShopActionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	playerID := middlewares.PlayerID(c)
	if err := store.Buy(c.Request.Context(), playerID, request.ItemID); err != nil {
		c.JSON(shopStatus(err), gin.H{"error": err.Error()})
		return
	}
	logger.Info("item purchased", zap.Uint("playerID", playerID), zap.String("itemID", request.ItemID))
	c.JSON(http.StatusOK, gin.H{"itemID": request.ItemID})
}

// EquipItem puts an owned item on.
func EquipItem(c *gin.Context, store *shop.Shop, logger *zap.Logger) {
	var request models.ShopActionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := store.Equip(c.Request.Context(), middlewares.PlayerID(c), request.ItemID); err != nil {
		c.JSON(shopStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"itemID": request.ItemID})
}

// UnequipItem takes an equipped item off.
func UnequipItem(c *gin.Context, store *shop.Shop, logger *zap.Logger) {
	var request models.ShopActionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := store.Unequip(c.Request.Context(), middlewares.PlayerID(c), request.ItemID); err != nil {
		c.JSON(shopStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"itemID": request.ItemID})
}
