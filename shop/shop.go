package shop

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"xobot/models"
)

var (
	ErrItemNotFound      = errors.New("item not found")
	ErrAlreadyOwned      = errors.New("item already owned")
	ErrNotOwned          = errors.New("item not owned")
	ErrNotEquipped       = errors.New("item not equipped")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Shop sells cosmetics against the same users table the match engine
// settles into. Purchases charge and grant in one transaction so a
// crash can't take the coins without granting the item.
type Shop struct {
	db     *gorm.DB
	logger *zap.Logger
}

func New(db *gorm.DB, logger *zap.Logger) *Shop {
	return &Shop{db: db, logger: logger}
}

// Owned reports whether the player bought the item.
func (s *Shop) Owned(ctx context.Context, playerID uint, itemID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Purchase{}).
		Where("user_id = ? AND item_id = ?", playerID, itemID).
		Count(&count).Error
	return count > 0, err
}

// OwnedItems lists the player's purchased item ids.
func (s *Shop) OwnedItems(ctx context.Context, playerID uint) ([]string, error) {
	var itemIDs []string
	err := s.db.WithContext(ctx).Model(&models.Purchase{}).
		Where("user_id = ?", playerID).
		Pluck("item_id", &itemIDs).Error
	return itemIDs, err
}

// Buy charges the item's price and records the purchase.
func (s *Shop) Buy(ctx context.Context, playerID uint, itemID string) error {
	item, ok := Find(itemID)
	if !ok {
		return ErrItemNotFound
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, playerID).Error; err != nil {
			return err
		}

		var owned int64
		if err := tx.Model(&models.Purchase{}).
			Where("user_id = ? AND item_id = ?", playerID, itemID).
			Count(&owned).Error; err != nil {
			return err
		}
		if owned > 0 {
			return ErrAlreadyOwned
		}
		if user.Coins < item.Price {
			return ErrInsufficientFunds
		}

		if err := tx.Model(&user).
			Update("coins", user.Coins-item.Price).Error; err != nil {
			return err
		}
		return tx.Create(&models.Purchase{
			UserID:   playerID,
			ItemID:   itemID,
			BoughtAt: time.Now().Unix(),
		}).Error
	})
}

// Equip puts an owned item on, replacing whatever occupied its
// category.
func (s *Shop) Equip(ctx context.Context, playerID uint, itemID string) error {
	item, ok := Find(itemID)
	if !ok {
		return ErrItemNotFound
	}
	column, ok := equippedColumn(item.Category)
	if !ok {
		return ErrItemNotFound
	}

	owned, err := s.Owned(ctx, playerID, itemID)
	if err != nil {
		return err
	}
	if !owned {
		return ErrNotOwned
	}

	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", playerID).
		Update(column, itemID).Error
}

// Unequip takes the item off if it is currently worn.
func (s *Shop) Unequip(ctx context.Context, playerID uint, itemID string) error {
	item, ok := Find(itemID)
	if !ok {
		return ErrItemNotFound
	}
	column, ok := equippedColumn(item.Category)
	if !ok {
		return ErrItemNotFound
	}

	result := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND "+column+" = ?", playerID, itemID).
		Update(column, "")
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotEquipped
	}
	return nil
}
