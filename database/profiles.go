package database

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"xobot/game"
	"xobot/models"
)

// Profiles is the gorm-backed game.ProfileStore. Settlement writes for
// both players of a match run in one transaction with the rows locked,
// so two sessions settling against the same player can never interleave
// into a lost update, and a crash mid-settlement leaves no partial
// payout visible.
type Profiles struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewProfiles(db *gorm.DB, logger *zap.Logger) *Profiles {
	return &Profiles{db: db, logger: logger}
}

// EnsureRegistered creates the default profile on first contact and
// refreshes the display identity on every later one.
func (p *Profiles) EnsureRegistered(ctx context.Context, playerID uint, username, name string) error {
	user := models.User{
		Model:    gorm.Model{ID: playerID},
		Username: username,
		Name:     name,
		Coins:    models.DefaultCoins,
		Rating:   models.DefaultRating,
	}
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.User
		result := tx.First(&existing, playerID)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return tx.Create(&user).Error
		}
		if result.Error != nil {
			return result.Error
		}
		return tx.Model(&existing).Updates(map[string]interface{}{
			"username": username,
			"name":     name,
		}).Error
	})
	if err != nil {
		p.logger.Error("player registration failed",
			zap.Uint("playerID", playerID), zap.Error(err))
	}
	return err
}

func (p *Profiles) Load(ctx context.Context, playerID uint) (*game.Profile, error) {
	var user models.User
	if err := p.db.WithContext(ctx).First(&user, playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, game.ErrPlayerNotFound
		}
		return nil, err
	}
	return toProfile(&user), nil
}

// Save overwrites the given snapshots atomically. All rows are locked
// up front in id order; id order keeps two concurrent settlements that
// share a player from deadlocking each other.
func (p *Profiles) Save(ctx context.Context, snapshots ...*game.Profile) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, snapshot := range sortByID(snapshots) {
			var user models.User
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&user, snapshot.PlayerID).Error; err != nil {
				return err
			}
			if err := tx.Model(&user).Updates(map[string]interface{}{
				"coins":  snapshot.Coins,
				"wins":   snapshot.Wins,
				"losses": snapshot.Losses,
				"draws":  snapshot.Draws,
				"rating": snapshot.Rating,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func sortByID(snapshots []*game.Profile) []*game.Profile {
	ordered := make([]*game.Profile, len(snapshots))
	copy(ordered, snapshots)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j-1].PlayerID > ordered[j].PlayerID; j-- {
			ordered[j-1], ordered[j] = ordered[j], ordered[j-1]
		}
	}
	return ordered
}

func toProfile(user *models.User) *game.Profile {
	return &game.Profile{
		PlayerID:          user.ID,
		Username:          user.Username,
		Name:              user.Name,
		Coins:             user.Coins,
		Wins:              user.Wins,
		Losses:            user.Losses,
		Draws:             user.Draws,
		Rating:            user.Rating,
		EquippedSymbol:    user.EquippedSymbol,
		EquippedEmojiPack: user.EquippedEmojiPack,
	}
}
