package database

import (
	"context"
	"strconv"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"xobot/game"
	"xobot/models"
)

// Sorted-set keys, one per ranking mode, plus a hash resolving member
// ids to display names.
const (
	lbRatingKey = "leaderboard:rating"
	lbWinsKey   = "leaderboard:wins"
	lbCoinsKey  = "leaderboard:coins"
	lbNamesKey  = "leaderboard:names"
)

// Leaderboard keeps the top listings in Redis sorted sets. It is a
// best-effort sink for the engine: Record never surfaces errors into
// settlement, it only logs them.
type Leaderboard struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewLeaderboard(rdb *redis.Client, logger *zap.Logger) *Leaderboard {
	return &Leaderboard{rdb: rdb, logger: logger}
}

// Record upserts one player's standings after settlement.
func (l *Leaderboard) Record(ctx context.Context, p *game.Profile) {
	member := strconv.FormatUint(uint64(p.PlayerID), 10)
	pipe := l.rdb.Pipeline()
	pipe.ZAdd(ctx, lbRatingKey, &redis.Z{Score: float64(p.Rating), Member: member})
	pipe.ZAdd(ctx, lbWinsKey, &redis.Z{Score: float64(p.Wins), Member: member})
	pipe.ZAdd(ctx, lbCoinsKey, &redis.Z{Score: float64(p.Coins), Member: member})
	pipe.HSet(ctx, lbNamesKey, member, p.DisplayName())
	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.Warn("leaderboard update failed",
			zap.Uint("playerID", p.PlayerID), zap.Error(err))
	}
}

// Top returns the n best players by mode ("rating", "wins" or
// "coins"), highest first.
func (l *Leaderboard) Top(ctx context.Context, mode string, n int64) ([]models.LeaderboardEntry, error) {
	var key string
	switch mode {
	case "wins":
		key = lbWinsKey
	case "coins":
		key = lbCoinsKey
	default:
		key = lbRatingKey
	}

	ranked, err := l.rdb.ZRevRangeWithScores(ctx, key, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(ranked))
	for _, z := range ranked {
		member, _ := z.Member.(string)
		id, _ := strconv.ParseUint(member, 10, 64)
		name, err := l.rdb.HGet(ctx, lbNamesKey, member).Result()
		if err != nil {
			name = member
		}
		entries = append(entries, models.LeaderboardEntry{
			PlayerID: uint(id),
			Name:     name,
			Score:    z.Score,
		})
	}
	return entries, nil
}
