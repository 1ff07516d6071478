package utils

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"xobot/game"
)

// staleSessionAge is how long an unanswered match invitation stays
// joinable before the sweeper discards it. Nothing is escrowed before
// a join, so discarding moves no coins.
const staleSessionAge = 24 * time.Hour

// CronCleaner periodically discards sessions that never found an
// opponent.
func CronCleaner(engine *game.Engine, logger *zap.Logger) {
	c := cron.New()

	c.AddFunc("@hourly", func() {
		removed := engine.SweepStale(staleSessionAge)
		if removed > 0 {
			logger.Info("stale sessions swept", zap.Int("removed", removed))
		}
	})

	c.Start()
}
