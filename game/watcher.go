package game

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultMoveTimeout is how long a player may sit on their turn before
// forfeiting the match.
const DefaultMoveTimeout = 30 * time.Second

// moveTimer is one armed timeout for one awaited move. Cancellation is
// best-effort: Stop can lose the race against an expiry that is already
// scheduled, which is why the fire path re-validates both identity
// (still the session's pending timer) and staleness before forfeiting.
type moveTimer struct {
	timer *time.Timer
}

func (m *moveTimer) cancel() {
	if m != nil && m.timer != nil {
		m.timer.Stop()
	}
}

// armMoveTimer replaces the session's pending timer with a fresh one.
// Caller holds s.mu, so cancel-and-replace is atomic with respect to
// every other mutation of the session.
func (e *Engine) armMoveTimer(s *Session) {
	s.pendingTimer.cancel()
	mt := &moveTimer{}
	mt.timer = time.AfterFunc(e.moveTimeout, func() {
		e.expireMove(s.ID, mt)
	})
	s.pendingTimer = mt
}

// cancelMoveTimer drops the pending timer without arming a new one.
// Caller holds s.mu.
func (e *Engine) cancelMoveTimer(s *Session) {
	s.pendingTimer.cancel()
	s.pendingTimer = nil
}

// expireMove runs on timer expiry. It forfeits the match for the
// player on turn unless a move superseded this timer in the meantime:
// the timer must still be the session's current one AND the clock since
// the last move must genuinely have run out. A fire that fails either
// check is a silent no-op, never an incorrect forfeiture.
func (e *Engine) expireMove(sessionID string, mt *moveTimer) {
	s, ok := e.registry.Get(sessionID)
	if !ok {
		return // already resolved and removed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pendingTimer != mt || s.State != StateInProgress {
		e.logger.Debug("stale move timer fired", zap.String("sessionID", sessionID))
		return
	}
	if time.Since(s.LastMoveAt) < e.moveTimeout {
		// A last-second move landed after this fire was scheduled but
		// before we got the lock; its own timer is already armed.
		e.logger.Debug("move timer fired but clock was reset",
			zap.String("sessionID", sessionID))
		return
	}

	s.pendingTimer = nil
	winnerSymbol := opponentSymbol(s.Turn)
	e.logger.Info("move timeout, forfeiting",
		zap.String("sessionID", sessionID),
		zap.String("idleSymbol", s.Turn),
		zap.Uint("winnerID", s.playerOf(winnerSymbol)))

	e.resolveLocked(context.Background(), s, StateForfeited, winnerSymbol)
}
