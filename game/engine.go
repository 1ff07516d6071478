package game

import (
	"context"
	"time"

	"go.uber.org/zap"

	"xobot/models"
)

// DefaultStake is wagered when a creator doesn't name an amount.
const DefaultStake = 1000

// Engine orchestrates the match lifecycle: session creation, joining,
// move application, outcome resolution, escrow and payout, rating
// updates and render events. It holds no global state; everything it
// touches is injected at construction.
type Engine struct {
	registry    *Registry
	profiles    ProfileStore
	presenter   Presenter
	leaderboard Leaderboard // optional
	logger      *zap.Logger

	moveTimeout  time.Duration
	defaultStake int64
}

// NewEngine wires the engine. Zero moveTimeout and defaultStake fall
// back to DefaultMoveTimeout and DefaultStake.
func NewEngine(registry *Registry, profiles ProfileStore, presenter Presenter, leaderboard Leaderboard, logger *zap.Logger, moveTimeout time.Duration, defaultStake int64) *Engine {
	if moveTimeout <= 0 {
		moveTimeout = DefaultMoveTimeout
	}
	if defaultStake <= 0 {
		defaultStake = DefaultStake
	}
	return &Engine{
		registry:     registry,
		profiles:     profiles,
		presenter:    presenter,
		leaderboard:  leaderboard,
		logger:       logger,
		moveTimeout:  moveTimeout,
		defaultStake: defaultStake,
	}
}

// Create opens a session awaiting an opponent. The creator's balance
// is checked for display purposes only; nothing is escrowed until a
// second player joins.
func (e *Engine) Create(ctx context.Context, creatorID uint, stake int64) (*Session, error) {
	if stake <= 0 {
		stake = e.defaultStake
	}

	creator, err := e.profiles.Load(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if creator.Coins < stake {
		return nil, ErrInsufficientFunds
	}

	now := time.Now()
	s := &Session{
		ID:          NewSessionID(),
		PlayerX:     creatorID,
		PlayerXName: creator.DisplayName(),
		SkinX:       creator.EquippedSymbol,
		Turn:        SymbolX,
		Stake:       stake,
		State:       StateAwaitingOpponent,
		CreatedAt:   now,
	}
	e.logger.Info("session created",
		zap.String("sessionID", s.ID),
		zap.Uint("creatorID", creatorID),
		zap.Int64("stake", stake))

	// Render before publishing: once the session is in the registry a
	// join can land and render, and the awaiting view must never
	// overwrite that newer state.
	s.mu.Lock()
	view := e.buildView(s)
	s.mu.Unlock()
	e.presenter.Render(s.ID, view)

	e.registry.Put(s)
	return s, nil
}

// Join seats the second player. On success both stakes are debited in
// one atomic write, the clock starts and the move timer is armed.
// Only the joiner's funds gate the transition; the creator's balance
// was checked at creation time and is not re-validated here.
func (e *Engine) Join(ctx context.Context, sessionID string, joinerID uint) error {
	s, ok := e.registry.Get(sessionID)
	if !ok {
		return ErrGameUnavailable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State != StateAwaitingOpponent {
		return ErrGameUnavailable
	}
	if joinerID == s.PlayerX {
		return ErrSelfJoin
	}

	joiner, err := e.profiles.Load(ctx, joinerID)
	if err != nil {
		return err
	}
	if joiner.Coins < s.Stake {
		return ErrInsufficientFunds
	}
	creator, err := e.profiles.Load(ctx, s.PlayerX)
	if err != nil {
		return err
	}

	creator.Coins -= s.Stake
	joiner.Coins -= s.Stake
	if err := e.profiles.Save(ctx, creator, joiner); err != nil {
		e.logger.Error("stake escrow failed", zap.String("sessionID", sessionID), zap.Error(err))
		return err
	}

	s.PlayerO = joinerID
	s.PlayerOName = joiner.DisplayName()
	s.SkinO = joiner.EquippedSymbol
	s.State = StateInProgress
	s.LastMoveAt = time.Now()
	e.armMoveTimer(s)

	e.logger.Info("player joined",
		zap.String("sessionID", sessionID),
		zap.Uint("joinerID", joinerID),
		zap.Int64("stake", s.Stake))

	e.presenter.Render(s.ID, e.buildView(s))
	return nil
}

// Move applies one mark. Clicking an occupied cell is a UI-level no-op:
// no error, no turn flip, no timer churn. Everything else either
// rejects without touching state or accepts, evaluates the board before
// the turn flips, and settles if the game just ended.
func (e *Engine) Move(ctx context.Context, sessionID string, playerID uint, cell int) error {
	if cell < 0 || cell >= BoardSize {
		e.logger.Warn("move index out of range",
			zap.String("sessionID", sessionID), zap.Int("cell", cell))
		return ErrInvalidMove
	}

	s, ok := e.registry.Get(sessionID)
	if !ok {
		return ErrGameUnavailable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State != StateInProgress {
		return ErrGameUnavailable
	}
	symbol := s.symbolOf(playerID)
	if symbol == "" {
		return ErrNotAPlayer
	}
	if symbol != s.Turn {
		return ErrNotYourTurn
	}
	if s.Board[cell] != "" {
		return nil // occupied cell, silent no-op
	}

	if err := s.Board.ApplyMove(cell, symbol); err != nil {
		return err
	}
	s.LastMoveAt = time.Now()

	// Evaluate before flipping the turn so a finished board can never
	// accept another move.
	switch s.Board.Evaluate() {
	case ResultXWins:
		e.cancelMoveTimer(s)
		e.resolveLocked(ctx, s, StateWon, SymbolX)
	case ResultOWins:
		e.cancelMoveTimer(s)
		e.resolveLocked(ctx, s, StateWon, SymbolO)
	case ResultDraw:
		e.cancelMoveTimer(s)
		e.resolveLocked(ctx, s, StateDrawn, "")
	default:
		s.Turn = opponentSymbol(symbol)
		e.armMoveTimer(s)
		e.presenter.Render(s.ID, e.buildView(s))
	}
	return nil
}

// View returns the current render model of a live session.
func (e *Engine) View(sessionID string) (models.BoardView, error) {
	s, ok := e.registry.Get(sessionID)
	if !ok {
		return models.BoardView{}, ErrGameUnavailable
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return e.buildView(s), nil
}

// SweepStale discards sessions that never found an opponent within
// maxAge. No coins move: stakes are only debited at join.
func (e *Engine) SweepStale(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, s := range e.registry.Snapshot() {
		s.mu.Lock()
		if s.State == StateAwaitingOpponent && s.CreatedAt.Before(cutoff) {
			if e.registry.CompareAndRemove(s.ID, s) {
				removed++
				e.presenter.Forget(s.ID)
				e.logger.Info("discarded stale session",
					zap.String("sessionID", s.ID),
					zap.Uint("creatorID", s.PlayerX))
			}
		}
		s.mu.Unlock()
	}
	return removed
}

// resolveLocked performs the single terminal transition of a session:
// mark the state, claim the settlement by removing the session from
// the registry, then pay out, bump stats, adjust ratings and render
// the result. Caller holds s.mu. winnerSymbol is "" on a draw.
//
// The registry claim is what makes settlement exactly-once when a move
// and a timer fire race; whoever loses the CompareAndRemove backs off
// without touching balances.
func (e *Engine) resolveLocked(ctx context.Context, s *Session, terminal State, winnerSymbol string) {
	s.State = terminal
	if !e.registry.CompareAndRemove(s.ID, s) {
		e.logger.Debug("settlement raced, session already claimed",
			zap.String("sessionID", s.ID))
		return
	}

	px, errX := e.profiles.Load(ctx, s.PlayerX)
	po, errO := e.profiles.Load(ctx, s.PlayerO)
	if errX != nil || errO != nil {
		// Documented edge case: if either player is no longer
		// resolvable the session is discarded unsettled, stakes and
		// all. Not retried.
		e.logger.Warn("settlement skipped, player unresolvable",
			zap.String("sessionID", s.ID),
			zap.NamedError("playerX", errX),
			zap.NamedError("playerO", errO))
		e.presenter.Forget(s.ID)
		return
	}

	result := models.ResultView{Outcome: string(terminal)}
	switch terminal {
	case StateDrawn:
		px.Coins += s.Stake
		po.Coins += s.Stake
		px.Draws++
		po.Draws++
		deltaX, deltaO := DrawDeltas(px.Rating, po.Rating)
		px.Rating += deltaX
		po.Rating += deltaO
		result.Payout = s.Stake
		result.DeltaX = deltaX
		result.DeltaO = deltaO
	default: // StateWon, StateForfeited
		winner, loser := px, po
		if winnerSymbol == SymbolO {
			winner, loser = po, px
		}
		winner.Coins += 2 * s.Stake
		winner.Wins++
		loser.Losses++
		delta := WinDelta(winner.Rating, loser.Rating)
		winner.Rating += delta
		loser.Rating -= delta
		result.Winner = winner.DisplayName()
		result.Payout = 2 * s.Stake
		result.RatingDelta = delta
		if winnerSymbol == SymbolO {
			result.DeltaX, result.DeltaO = -delta, delta
		} else {
			result.DeltaX, result.DeltaO = delta, -delta
		}
	}

	if err := e.profiles.Save(ctx, px, po); err != nil {
		e.logger.Error("settlement write failed",
			zap.String("sessionID", s.ID), zap.Error(err))
		e.presenter.Forget(s.ID)
		return
	}

	e.logger.Info("session settled",
		zap.String("sessionID", s.ID),
		zap.String("outcome", string(terminal)),
		zap.String("winner", result.Winner),
		zap.Int64("payout", result.Payout))

	if e.leaderboard != nil {
		e.leaderboard.Record(ctx, px)
		e.leaderboard.Record(ctx, po)
	}

	view := e.buildView(s)
	view.Result = &result
	e.presenter.Render(s.ID, view)
}

// buildView snapshots the session for the presentation layer. Caller
// holds s.mu.
func (e *Engine) buildView(s *Session) models.BoardView {
	view := models.BoardView{
		SessionID: s.ID,
		Cells:     [BoardSize]string(s.Board),
		State:     string(s.State),
		Stake:     s.Stake,
		Joinable:  s.State == StateAwaitingOpponent,
		PlayerX:   s.PlayerXName,
		PlayerO:   s.PlayerOName,
		SkinX:     s.SkinX,
		SkinO:     s.SkinO,
	}
	if s.State == StateInProgress {
		view.Turn = s.Turn
	}
	return view
}
