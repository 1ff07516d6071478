package game

import (
	"sync"
	"time"
)

// State of a session's lifecycle. The three terminal states all behave
// the same way: settle once, then the session leaves the registry.
type State string

const (
	StateAwaitingOpponent State = "awaiting_opponent"
	StateInProgress       State = "in_progress"
	StateWon              State = "won"
	StateDrawn            State = "drawn"
	StateForfeited        State = "forfeited"
)

// Terminal reports whether s ends the session.
func (s State) Terminal() bool {
	return s == StateWon || s == StateDrawn || s == StateForfeited
}

// Session is one match. All mutation happens under mu; the engine locks
// a session for the whole handling of a join, move or timer fire, which
// gives the per-session serialization the state machine relies on.
type Session struct {
	mu sync.Mutex

	ID          string
	PlayerX     uint
	PlayerO     uint // zero until someone joins
	PlayerXName string
	PlayerOName string
	// Equipped symbol-skin item ids, captured at create/join time so
	// the renderer can style each side's marks.
	SkinX string
	SkinO string
	Board Board
	Turn  string // SymbolX or SymbolO
	Stake int64
	State State

	CreatedAt  time.Time
	LastMoveAt time.Time

	// pendingTimer is the currently armed move timeout, nil when none.
	// At most one timer is alive per session; arming a replacement
	// cancels the previous one first.
	pendingTimer *moveTimer
}

// symbolOf returns the player's symbol, or "" if they are not part of
// this session.
func (s *Session) symbolOf(playerID uint) string {
	switch playerID {
	case s.PlayerX:
		return SymbolX
	case s.PlayerO:
		if s.PlayerO != 0 {
			return SymbolO
		}
	}
	return ""
}

// playerOf is the inverse of symbolOf.
func (s *Session) playerOf(symbol string) uint {
	if symbol == SymbolX {
		return s.PlayerX
	}
	return s.PlayerO
}

// opponentSymbol flips X and O.
func opponentSymbol(symbol string) string {
	if symbol == SymbolX {
		return SymbolO
	}
	return SymbolX
}
