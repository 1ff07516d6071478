package game

import "errors"

// Player-input rejections surfaced back to the user. None of these are
// fatal and none of them mutate session state. Internal race guards
// (a stale timer firing, settlement on an already-removed session) are
// not errors at all; those paths degrade to logged no-ops.
var (
	// ErrInvalidMove covers an out-of-range cell index, which the
	// rendered board can't produce.
	ErrInvalidMove = errors.New("invalid move")

	// ErrGameUnavailable means the session doesn't exist, already has
	// two players, or already finished.
	ErrGameUnavailable = errors.New("game unavailable")

	ErrSelfJoin          = errors.New("cannot join your own game")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNotAPlayer        = errors.New("not a player of this game")
	ErrNotYourTurn       = errors.New("not your turn")

	// ErrPlayerNotFound is returned by a ProfileStore only before the
	// player's first registration.
	ErrPlayerNotFound = errors.New("player not found")
)
