package game

import (
	"context"

	"xobot/models"
)

// Profile is the engine's snapshot of one player. It is read at join
// and move time and written back, mutated, as part of settlement; the
// engine never owns the storage behind it.
type Profile struct {
	PlayerID uint
	Username string
	Name     string
	Coins    int64
	Wins     int
	Losses   int
	Draws    int
	Rating   int

	EquippedSymbol    string
	EquippedEmojiPack string
}

// DisplayName prefers the human name over the handle.
func (p *Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Username
}

// ProfileStore is the persistent player record the engine settles
// against. Load returns ErrPlayerNotFound only before the player's
// first EnsureRegistered. Save overwrites whole snapshots; passing
// both players of a settlement in one call must apply atomically, so a
// crash can never leave a partial payout behind.
type ProfileStore interface {
	EnsureRegistered(ctx context.Context, playerID uint, username, name string) error
	Load(ctx context.Context, playerID uint) (*Profile, error)
	Save(ctx context.Context, snapshots ...*Profile) error
}

// Presenter renders session state back to wherever the match is being
// watched. Presentation is strictly best-effort: implementations never
// return errors and the engine never depends on a render for
// correctness. Forget releases whatever the implementation retains for
// a session that is discarded without a final render; every session
// ends in exactly one of Render-with-Result or Forget.
type Presenter interface {
	Render(sessionID string, view models.BoardView)
	Forget(sessionID string)
}

// Leaderboard receives updated player standings after settlement.
// Like the Presenter it is best-effort only.
type Leaderboard interface {
	Record(ctx context.Context, p *Profile)
}
