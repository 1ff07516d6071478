package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"xobot/models"
)

// fakeProfiles is an in-memory ProfileStore. Load hands out copies so
// the engine's in-flight mutations only land through Save, which
// applies all snapshots or none, mirroring the real store's
// transactional write.
type fakeProfiles struct {
	mu      sync.Mutex
	players map[uint]*Profile
}

func newFakeProfiles(players ...*Profile) *fakeProfiles {
	f := &fakeProfiles{players: make(map[uint]*Profile)}
	for _, p := range players {
		f.players[p.PlayerID] = p
	}
	return f
}

func (f *fakeProfiles) EnsureRegistered(ctx context.Context, playerID uint, username, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.players[playerID]; !ok {
		f.players[playerID] = &Profile{
			PlayerID: playerID, Username: username, Name: name,
			Coins: 5000, Rating: 1200,
		}
	}
	return nil
}

func (f *fakeProfiles) Load(ctx context.Context, playerID uint) (*Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.players[playerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	snapshot := *p
	return &snapshot, nil
}

func (f *fakeProfiles) Save(ctx context.Context, snapshots ...*Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, snapshot := range snapshots {
		stored := *snapshot
		f.players[snapshot.PlayerID] = &stored
	}
	return nil
}

func (f *fakeProfiles) get(playerID uint) Profile {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.players[playerID]
}

func (f *fakeProfiles) drop(playerID uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.players, playerID)
}

// totalCoins is the stake-conservation probe: nothing mints or burns
// coins, there is no rake.
func (f *fakeProfiles) totalCoins() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total int64
	for _, p := range f.players {
		total += p.Coins
	}
	return total
}

type fakePresenter struct {
	mu        sync.Mutex
	views     []models.BoardView
	forgotten []string
}

func (p *fakePresenter) Render(sessionID string, view models.BoardView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.views = append(p.views, view)
}

func (p *fakePresenter) Forget(sessionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.forgotten = append(p.forgotten, sessionID)
}

func (p *fakePresenter) forgot(sessionID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, id := range p.forgotten {
		if id == sessionID {
			return true
		}
	}
	return false
}

func (p *fakePresenter) last() models.BoardView {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.views) == 0 {
		return models.BoardView{}
	}
	return p.views[len(p.views)-1]
}

type fakeLeaderboard struct {
	mu      sync.Mutex
	records []uint
}

func (l *fakeLeaderboard) Record(ctx context.Context, p *Profile) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, p.PlayerID)
}

const (
	alice = uint(1)
	bob   = uint(2)
)

func newTestEngine(t *testing.T, moveTimeout time.Duration) (*Engine, *Registry, *fakeProfiles, *fakePresenter) {
	t.Helper()
	profiles := newFakeProfiles(
		&Profile{PlayerID: alice, Username: "alice", Coins: 5000, Rating: 1200},
		&Profile{PlayerID: bob, Username: "bob", Coins: 5000, Rating: 1200},
	)
	registry := NewRegistry()
	presenter := &fakePresenter{}
	engine := NewEngine(registry, profiles, presenter, &fakeLeaderboard{}, zap.NewNop(), moveTimeout, 0)
	return engine, registry, profiles, presenter
}

func startMatch(t *testing.T, engine *Engine, stake int64) *Session {
	t.Helper()
	ctx := context.Background()
	session, err := engine.Create(ctx, alice, stake)
	require.NoError(t, err)
	require.NoError(t, engine.Join(ctx, session.ID, bob))
	return session
}

func TestCreateChecksFundsButEscrowsNothing(t *testing.T) {
	engine, registry, profiles, _ := newTestEngine(t, time.Minute)
	ctx := context.Background()

	_, err := engine.Create(ctx, alice, 6000)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, 0, registry.Len())

	session, err := engine.Create(ctx, alice, 1000)
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingOpponent, session.State)
	assert.Equal(t, SymbolX, session.Turn)
	// Balance untouched until someone joins.
	assert.Equal(t, int64(5000), profiles.get(alice).Coins)
}

func TestCreateAppliesDefaultStake(t *testing.T) {
	engine, _, _, _ := newTestEngine(t, time.Minute)
	session, err := engine.Create(context.Background(), alice, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(DefaultStake), session.Stake)
}

func TestJoinDebitsBothAndArmsTimer(t *testing.T) {
	engine, _, profiles, presenter := newTestEngine(t, time.Minute)
	session := startMatch(t, engine, 1000)

	assert.Equal(t, StateInProgress, session.State)
	assert.Equal(t, int64(4000), profiles.get(alice).Coins)
	assert.Equal(t, int64(4000), profiles.get(bob).Coins)
	assert.NotNil(t, session.pendingTimer)
	assert.False(t, session.LastMoveAt.IsZero())

	view := presenter.last()
	assert.False(t, view.Joinable)
	assert.Equal(t, SymbolX, view.Turn)
}

func TestJoinRejections(t *testing.T) {
	engine, _, profiles, _ := newTestEngine(t, time.Minute)
	ctx := context.Background()

	assert.ErrorIs(t, engine.Join(ctx, "missing", bob), ErrGameUnavailable)

	session, err := engine.Create(ctx, alice, 1000)
	require.NoError(t, err)

	assert.ErrorIs(t, engine.Join(ctx, session.ID, alice), ErrSelfJoin)

	poor := &Profile{PlayerID: 3, Username: "carol", Coins: 500, Rating: 1200}
	require.NoError(t, profiles.Save(ctx, poor))
	assert.ErrorIs(t, engine.Join(ctx, session.ID, 3), ErrInsufficientFunds)

	require.NoError(t, engine.Join(ctx, session.ID, bob))
	assert.ErrorIs(t, engine.Join(ctx, session.ID, 3), ErrGameUnavailable)
}

func TestTurnAlternatesStrictly(t *testing.T) {
	engine, _, _, _ := newTestEngine(t, time.Minute)
	session := startMatch(t, engine, 1000)
	ctx := context.Background()

	// X0 O1 X2 O3 X5 O4 X6 O8 plays out without a winner; turn must
	// flip after every accepted move.
	moves := []struct {
		player uint
		cell   int
	}{
		{alice, 0}, {bob, 1}, {alice, 2}, {bob, 3}, {alice, 5}, {bob, 4}, {alice, 6}, {bob, 8},
	}
	for i, move := range moves {
		require.NoError(t, engine.Move(ctx, session.ID, move.player, move.cell), "move %d", i)
		wantTurn := SymbolX
		if (i+1)%2 == 1 {
			wantTurn = SymbolO
		}
		assert.Equal(t, wantTurn, session.Turn, "after move %d", i)
	}
}

func TestMoveRejections(t *testing.T) {
	engine, _, _, _ := newTestEngine(t, time.Minute)
	session := startMatch(t, engine, 1000)
	ctx := context.Background()

	assert.ErrorIs(t, engine.Move(ctx, session.ID, 99, 0), ErrNotAPlayer)
	assert.ErrorIs(t, engine.Move(ctx, session.ID, bob, 0), ErrNotYourTurn)
	assert.ErrorIs(t, engine.Move(ctx, session.ID, alice, 9), ErrInvalidMove)
	assert.ErrorIs(t, engine.Move(ctx, session.ID, alice, -1), ErrInvalidMove)
	assert.ErrorIs(t, engine.Move(ctx, "missing", alice, 0), ErrGameUnavailable)
}

func TestOccupiedCellIsSilentNoOp(t *testing.T) {
	engine, _, _, _ := newTestEngine(t, time.Minute)
	session := startMatch(t, engine, 1000)
	ctx := context.Background()

	require.NoError(t, engine.Move(ctx, session.ID, alice, 4))

	boardBefore := session.Board
	turnBefore := session.Turn
	timerBefore := session.pendingTimer
	lastMoveBefore := session.LastMoveAt

	// Clicking the occupied cell changes nothing: no error, no turn
	// flip, no timer churn.
	require.NoError(t, engine.Move(ctx, session.ID, bob, 4))
	assert.Equal(t, boardBefore, session.Board)
	assert.Equal(t, turnBefore, session.Turn)
	assert.Same(t, timerBefore, session.pendingTimer)
	assert.Equal(t, lastMoveBefore, session.LastMoveAt)
}

func TestWinSettlement(t *testing.T) {
	engine, registry, profiles, presenter := newTestEngine(t, time.Minute)
	session := startMatch(t, engine, 1000)
	ctx := context.Background()

	totalBefore := profiles.totalCoins()

	// X takes the top row: X0 O3 X1 O4 X2.
	for _, move := range []struct {
		player uint
		cell   int
	}{
		{alice, 0}, {bob, 3}, {alice, 1}, {bob, 4}, {alice, 2},
	} {
		require.NoError(t, engine.Move(ctx, session.ID, move.player, move.cell))
	}

	winner := profiles.get(alice)
	loser := profiles.get(bob)
	assert.Equal(t, int64(6000), winner.Coins)
	assert.Equal(t, int64(4000), loser.Coins)
	assert.Equal(t, 1, winner.Wins)
	assert.Equal(t, 1, loser.Losses)
	assert.Equal(t, 1216, winner.Rating)
	assert.Equal(t, 1184, loser.Rating)
	assert.Equal(t, totalBefore, profiles.totalCoins())

	// Terminal state removed the session; the board accepts nothing
	// further.
	assert.Equal(t, 0, registry.Len())
	assert.ErrorIs(t, engine.Move(ctx, session.ID, bob, 5), ErrGameUnavailable)
	assert.Nil(t, session.pendingTimer)

	result := presenter.last().Result
	require.NotNil(t, result)
	assert.Equal(t, string(StateWon), result.Outcome)
	assert.Equal(t, int64(2000), result.Payout)
	assert.Equal(t, 16, result.RatingDelta)
}

func TestDrawSettlement(t *testing.T) {
	engine, registry, profiles, presenter := newTestEngine(t, time.Minute)
	session := startMatch(t, engine, 1000)
	ctx := context.Background()

	// X0 O1 X2 O3 X5 O4 X6 O8 X7 fills the board with no line.
	for _, move := range []struct {
		player uint
		cell   int
	}{
		{alice, 0}, {bob, 1}, {alice, 2}, {bob, 3}, {alice, 5}, {bob, 4}, {alice, 6}, {bob, 8}, {alice, 7},
	} {
		require.NoError(t, engine.Move(ctx, session.ID, move.player, move.cell))
	}

	// Both stakes refunded, draw counters bumped, equal ratings
	// unchanged.
	a := profiles.get(alice)
	b := profiles.get(bob)
	assert.Equal(t, int64(5000), a.Coins)
	assert.Equal(t, int64(5000), b.Coins)
	assert.Equal(t, 1, a.Draws)
	assert.Equal(t, 1, b.Draws)
	assert.Equal(t, 1200, a.Rating)
	assert.Equal(t, 1200, b.Rating)
	assert.Equal(t, 0, registry.Len())

	result := presenter.last().Result
	require.NotNil(t, result)
	assert.Equal(t, string(StateDrawn), result.Outcome)
	assert.Equal(t, int64(1000), result.Payout)
}

func TestTimeoutForfeitsIdlePlayer(t *testing.T) {
	engine, registry, profiles, presenter := newTestEngine(t, 30*time.Millisecond)
	startMatch(t, engine, 1000)

	// Turn is X and X never moves; the waiting player wins the pot.
	require.Eventually(t, func() bool {
		return registry.Len() == 0
	}, time.Second, 5*time.Millisecond)

	winner := profiles.get(bob)
	loser := profiles.get(alice)
	assert.Equal(t, int64(6000), winner.Coins)
	assert.Equal(t, int64(4000), loser.Coins)
	assert.Equal(t, 1, winner.Wins)
	assert.Equal(t, 1, loser.Losses)
	assert.Equal(t, 1216, winner.Rating)
	assert.Equal(t, 1184, loser.Rating)

	result := presenter.last().Result
	require.NotNil(t, result)
	assert.Equal(t, string(StateForfeited), result.Outcome)
}

func TestStaleTimerFireIsNoOp(t *testing.T) {
	engine, _, _, _ := newTestEngine(t, time.Minute)
	session := startMatch(t, engine, 1000)

	// A timer that is no longer the session's pending one must not
	// forfeit anything, no matter what the clock says.
	engine.expireMove(session.ID, &moveTimer{})
	assert.Equal(t, StateInProgress, session.State)
}

func TestTimerFireAfterLastSecondMoveIsNoOp(t *testing.T) {
	engine, _, _, _ := newTestEngine(t, time.Minute)
	session := startMatch(t, engine, 1000)

	// Simulate the race where the fire was already scheduled when a
	// move landed: identity matches but the clock was reset, so the
	// staleness re-check bails out.
	session.mu.Lock()
	current := session.pendingTimer
	session.LastMoveAt = time.Now()
	session.mu.Unlock()

	engine.expireMove(session.ID, current)
	assert.Equal(t, StateInProgress, session.State)
}

func TestSettlementIsIdempotent(t *testing.T) {
	engine, _, profiles, _ := newTestEngine(t, time.Minute)
	session := startMatch(t, engine, 1000)
	ctx := context.Background()

	session.mu.Lock()
	raced := session.pendingTimer
	session.mu.Unlock()

	// X wins on the board...
	for _, move := range []struct {
		player uint
		cell   int
	}{
		{alice, 0}, {bob, 3}, {alice, 1}, {bob, 4}, {alice, 2},
	} {
		require.NoError(t, engine.Move(ctx, session.ID, move.player, move.cell))
	}
	require.Equal(t, int64(6000), profiles.get(alice).Coins)

	// ...and the timer armed before the final move fires anyway. The
	// session is gone from the registry, so the second settlement is a
	// no-op: no double payout.
	session.mu.Lock()
	session.LastMoveAt = time.Now().Add(-time.Hour)
	session.mu.Unlock()
	engine.expireMove(session.ID, raced)

	assert.Equal(t, int64(6000), profiles.get(alice).Coins)
	assert.Equal(t, int64(4000), profiles.get(bob).Coins)
	assert.Equal(t, 1, profiles.get(alice).Wins)
	assert.Equal(t, 1, profiles.get(bob).Losses)
}

func TestForfeitWithUnresolvablePlayerSkipsSettlement(t *testing.T) {
	engine, registry, profiles, presenter := newTestEngine(t, time.Minute)
	session := startMatch(t, engine, 1000)

	profiles.drop(alice)

	session.mu.Lock()
	current := session.pendingTimer
	session.LastMoveAt = time.Now().Add(-2 * time.Minute)
	session.mu.Unlock()
	engine.expireMove(session.ID, current)

	// Session discarded, no payout to anyone, stakes forfeited with it.
	// The presenter is told to release it since no result render came.
	assert.Equal(t, 0, registry.Len())
	remaining := profiles.get(bob)
	assert.Equal(t, int64(4000), remaining.Coins)
	assert.Equal(t, 0, remaining.Wins)
	assert.True(t, presenter.forgot(session.ID))
}

func TestViewAndAffordances(t *testing.T) {
	engine, _, _, _ := newTestEngine(t, time.Minute)
	ctx := context.Background()

	session, err := engine.Create(ctx, alice, 1000)
	require.NoError(t, err)

	view, err := engine.View(session.ID)
	require.NoError(t, err)
	assert.True(t, view.Joinable)
	assert.Empty(t, view.Turn)
	assert.Equal(t, int64(1000), view.Stake)

	require.NoError(t, engine.Join(ctx, session.ID, bob))
	require.NoError(t, engine.Move(ctx, session.ID, alice, 4))

	view, err = engine.View(session.ID)
	require.NoError(t, err)
	assert.False(t, view.Joinable)
	assert.Equal(t, SymbolO, view.Turn)
	assert.Equal(t, SymbolX, view.Cells[4])

	_, err = engine.View("missing")
	assert.ErrorIs(t, err, ErrGameUnavailable)
}

func TestSweepStale(t *testing.T) {
	engine, registry, _, presenter := newTestEngine(t, time.Minute)
	ctx := context.Background()

	stale, err := engine.Create(ctx, alice, 1000)
	require.NoError(t, err)
	stale.mu.Lock()
	stale.CreatedAt = time.Now().Add(-25 * time.Hour)
	stale.mu.Unlock()

	fresh, err := engine.Create(ctx, alice, 1000)
	require.NoError(t, err)

	active := startMatch(t, engine, 1000)
	active.mu.Lock()
	active.CreatedAt = time.Now().Add(-25 * time.Hour)
	active.mu.Unlock()

	removed := engine.SweepStale(24 * time.Hour)
	assert.Equal(t, 1, removed)

	_, ok := registry.Get(stale.ID)
	assert.False(t, ok)
	_, ok = registry.Get(fresh.ID)
	assert.True(t, ok)
	_, ok = registry.Get(active.ID)
	assert.True(t, ok)

	// The swept session never gets a result render, so the presenter
	// must be told to drop whatever it retained for it.
	assert.True(t, presenter.forgot(stale.ID))
	assert.False(t, presenter.forgot(fresh.ID))
	assert.False(t, presenter.forgot(active.ID))
}

type presenterFunc func(sessionID string, view models.BoardView)

func (f presenterFunc) Render(sessionID string, view models.BoardView) { f(sessionID, view) }
func (f presenterFunc) Forget(string)                                  {}

func TestCreatePublishesAfterFirstRender(t *testing.T) {
	registry := NewRegistry()
	profiles := newFakeProfiles(
		&Profile{PlayerID: alice, Username: "alice", Coins: 5000, Rating: 1200},
	)

	var rendered, visibleAtRender bool
	presenter := presenterFunc(func(sessionID string, view models.BoardView) {
		rendered = true
		_, visibleAtRender = registry.Get(sessionID)
	})
	engine := NewEngine(registry, profiles, presenter, nil, zap.NewNop(), time.Minute, 0)

	session, err := engine.Create(context.Background(), alice, 1000)
	require.NoError(t, err)

	// The awaiting view goes out before the session becomes joinable,
	// so a racing join's render can never be overwritten by it.
	assert.True(t, rendered)
	assert.False(t, visibleAtRender)
	_, ok := registry.Get(session.ID)
	assert.True(t, ok)
}
