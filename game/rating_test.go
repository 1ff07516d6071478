package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWinDelta(t *testing.T) {
	// Equal ratings: expected score is exactly 0.5, so the transfer is
	// round(32 × 0.5) = 16.
	assert.Equal(t, 16, WinDelta(1200, 1200))

	// Underdog win moves more points than a favorite win.
	assert.Equal(t, 24, WinDelta(1100, 1300))
	assert.Equal(t, 8, WinDelta(1300, 1100))
}

// WinDelta is applied as +delta to the winner and -delta to the loser,
// so a sane transfer always sits inside [0, KWin].
func TestWinDeltaBounds(t *testing.T) {
	pairs := [][2]int{{1200, 1200}, {1500, 900}, {1000, 2200}, {1234, 1233}}
	for _, pair := range pairs {
		delta := WinDelta(pair[0], pair[1])
		assert.GreaterOrEqual(t, delta, 0)
		assert.LessOrEqual(t, delta, KWin)
	}
}

func TestDrawDeltas(t *testing.T) {
	// Equal ratings: a draw is exactly the expected result, no change.
	deltaA, deltaB := DrawDeltas(1200, 1200)
	assert.Equal(t, 0, deltaA)
	assert.Equal(t, 0, deltaB)

	// (1300, 1100): expected_A ≈ 0.7597, so A gives up 6 and B gains 6.
	deltaA, deltaB = DrawDeltas(1300, 1100)
	assert.Equal(t, -6, deltaA)
	assert.Equal(t, 6, deltaB)

	// Deltas are rounded per side independently and are not forced to
	// sum to zero.
	deltaA, deltaB = DrawDeltas(1100, 1300)
	assert.Equal(t, 6, deltaA)
	assert.Equal(t, -6, deltaB)
}

func TestRankName(t *testing.T) {
	assert.Equal(t, "Novice", RankName(1200))
	assert.Equal(t, "Seasoned", RankName(1300))
	assert.Equal(t, "Pro", RankName(1600))
	assert.Equal(t, "Legend", RankName(2000))
	assert.Equal(t, "Novice", RankName(900))
}
