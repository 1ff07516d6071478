package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardApplyMove(t *testing.T) {
	var b Board

	require.NoError(t, b.ApplyMove(0, SymbolX))
	assert.Equal(t, SymbolX, b[0])

	assert.ErrorIs(t, b.ApplyMove(0, SymbolO), ErrInvalidMove)
	assert.ErrorIs(t, b.ApplyMove(-1, SymbolO), ErrInvalidMove)
	assert.ErrorIs(t, b.ApplyMove(9, SymbolO), ErrInvalidMove)
	assert.Equal(t, SymbolX, b[0])
}

func TestBoardEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		want  Result
	}{
		{"empty", Board{}, ResultNone},
		{"top row X", Board{"X", "X", "X", "O", "O", "", "", "", ""}, ResultXWins},
		{"middle row O", Board{"X", "", "X", "O", "O", "O", "X", "", ""}, ResultOWins},
		{"left column X", Board{"X", "O", "", "X", "O", "", "X", "", ""}, ResultXWins},
		{"main diagonal X", Board{"X", "O", "", "O", "X", "", "", "", "X"}, ResultXWins},
		{"anti diagonal O", Board{"X", "X", "O", "X", "O", "", "O", "", ""}, ResultOWins},
		{"in progress", Board{"X", "O", "X", "", "", "", "", "", ""}, ResultNone},
		{
			// A full board without a line is always a draw, never none.
			"full draw",
			Board{"X", "O", "X", "O", "O", "X", "X", "X", "O"},
			ResultDraw,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.board.Evaluate())
		})
	}
}

func TestBoardFull(t *testing.T) {
	assert.False(t, (&Board{}).Full())
	full := Board{"X", "O", "X", "O", "O", "X", "X", "X", "O"}
	assert.True(t, full.Full())
}
