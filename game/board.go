package game

// BoardSize is the number of cells on the grid, row-major 0-8.
const BoardSize = 9

// Board holds the 9 cells of a match. An empty cell is "".
type Board [BoardSize]string

const (
	SymbolX = "X"
	SymbolO = "O"
)

// Result of evaluating a board.
type Result int

const (
	ResultNone Result = iota
	ResultXWins
	ResultOWins
	ResultDraw
)

// winLines are the 3 rows, 3 columns and 2 diagonals.
var winLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// ApplyMove places symbol at index. The caller is expected to have
// checked turn order; an occupied target cell is its problem to detect
// beforehand (the engine treats it as a silent no-op), so hitting one
// here is a defect and reported as ErrInvalidMove.
func (b *Board) ApplyMove(index int, symbol string) error {
	if index < 0 || index >= BoardSize {
		return ErrInvalidMove
	}
	if b[index] != "" {
		return ErrInvalidMove
	}
	b[index] = symbol
	return nil
}

// Evaluate checks all eight lines for three equal non-empty cells.
// A full board with no winning line is a draw, never ResultNone.
func (b *Board) Evaluate() Result {
	for _, line := range winLines {
		a := b[line[0]]
		if a != "" && a == b[line[1]] && a == b[line[2]] {
			if a == SymbolX {
				return ResultXWins
			}
			return ResultOWins
		}
	}
	for _, cell := range b {
		if cell == "" {
			return ResultNone
		}
	}
	return ResultDraw
}

// Full reports whether every cell is occupied.
func (b *Board) Full() bool {
	for _, cell := range b {
		if cell == "" {
			return false
		}
	}
	return true
}
