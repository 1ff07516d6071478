package game

import "math"

// Rating adjustment factors. Wins move ratings twice as hard as draws.
const (
	KWin  = 32
	KDraw = 24
)

// expectedScore is the classic Elo expectation of player a against b.
func expectedScore(ratingA, ratingB int) float64 {
	return 1 / (1 + math.Pow(10, float64(ratingB-ratingA)/400))
}

// WinDelta returns the rating points transferred from loser to winner.
// The exchange is zero-sum: winner gains delta, loser loses delta.
// Rounding is half away from zero on both this and the draw path.
func WinDelta(winnerRating, loserRating int) int {
	expected := expectedScore(winnerRating, loserRating)
	return int(math.Round(KWin * (1 - expected)))
}

// DrawDeltas returns each side's own rating adjustment for a draw.
// Deltas are rounded independently per side and are not forced to sum
// to zero; that asymmetry is inherent to the formula and kept as is.
func DrawDeltas(ratingA, ratingB int) (deltaA, deltaB int) {
	deltaA = int(math.Round(KDraw * (0.5 - expectedScore(ratingA, ratingB))))
	deltaB = int(math.Round(KDraw * (0.5 - expectedScore(ratingB, ratingA))))
	return deltaA, deltaB
}

// RankName maps a rating to its display rank.
func RankName(rating int) string {
	switch {
	case rating >= 2000:
		return "Legend"
	case rating >= 1600:
		return "Pro"
	case rating >= 1300:
		return "Seasoned"
	default:
		return "Novice"
	}
}
