package models

// BoardView is what the presentation layer receives after every state
// change of a session. Cells are row-major, index 0-8; before a second
// player joins, Joinable is the only offered affordance, afterwards the
// cell grid itself is the interactive surface.
type BoardView struct {
	SessionID string    `json:"sessionID"`
	Cells     [9]string `json:"cells"`
	State     string    `json:"state"`
	Turn      string    `json:"turn,omitempty"`
	Stake     int64     `json:"stake"`
	Joinable  bool      `json:"joinable"`
	PlayerX   string    `json:"playerX,omitempty"`
	PlayerO   string    `json:"playerO,omitempty"`

	// Equipped symbol-skin item ids; the renderer maps them to glyphs.
	SkinX string `json:"skinX,omitempty"`
	SkinO string `json:"skinO,omitempty"`

	Result *ResultView `json:"result,omitempty"`
}

// ResultView is attached to the final render of a session.
type ResultView struct {
	Outcome     string `json:"outcome"` // "won", "drawn" or "forfeited"
	Winner      string `json:"winner,omitempty"`
	Payout      int64  `json:"payout"`
	RatingDelta int    `json:"ratingDelta,omitempty"` // winner's gain on a win
	DeltaX      int    `json:"deltaX"`
	DeltaO      int    `json:"deltaO"`
}

// LeaderboardEntry is one row of a top listing.
type LeaderboardEntry struct {
	PlayerID uint    `json:"playerID"`
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
}
