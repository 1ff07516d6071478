package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"xobot/models"
)

func TestRenderCachesLatestUntilTerminal(t *testing.T) {
	hub := NewHub(zap.NewNop())
	view := models.BoardView{SessionID: "abc12345", State: "awaiting_opponent", Joinable: true}

	hub.Render(view.SessionID, view)
	cached, ok := hub.latest[view.SessionID]
	require.True(t, ok)
	assert.Equal(t, view, cached)

	view.Result = &models.ResultView{Outcome: "won"}
	hub.Render(view.SessionID, view)
	_, ok = hub.latest[view.SessionID]
	assert.False(t, ok)
}

func TestForgetDropsRetainedSession(t *testing.T) {
	hub := NewHub(zap.NewNop())
	view := models.BoardView{SessionID: "abc12345", State: "awaiting_opponent", Joinable: true}
	hub.Render(view.SessionID, view)

	// A session discarded without a result render (a stale sweep, a
	// skipped settlement) must not keep its view cached forever.
	hub.Forget(view.SessionID)
	_, ok := hub.latest[view.SessionID]
	assert.False(t, ok)
	_, ok = hub.subs[view.SessionID]
	assert.False(t, ok)

	// Forgetting an unknown session is harmless.
	hub.Forget("missing")
}
