// Package ws pushes board state to watching clients over websockets.
// It is the repository's Presenter implementation: strictly
// best-effort, a failed or absent subscriber never affects game state.
package ws

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"xobot/models"
)

// Hub fans session views out to subscribers keyed by session id.
type Hub struct {
	mu     sync.Mutex
	subs   map[string]map[*websocket.Conn]bool
	latest map[string]models.BoardView
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subs:   make(map[string]map[*websocket.Conn]bool),
		latest: make(map[string]models.BoardView),
		logger: logger,
	}
}

// Render implements game.Presenter. Write errors drop the subscriber
// and nothing propagates back to the caller; the engine must never
// depend on presentation success.
func (h *Hub) Render(sessionID string, view models.BoardView) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if view.Result != nil {
		// Terminal render: remember nothing, the session is gone.
		delete(h.latest, sessionID)
	} else {
		h.latest[sessionID] = view
	}

	for conn := range h.subs[sessionID] {
		if err := conn.WriteJSON(view); err != nil {
			h.logger.Debug("subscriber write failed, dropping",
				zap.String("sessionID", sessionID), zap.Error(err))
			conn.Close()
			delete(h.subs[sessionID], conn)
		}
	}

	if view.Result != nil {
		for conn := range h.subs[sessionID] {
			conn.Close()
		}
		delete(h.subs, sessionID)
	}
}

// Forget implements the discard half of game.Presenter: the session
// ended without a final render (swept while awaiting an opponent, or
// settlement was skipped), so drop its cached view and hang up on its
// watchers.
func (h *Hub) Forget(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.latest, sessionID)
	for conn := range h.subs[sessionID] {
		conn.Close()
	}
	delete(h.subs, sessionID)
}

// subscribe registers a connection and replays the latest view so a
// late watcher sees the current board immediately.
func (h *Hub) subscribe(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[sessionID] == nil {
		h.subs[sessionID] = make(map[*websocket.Conn]bool)
	}
	h.subs[sessionID][conn] = true
	if view, ok := h.latest[sessionID]; ok {
		if err := conn.WriteJSON(view); err != nil {
			conn.Close()
			delete(h.subs[sessionID], conn)
		}
	}
}

func (h *Hub) unsubscribe(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.subs[sessionID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.subs, sessionID)
		}
	}
}
