package ws

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	pingPeriod   = 10 * time.Second
	readDeadline = 60 * time.Second
)

// Handle upgrades a watcher connection for one session and keeps it
// alive with pings until the client goes away or the session ends.
func (h *Hub) Handle(c *gin.Context) {
	sessionID := c.Param("id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed",
			zap.String("sessionID", sessionID), zap.Error(err))
		return
	}

	h.subscribe(sessionID, conn)
	h.logger.Info("watcher connected", zap.String("sessionID", sessionID))

	go h.keepAlive(sessionID, conn)
}

func (h *Hub) keepAlive(sessionID string, conn *websocket.Conn) {
	defer func() {
		h.unsubscribe(sessionID, conn)
		conn.Close()
		h.logger.Info("watcher disconnected", zap.String("sessionID", sessionID))
	}()

	conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	// Drain incoming frames; watchers don't send anything meaningful.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for range ticker.C {
		// WriteControl is safe alongside the hub's data writes.
		err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(pingPeriod))
		if err != nil {
			return
		}
	}
}
