package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/pandeptwidyaop/agents-rest/internal/events"
)

const (
	feedWriteWait  = 10 * time.Second
	feedPongWait   = 60 * time.Second
	feedPingPeriod = (feedPongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// FeedHandler streams entity changes to websocket clients.
type FeedHandler struct {
	hub *events.Hub
}

// NewFeedHandler creates a new FeedHandler instance.
func NewFeedHandler(hub *events.Hub) *FeedHandler {
	return &FeedHandler{hub: hub}
}

// HandleWebSocket upgrades the connection and writes every published event
// as a JSON text frame until the client goes away.
// GET /ws
func (h *FeedHandler) HandleWebSocket(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer func() { _ = ws.Close() }()

	ch := h.hub.Subscribe()
	defer h.hub.Unsubscribe(ch)

	// Clients only send control frames; the read loop handles pongs and
	// notices when the peer closes.
	done := make(chan struct{})
	go func() {
		defer close(done)
		ws.SetReadLimit(512)
		_ = ws.SetReadDeadline(time.Now().Add(feedPongWait))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(feedPongWait))
		})
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Debug().Err(err).Msg("feed client read error")
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(feedPingPeriod)
	defer ticker.Stop()

	log.Debug().Str("ip", c.ClientIP()).Msg("feed client connected")
	for {
		select {
		case <-done:
			log.Debug().Str("ip", c.ClientIP()).Msg("feed client disconnected")
			return
		case <-c.Request.Context().Done():
			return
		case e, ok := <-ch:
			if !ok {
				return
			}
			_ = ws.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := ws.WriteJSON(e); err != nil {
				log.Debug().Err(err).Msg("feed write failed")
				return
			}
		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
