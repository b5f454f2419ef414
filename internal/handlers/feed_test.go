package handlers_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandeptwidyaop/agents-rest/internal/events"
	"github.com/pandeptwidyaop/agents-rest/internal/handlers"
)

func TestFeedHandler_StreamsEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := events.NewHub(8)

	r := gin.New()
	r.GET("/ws", handlers.NewFeedHandler(hub).HandleWebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish(events.Event{Type: "moved", Kind: events.KindTarget, ID: 3, X: 4, Y: 5, Status: "Alive"})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got events.Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "moved", got.Type)
	assert.Equal(t, events.KindTarget, got.Kind)
	assert.Equal(t, int64(3), got.ID)
	assert.Equal(t, 4, got.X)
	assert.Equal(t, 5, got.Y)
	assert.False(t, got.At.IsZero())

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}
