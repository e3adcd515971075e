package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/TwisterMc/JobTwister/internal/events"
)

// EventsHandler pushes store change events to the UI over a websocket so
// the list and dashboard refresh without polling.
type EventsHandler struct {
	hub      *events.Hub
	upgrader websocket.Upgrader
}

func NewEventsHandler(hub *events.Hub) *EventsHandler {
	return &EventsHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			// local UI only; the server binds to loopback
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeText(b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteMessage(websocket.TextMessage, b)
}

func (h *EventsHandler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	wc := &wsConn{c: conn}

	sub := h.hub.Subscribe()
	defer h.hub.Unsubscribe(sub)

	// reader exists only to notice the peer going away
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer conn.Close()
	for {
		select {
		case evt, ok := <-sub:
			if !ok {
				return
			}
			b, err := json.Marshal(evt)
			if err != nil {
				continue
			}
			if err := wc.writeText(b); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
