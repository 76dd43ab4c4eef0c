package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/voralis/catalogd/internal/events"
	"github.com/voralis/catalogd/internal/logger"
)

// EventsHandler streams catalog mutation events over websocket.
type EventsHandler struct {
	bus      *events.Bus
	upgrader websocket.Upgrader
}

func NewEventsHandler(bus *events.Bus) *EventsHandler {
	return &EventsHandler{
		bus: bus,
		upgrader: websocket.Upgrader{
			// Same-origin policy is handled by the CORS layer; the stream is
			// read-only so any origin may subscribe.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Stream handles GET /api/events/stream. Each connection gets its own bus
// subscription; the subscription is dropped when the client goes away.
func (h *EventsHandler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	id, ch := h.bus.Subscribe()
	defer h.bus.Unsubscribe(id)

	// Drain client frames so close/ping control messages are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case evt, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(evt); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
