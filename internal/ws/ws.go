// Package ws upgrades Fiber requests to WebSocket connections for live
// audit-event streaming.
package ws

import (
	"encoding/json"

	"githook/internal/models"

	"github.com/fasthttp/websocket"
	"github.com/valyala/fasthttp"
)

// Upgrader upgrades HTTP connections to WebSocket connections.
var Upgrader = websocket.FastHTTPUpgrader{
	CheckOrigin: func(ctx *fasthttp.RequestCtx) bool {
		return true
	},
}

// EventWriter sends audit events and status frames to one client.
type EventWriter struct {
	conn *websocket.Conn
}

func (w *EventWriter) WriteEvent(evt models.Event) error {
	payload, err := json.Marshal(map[string]any{
		"type":  "event",
		"event": evt,
	})
	if err != nil {
		return err
	}
	return w.conn.WriteMessage(websocket.TextMessage, payload)
}

func (w *EventWriter) WriteStatus(status string, message string) error {
	payload, err := json.Marshal(map[string]string{
		"type":    status,
		"message": message,
	})
	if err != nil {
		return err
	}
	return w.conn.WriteMessage(websocket.TextMessage, payload)
}
