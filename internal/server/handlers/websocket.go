// internal/server/handlers/websocket.go

package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"fixmate/internal/service/engine"
)

// WebSocketClient represents a connected dashboard client
type WebSocketClient struct {
	conn   *websocket.Conn
	send   chan []byte
	engine *engine.Engine
	subID  string
}

// WebSocketConfig contains configuration for WebSocket connections
type WebSocketConfig struct {
	// Time allowed to write a message to the peer
	WriteWait time.Duration

	// Time allowed to read the next pong message from the peer
	PongWait time.Duration

	// Send pings to peer with this period
	PingPeriod time.Duration

	// Maximum message size allowed from peer
	MaxMessageSize int64
}

// DefaultWebSocketConfig returns the default WebSocket configuration
func DefaultWebSocketConfig() WebSocketConfig {
	return WebSocketConfig{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     (60 * time.Second * 9) / 10,
		MaxMessageSize: 64 * 1024,
	}
}

// WebSocketUpgrader is used to upgrade HTTP connections to WebSocket
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, this should be more restrictive
		return true
	},
}

// DashboardWebSocketHandler streams view snapshots and notification events
// to dashboard clients. Clients are read-only: every mutation goes through
// the REST surface, so the read pump exists just to service pongs and
// detect disconnects.
func DashboardWebSocketHandler(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("Failed to upgrade to WebSocket: %v", err)
			return
		}

		subID, events := eng.Subscribe()
		client := &WebSocketClient{
			conn:   conn,
			send:   make(chan []byte, 256),
			engine: eng,
			subID:  subID,
		}

		go client.writePump()
		go client.readPump()
		go client.relayEvents(events)

		// Current view first, so a reconnecting client never renders stale
		// state while waiting for the next change.
		view := eng.View()
		if snapshot, err := json.Marshal(engine.Event{Type: engine.EventView, View: &view}); err == nil {
			client.send <- snapshot
		}
		for _, n := range eng.Notifications() {
			notification := n
			if msg, err := json.Marshal(engine.Event{Type: engine.EventNotification, Notification: &notification}); err == nil {
				client.send <- msg
			}
		}

		log.Printf("New dashboard WebSocket connection from %s", r.RemoteAddr)
	}
}

// relayEvents forwards engine events onto the client's send channel
func (c *WebSocketClient) relayEvents(events <-chan engine.Event) {
	for ev := range events {
		payload, err := json.Marshal(ev)
		if err != nil {
			log.Printf("Failed to marshal event: %v", err)
			continue
		}
		select {
		case c.send <- payload:
		default:
			// Slow client; drop rather than block the relay.
		}
	}
}

// readPump services pongs and detects disconnects
func (c *WebSocketClient) readPump() {
	config := DefaultWebSocketConfig()

	defer func() {
		c.closeConnection()
	}()

	c.conn.SetReadLimit(config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pumps queued messages to the WebSocket connection
func (c *WebSocketClient) writePump() {
	config := DefaultWebSocketConfig()
	ticker := time.NewTicker(config.PingPeriod)
	defer func() {
		ticker.Stop()
		c.closeConnection()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// closeConnection unsubscribes from the engine and closes the socket
func (c *WebSocketClient) closeConnection() {
	c.engine.Unsubscribe(c.subID)
	c.conn.Close()
}
