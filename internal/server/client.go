package server

import (
	"time"

	"github.com/gorilla/websocket"

	"webrogue/internal/logging"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20
	sendQueueSize  = 32
)

// client is one WebSocket connection. The actor goroutine owns playerID and
// cursor; the pumps only touch ws and send.
type client struct {
	connID   string
	playerID string
	ws       *websocket.Conn
	send     chan []byte

	// cursor is the absolute event log position this connection has been
	// sent up to. Actor-owned.
	cursor int
}

func newClient(ws *websocket.Conn) *client {
	return &client{
		ws:   ws,
		send: make(chan []byte, sendQueueSize),
	}
}

// enqueue queues a frame for delivery. It reports false when the send queue
// is full, meaning the consumer is too slow to keep the ordered stream
// intact and the connection must be dropped.
func (c *client) enqueue(payload []byte) bool {
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// writePump drains the send queue onto the wire and keeps the connection
// alive with pings. It exits when send is closed or a write fails.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump feeds inbound frames to the server until the connection dies,
// then requests a leave.
func (c *client) readPump(s *Server) {
	defer func() {
		s.leave(c)
		c.ws.Close()
	}()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.L.Debugw("websocket read failed", "conn", c.connID, "err", err)
			}
			return
		}
		s.message(c, data)
	}
}
