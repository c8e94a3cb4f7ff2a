package websocket

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	sendQueueSize = 256
)

// EventHandler dispatches one inbound envelope on behalf of a client.
type EventHandler interface {
	HandleEvent(client *Client, env *Envelope) error
}

// Client is one live transport session. It starts Unjoined; its current room
// lives in the registry, not here.
type Client struct {
	ID   uuid.UUID
	Send chan []byte

	hub  *Hub
	conn *websocket.Conn

	mu     sync.Mutex
	closed bool
}

// NewClient wraps an upgraded connection. conn may be nil in tests that
// exercise the hub without a transport.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	if conn != nil {
		conn.SetReadLimit(hub.ReadLimit())
	}
	return &Client{
		ID:   uuid.New(),
		Send: make(chan []byte, sendQueueSize),
		hub:  hub,
		conn: conn,
	}
}

// ReadPump consumes inbound frames and hands each envelope to the handler.
// Handler errors are answered on this connection only; they never abort the
// pump. Transport teardown is the sole exit path and triggers Disconnect.
func (c *Client) ReadPump(handler EventHandler) {
	defer func() {
		c.hub.Disconnect(c)
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var env Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Warn("websocket read failed", "client", c.ID, "err", err)
			}
			break
		}

		if handler == nil {
			continue
		}
		if err := handler.HandleEvent(c, &env); err != nil {
			c.hub.log.Debug("event rejected", "client", c.ID, "event", env.Event, "err", err)
			c.SendError(err)
		}
	}
}

// WritePump drains the send queue onto the wire and keeps the connection
// alive with periodic pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendEvent marshals and enqueues an event for this connection only.
func (c *Client) SendEvent(event string, data any) error {
	payload, err := marshalEvent(event, data)
	if err != nil {
		return err
	}
	return c.enqueue(payload)
}

// SendError reports a rejected operation back to this connection.
func (c *Client) SendError(cause error) {
	_ = c.SendEvent(EventError, ErrorPayload{
		Code:    ErrorCode(cause),
		Message: cause.Error(),
	})
}

// enqueue hands a payload to the write pump without blocking. A full queue
// drops the frame so one slow client cannot stall a room's fan-out.
func (c *Client) enqueue(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClientQueueFull
	}
	select {
	case c.Send <- payload:
		return nil
	default:
		return ErrClientQueueFull
	}
}

// markClosed closes the send queue exactly once.
func (c *Client) markClosed() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}
