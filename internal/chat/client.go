package chat

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
)

// Client — одно WebSocket-подключение. Имя появляется только после
// события login; до него сессия анонимна и не участвует в presence.
type Client struct {
	ID   uuid.UUID
	hub  *Hub
	conn *websocket.Conn

	send chan map[string]any

	mu     sync.Mutex
	name   string
	closed bool
}

// clientEvent — входящий кадр протокола.
type clientEvent struct {
	Type     string `json:"type"`
	Username string `json:"username"`
	Sender   string `json:"sender"`
	Message  string `json:"message"`
}

func newClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		ID:   uuid.New(),
		hub:  hub,
		conn: conn,
		send: make(chan map[string]any, 256),
	}
}

// Serve registers the client and pumps frames until the connection
// drops. Blocks for the lifetime of the connection.
func (c *Client) Serve() {
	c.hub.register <- c
	go c.writePump()
	c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.ctx.Done():
		}
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var ev clientEvent
		if err := c.conn.ReadJSON(&ev); err != nil {
			return
		}

		switch ev.Type {
		case "login":
			select {
			case c.hub.login <- loginRequest{client: c, username: ev.Username}:
			case <-c.hub.ctx.Done():
				return
			}
		case "send_message":
			select {
			case c.hub.inbound <- inboundMessage{client: c, sender: ev.Sender, content: ev.Message}:
			case <-c.hub.ctx.Done():
				return
			}
		default:
			// Незнакомые кадры молча пропускаем.
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
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

// trySend queues an event without blocking; false means the buffer is
// full or the client is already closed.
func (c *Client) trySend(event map[string]any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- event:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *Client) username() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

func (c *Client) setUsername(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.name = name
}
