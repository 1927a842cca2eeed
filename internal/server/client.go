package server

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/san-kum/ropesim/internal/vec"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 512
	sendBuffer     = 64
)

// Message is an input command from a browser.
type Message struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type Client struct {
	hub   *Hub
	scene *Scene
	conn  *websocket.Conn
	send  chan []byte
}

func NewClient(hub *Hub, scene *Scene, conn *websocket.Conn) *Client {
	return &Client{
		hub:   hub,
		scene: scene,
		conn:  conn,
		send:  make(chan []byte, sendBuffer),
	}
}

// Register adds the client to the hub. It reports false once the hub has
// stopped.
func (c *Client) Register() bool {
	select {
	case c.hub.register <- c:
		return true
	case <-c.hub.done:
		return false
	}
}

// ReadPump applies input messages to the scene until the connection drops.
func (c *Client) ReadPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.lg.Warnf("read: %v", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.hub.lg.Warnf("bad message from %s: %v", c.conn.RemoteAddr(), err)
			continue
		}
		c.handle(msg)
	}
}

func (c *Client) handle(msg Message) {
	switch msg.Type {
	case "move":
		c.scene.Move(vec.New(msg.X, msg.Y))
	case "reset":
		if err := c.scene.Reset(); err != nil {
			c.hub.lg.Errorf("reset: %v", err)
		}
	default:
		c.hub.lg.Warnf("unknown message type %q", msg.Type)
	}
}

// WritePump sends queued frames and keeps the connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
