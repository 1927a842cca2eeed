package server

import (
	"context"
	"sync"

	"github.com/san-kum/ropesim/internal/log"
)

// Hub maintains the set of active clients and broadcasts frames to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.Mutex
	lg         *log.Logger
}

func NewHub(lg *log.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[*Client]bool),
		lg:         lg,
	}
}

// Run handles registration and fan-out until ctx is cancelled. Clients too
// slow to take a frame are dropped.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.lg.Info("hub shutting down")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.lg.Infof("client connected from %s", client.conn.RemoteAddr())
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.lg.Infof("client disconnected from %s", client.conn.RemoteAddr())
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
					h.lg.Warnf("dropped slow client %s", client.conn.RemoteAddr())
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast queues message for every client. It gives up if ctx ends first.
func (h *Hub) Broadcast(ctx context.Context, message []byte) {
	select {
	case h.broadcast <- message:
	case <-ctx.Done():
	}
}

// Len is the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
