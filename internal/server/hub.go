package server

import (
	"encoding/json"
	"sync"

	"github.com/bft-labs/kalah/internal/session"
	"github.com/bft-labs/kalah/pkg/log"
)

const clientBuffer = 64

// wsMessage is the envelope of every WebSocket frame in both directions.
type wsMessage struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload,omitempty"`
	Position *int            `json:"position,omitempty"`
	Error    string          `json:"error,omitempty"`
}

func snapshotMessage(st session.State) wsMessage {
	return wsMessage{Type: "snapshot", Payload: mustMarshal(st)}
}

func mustMarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage(`null`)
	}
	return b
}

// Hub fans messages out to connected WebSocket clients.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
	logger  log.Logger
}

// Client is one connection's outbound queue.
type Client struct {
	send chan []byte
	done chan struct{}
}

func NewHub(logger log.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  log.OrNoop(logger),
	}
}

func (h *Hub) Register() *Client {
	c := &Client{send: make(chan []byte, clientBuffer), done: make(chan struct{})}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Debug("websocket client connected", log.Int("clients", n))
	return c
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.done)
	}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Debug("websocket client disconnected", log.Int("clients", n))
}

// Broadcast queues msg for every client. A client whose queue is full misses
// the message.
func (h *Hub) Broadcast(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.trySend(data)
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// CloseAll disconnects every client.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.done)
	}
}

func (c *Client) trySend(data []byte) {
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	c.trySend(data)
}
