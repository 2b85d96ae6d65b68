// Package hub fans state snapshots out to the connected editor client.
package hub

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const outBuffer = 64

// Client is one live connection. Only one client owns the hub at a time;
// attaching a new one displaces the previous owner.
type Client struct {
	ID          string    `json:"id"`
	ConnectedAt time.Time `json:"connected_at"`

	out  chan []byte
	kick chan struct{}
}

// Out delivers snapshots. It is closed by Detach.
func (c *Client) Out() <-chan []byte { return c.out }

// Kicked is closed when a newer client displaces this one.
func (c *Client) Kicked() <-chan struct{} { return c.kick }

type Hub struct {
	mu      sync.Mutex
	current *Client
	last    []byte
}

func New() *Hub {
	return &Hub{}
}

// Attach registers a new client, kicks any previous one and queues the most
// recent snapshot so the client starts from current state.
func (h *Hub) Attach() *Client {
	c := &Client{
		ID:          uuid.New().String(),
		ConnectedAt: time.Now(),
		out:         make(chan []byte, outBuffer),
		kick:        make(chan struct{}),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current != nil {
		close(h.current.kick)
	}
	h.current = c
	if h.last != nil {
		c.out <- h.last
	}
	return c
}

// Detach ends c's connection. State is only cleared if c is still the owner,
// so a displaced connection cannot detach its successor. c's Out channel is
// always closed.
func (h *Hub) Detach(c *Client) {
	h.mu.Lock()
	if h.current == c {
		h.current = nil
	}
	h.mu.Unlock()
	close(c.out)
}

// Broadcast records msg as the latest snapshot and hands it to the owner.
// A slow client misses intermediate snapshots rather than blocking callers.
func (h *Hub) Broadcast(msg []byte) {
	cp := make([]byte, len(msg))
	copy(cp, msg)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = cp
	if h.current == nil {
		return
	}
	select {
	case h.current.out <- cp:
	default:
	}
}

// Current returns the connected client, if any.
func (h *Hub) Current() (*Client, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current, h.current != nil
}

// Last returns a copy of the latest snapshot.
func (h *Hub) Last() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.last == nil {
		return nil
	}
	cp := make([]byte, len(h.last))
	copy(cp, h.last)
	return cp
}
