// Package realtime pushes game state updates to connected observers over
// websockets. Delivery is best-effort: slow or disconnected clients are
// dropped, never retried.
package realtime

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// StateFunc produces the payload broadcast to observers, typically a fresh
// game state projection.
type StateFunc func(ctx context.Context) (interface{}, error)

// Message is the wire envelope sent to observers.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// eventGameUpdate carries a full game state projection.
const eventGameUpdate = "game:update"

// Hub tracks connected observers and fans out state updates.
type Hub struct {
	state  StateFunc
	logger *zap.SugaredLogger

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// NewHub creates a hub that broadcasts the given state projection.
func NewHub(state StateFunc, logger *zap.SugaredLogger) *Hub {
	return &Hub{
		state:   state,
		logger:  logger,
		clients: make(map[*client]struct{}),
	}
}

// Publish recomputes the state and broadcasts it to every observer.
// Called by the handler layer after each successful mutation commits.
func (h *Hub) Publish(ctx context.Context) {
	payload, err := h.state(ctx)
	if err != nil {
		h.logger.Errorw("failed to project state for broadcast", "error", err)
		return
	}
	h.broadcast(Message{Type: eventGameUpdate, Payload: payload})
}

// ClientCount returns the number of connected observers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// broadcast queues the message on every client without blocking; one slow
// observer does not hold up the rest.
func (h *Hub) broadcast(msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		c.enqueue(msg)
	}
}

// sendStateTo pushes a fresh projection to a single client, used on connect
// and on explicit refresh requests.
func (h *Hub) sendStateTo(ctx context.Context, c *client) {
	payload, err := h.state(ctx)
	if err != nil {
		h.logger.Errorw("failed to project state for client", "error", err)
		return
	}
	c.enqueue(Message{Type: eventGameUpdate, Payload: payload})
}
