package realtime

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	// writeWait bounds a single message write.
	writeWait = 10 * time.Second
	// pingPeriod is how often idle connections are pinged.
	pingPeriod = 30 * time.Second
	// sendBuffer is the per-client outgoing queue; overflow drops messages
	// because the next projection supersedes the missed one anyway.
	sendBuffer = 8
)

type client struct {
	conn   *websocket.Conn
	send   chan Message
	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.SugaredLogger
}

// ServeHTTP upgrades GET /ws and serves the connection until it closes.
// The current state is pushed immediately so a fresh observer never waits
// for the next mutation.
//
// The hub is mounted beside the gin engine rather than as a gin route:
// the upgrade hijacks the connection, which needs the server's raw
// ResponseWriter, not gin's buffering wrapper.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		// Accept has already written the failure response.
		h.logger.Warnw("websocket accept failed", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	cl := &client{
		conn:   conn,
		send:   make(chan Message, sendBuffer),
		ctx:    ctx,
		cancel: cancel,
		logger: h.logger,
	}

	h.register(cl)
	h.logger.Infow("observer connected", "observers", h.ClientCount())

	h.sendStateTo(ctx, cl)

	go cl.writePump()
	go cl.pingPump()

	// Read pump runs in the handler goroutine and blocks until disconnect.
	h.readPump(cl)

	h.unregister(cl)
	cl.cancel()
	h.logger.Infow("observer disconnected", "observers", h.ClientCount())
}

// readPump consumes inbound messages. Observers are mostly passive; the
// only recognized request is an explicit state refresh.
func (h *Hub) readPump(cl *client) {
	defer cl.conn.Close(websocket.StatusNormalClosure, "")

	for {
		var msg Message
		if err := wsjson.Read(cl.ctx, cl.conn, &msg); err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && cl.ctx.Err() == nil {
				h.logger.Debugw("websocket read ended", "error", err)
			}
			return
		}

		if msg.Type == "refresh" {
			h.sendStateTo(cl.ctx, cl)
		}
	}
}

// enqueue queues a message without blocking, dropping it when the client
// cannot keep up.
func (c *client) enqueue(msg Message) {
	select {
	case c.send <- msg:
	default:
		c.logger.Debugw("dropping message for slow observer")
	}
}

// writePump drains the send queue onto the connection.
func (c *client) writePump() {
	defer c.conn.Close(websocket.StatusNormalClosure, "")

	for {
		select {
		case msg := <-c.send:
			ctx, cancel := context.WithTimeout(c.ctx, writeWait)
			err := wsjson.Write(ctx, c.conn, msg)
			cancel()
			if err != nil {
				c.cancel()
				return
			}
		case <-c.ctx.Done():
			return
		}
	}
}

// pingPump keeps the connection alive through proxies.
func (c *client) pingPump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(c.ctx, writeWait)
			err := c.conn.Ping(ctx)
			cancel()
			if err != nil {
				c.cancel()
				return
			}
		case <-c.ctx.Done():
			return
		}
	}
}
