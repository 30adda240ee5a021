// Package realtime is the live channel: a registry of websocket connections keyed by
// recipient identity that fans LiveMessages out to them.
//
// Delivery is best effort. A recipient without an open connection misses the
// message, and a connection whose send queue is full misses it too. Messages keep
// their publish order per connection, but two commits on one order may be
// published in either order; clients drop messages whose Seq is below the last one
// seen and re-fetch the authoritative order snapshot periodically.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	maxInboundSize = 512
)

var goingAway = websocket.FormatCloseMessage(websocket.CloseGoingAway, "")

// ErrHubClosed is returned by Serve once Shutdown has started.
var ErrHubClosed = errors.New("live channel is shut down")

// Config tunes liveness probing and queueing per connection.
type Config struct {
	// PingInterval is how often a ping is written to every connection.
	PingInterval time.Duration
	// PongWait is how long a connection may stay silent before it is dropped. Must
	// be greater than PingInterval.
	PongWait time.Duration
	// SendBuffer is the number of messages queued per connection.
	SendBuffer int
}

// Hub implements ports.EventPublisher on top of websocket connections.
//
// Example:
//
//	hub, err := realtime.NewHub(realtime.Config{PingInterval: 30 * time.Second,
//	    PongWait: 60 * time.Second, SendBuffer: 64}, logger)
//	...
//	conn, _ := upgrader.Upgrade(w, r, nil)
//	_ = hub.Serve(ctx, conn, ports.RecipientsOf(actor))
type Hub struct {
	cfg Config
	log *slog.Logger

	mu          sync.RWMutex
	subscribers map[ports.Recipient]map[*client]struct{}
	closed      bool

	serving sync.WaitGroup
}

type client struct {
	conn       *websocket.Conn
	recipients []ports.Recipient
	send       chan []byte
	closeOnce  sync.Once
}

func NewHub(cfg Config, log *slog.Logger) (*Hub, error) {
	if cfg.PingInterval <= 0 {
		return nil, errs.NewValueIsRequiredError("pingInterval")
	}
	if cfg.PongWait <= cfg.PingInterval {
		return nil, errs.NewValueIsInvalidErrorWithCause("pongWait",
			fmt.Errorf("%s does not exceed ping interval %s", cfg.PongWait, cfg.PingInterval))
	}
	if cfg.SendBuffer <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("sendBuffer", cfg.SendBuffer, 1, math.MaxInt)
	}
	if log == nil {
		return nil, errs.NewValueIsRequiredError("log")
	}

	return &Hub{
		cfg:         cfg,
		log:         log.With("component", "live_channel"),
		subscribers: make(map[ports.Recipient]map[*client]struct{}),
	}, nil
}

// Serve registers conn under recipients and pumps messages to it until the peer
// goes away, stops answering pings, or the hub shuts down. It blocks for the
// lifetime of the connection and always closes conn. Inbound frames are read only
// to process control messages and are otherwise discarded.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn, recipients []ports.Recipient) error {
	c := &client{
		conn:       conn,
		recipients: recipients,
		send:       make(chan []byte, h.cfg.SendBuffer),
	}

	if err := h.register(c); err != nil {
		_ = conn.WriteControl(websocket.CloseMessage, goingAway, time.Now().Add(writeWait))
		_ = conn.Close()
		return err
	}
	defer h.serving.Done()

	h.log.DebugContext(ctx, "subscriber connected", "recipients", recipients)

	written := make(chan struct{})
	go func() {
		defer close(written)
		h.writePump(c)
	}()

	h.readPump(c)
	h.unregister(c)
	<-written

	h.log.DebugContext(ctx, "subscriber disconnected", "recipients", recipients)
	return nil
}

// Publish queues msg for every connection subscribed under any of recipients. A
// connection subscribed under several of them receives msg once.
func (h *Hub) Publish(ctx context.Context, recipients []ports.Recipient, msg ports.LiveMessage) {
	body, err := json.Marshal(msg)
	if err != nil {
		h.log.ErrorContext(ctx, "failed to encode live message", "error", err, "type", msg.Type)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[*client]struct{})
	for _, recipient := range recipients {
		for c := range h.subscribers[recipient] {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}

			select {
			case c.send <- body:
			default:
				h.log.DebugContext(ctx, "send queue full, message dropped",
					"recipient", recipient, "type", msg.Type, "order_id", msg.OrderID)
			}
		}
	}

	if len(seen) == 0 {
		h.log.DebugContext(ctx, "no subscriber for live message",
			"recipients", recipients, "type", msg.Type, "order_id", msg.OrderID)
	}
}

// Subscribers returns the number of open connections registered under recipient.
func (h *Hub) Subscribers(recipient ports.Recipient) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[recipient])
}

// Shutdown closes every connection with a going-away close frame and waits for the
// Serve calls to return or ctx to expire. Later Serve calls fail with ErrHubClosed.
func (h *Hub) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	h.closed = true
	for recipient, set := range h.subscribers {
		for c := range set {
			c.closeSend()
		}
		delete(h.subscribers, recipient)
	}
	h.mu.Unlock()

	done := make(chan struct{})
	go func() {
		h.serving.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) register(c *client) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHubClosed
	}

	h.serving.Add(1)
	for _, recipient := range c.recipients {
		set, ok := h.subscribers[recipient]
		if !ok {
			set = make(map[*client]struct{})
			h.subscribers[recipient] = set
		}
		set[c] = struct{}{}
	}
	return nil
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, recipient := range c.recipients {
		set := h.subscribers[recipient]
		delete(set, c)
		if len(set) == 0 {
			delete(h.subscribers, recipient)
		}
	}
	c.closeSend()
}

// closeSend must be called with h.mu held for writing so Publish never sends on a
// closed channel.
func (c *client) closeSend() {
	c.closeOnce.Do(func() { close(c.send) })
}

func (h *Hub) readPump(c *client) {
	c.conn.SetReadLimit(maxInboundSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	})

	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("subscriber connection lost", "error", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(h.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case body, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, goingAway)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, body); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
