package notifier

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"courtbook/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type EventType string

// Clients must skip event types they do not recognize; new types may appear
// without a protocol bump.
const (
	EventBookingCancelled EventType = "BOOKING_CANCELLED"
	EventSlotAvailable    EventType = "SLOT_AVAILABLE"
	EventMaintenanceStart EventType = "MAINTENANCE_START"
	EventMaintenanceEnd   EventType = "MAINTENANCE_END"
)

type Event struct {
	ID         uuid.UUID       `json:"id"`
	Type       EventType       `json:"type"`
	ResourceID uuid.UUID       `json:"resource_id"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}

func NewEvent(eventType EventType, resourceID uuid.UUID, payload any) (Event, error) {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return Event{}, err
		}
		raw = data
	}
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		ResourceID: resourceID,
		Payload:    raw,
		Timestamp:  time.Now().UTC(),
	}, nil
}

type Publisher interface {
	Publish(event Event)
}

// Hub fans events out to connected WebSocket clients. Delivery is best
// effort: a slow client's buffer fills and events for it are dropped, there
// is no replay for disconnected clients.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}

	buffer       int
	writeTimeout time.Duration
	pingInterval time.Duration
}

type client struct {
	conn *websocket.Conn
	send chan Event
	// filter narrows delivery to one resource; nil means everything.
	filter *uuid.UUID
}

func NewHub(cfg config.EventsConfig) *Hub {
	return &Hub{
		clients:      make(map[*client]struct{}),
		buffer:       cfg.ClientBuffer,
		writeTimeout: cfg.WriteTimeout,
		pingInterval: cfg.PingInterval,
	}
}

// Publish never blocks the caller. A full per-client buffer drops the event
// for that client only.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		if c.filter != nil && *c.filter != event.ResourceID {
			continue
		}
		select {
		case c.send <- event:
		default:
			slog.Warn("event dropped for slow client",
				"event_type", string(event.Type),
				"resource_id", event.ResourceID.String())
		}
	}
}

// Serve owns the connection until the client goes away. The single writer
// goroutine per connection keeps per-client ordering.
func (h *Hub) Serve(conn *websocket.Conn, filter *uuid.UUID) {
	c := &client{
		conn:   conn,
		send:   make(chan Event, h.buffer),
		filter: filter,
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	done := make(chan struct{})
	go h.writeLoop(c, done)
	h.readLoop(c)

	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()

	close(done)
	conn.Close()
}

func (h *Hub) writeLoop(c *client, done <-chan struct{}) {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case event := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
			if err := c.conn.WriteJSON(event); err != nil {
				c.conn.Close()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.conn.Close()
				return
			}
		case <-done:
			return
		}
	}
}

// readLoop discards inbound frames; it exists to process pongs and detect the
// peer closing.
func (h *Hub) readLoop(c *client) {
	readWait := h.pingInterval * 2
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(readWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(readWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// ClientCount is for observability and tests.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
