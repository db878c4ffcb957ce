package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Event types pushed to clients.
const (
	EventDiscountsUpdated = "discounts.updated"
	EventRatesUpdated     = "rates.updated"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 8
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is handled at the HTTP level
	},
}

// Event tells clients that cached pricing data changed and displayed prices should be refetched.
type Event struct {
	Type string    `json:"type"`
	At   time.Time `json:"at"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// PricingHub fans pricing change notifications out to connected WebSocket clients.
type PricingHub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	log     *logrus.Entry
}

// NewPricingHub creates a new PricingHub.
func NewPricingHub(logger *logrus.Logger) *PricingHub {
	return &PricingHub{
		clients: make(map[*client]struct{}),
		log:     logger.WithField("component", "pricing_hub"),
	}
}

// Handle upgrades HTTP to WebSocket and registers the connection.
// URL: /ws/pricing
func (h *PricingHub) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(c)
	h.readLoop(c)
}

// Broadcast sends an event to every client. Slow clients whose buffer is full are dropped.
func (h *PricingHub) Broadcast(eventType string) {
	msg, err := json.Marshal(Event{Type: eventType, At: time.Now().UTC()})
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.removeLocked(c)
		}
	}
}

// Clients returns the number of connected clients.
func (h *PricingHub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *PricingHub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *PricingHub) removeLocked(c *client) {
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// readLoop discards client input and returns when the connection closes.
func (h *PricingHub) readLoop(c *client) {
	defer func() {
		h.remove(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *PricingHub) writeLoop(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
