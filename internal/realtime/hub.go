package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/panaderia-next/internal/logger"
	"github.com/panaderia-next/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is the wire envelope pushed to websocket clients.
type Message struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
}

// OrderUpdatePayload carries the updated row plus its canonical diff.
type OrderUpdatePayload struct {
	Order  *models.Order `json:"order"`
	Change OrderChange   `json:"change"`
}

// Client is one websocket subscriber.
type Client struct {
	conn *websocket.Conn
	send chan Message
	hub  *Hub
}

// Hub fans feed events out to websocket clients. It keeps its own
// last-known copy of each order so diffs are computed against the
// latest state even when the publisher could not supply the old row.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex

	knownMu     sync.Mutex
	knownOrders map[uint]models.Order
}

// NewHub creates a hub. Call Run on its own goroutine, then Attach.
func NewHub() *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		broadcast:   make(chan Message, 256),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		knownOrders: make(map[uint]models.Order),
	}
}

// Attach subscribes the hub to the order feed and returns the
// unsubscribe function.
func (h *Hub) Attach(feed *Feed) func() {
	return feed.Subscribe(EntityOrder, h.handleOrderEvent)
}

func (h *Hub) handleOrderEvent(event Event) {
	updated, _ := event.New.(*models.Order)
	old, _ := event.Old.(*models.Order)

	if updated == nil {
		if old != nil {
			h.forget(old.ID)
		}
		return
	}

	// Fall back to the hub's cached copy when no old row came with
	// the event, then refresh the cache to the new row.
	if old == nil {
		old = h.lastKnown(updated.ID)
	}
	h.remember(updated)

	change := DiffOrder(old, updated)
	h.Broadcast("order_update", OrderUpdatePayload{Order: updated, Change: change})
}

func (h *Hub) lastKnown(orderID uint) *models.Order {
	h.knownMu.Lock()
	defer h.knownMu.Unlock()
	if cached, ok := h.knownOrders[orderID]; ok {
		copied := cached
		return &copied
	}
	return nil
}

func (h *Hub) remember(order *models.Order) {
	h.knownMu.Lock()
	defer h.knownMu.Unlock()
	h.knownOrders[order.ID] = *order
}

func (h *Hub) forget(orderID uint) {
	h.knownMu.Lock()
	defer h.knownMu.Unlock()
	delete(h.knownOrders, orderID)
}

// Run owns the client set. Start it on a dedicated goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mutex.Unlock()
			logger.Infow("ws_client_connected", "client_count", count)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mutex.Unlock()
			logger.Infow("ws_client_disconnected", "client_count", count)

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Broadcast queues a message for every connected client, dropping it
// when the queue is full rather than blocking the caller.
func (h *Hub) Broadcast(messageType string, data interface{}) {
	message := Message{
		Type:      messageType,
		Data:      data,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	select {
	case h.broadcast <- message:
	default:
		logger.Warnw("ws_broadcast_channel_full", "type", messageType)
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// ServeWS upgrades a gin request to a websocket subscription.
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorw("ws_upgrade_failed", "error", err)
		return
	}

	client := &Client{
		conn: conn,
		send: make(chan Message, 256),
		hub:  h,
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warnw("ws_read_failed", "error", err)
			}
			break
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
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(message)
			if err != nil {
				logger.Errorw("ws_marshal_failed", "error", err)
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
