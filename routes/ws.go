package routes

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// checkoutEvent is pushed to every connected websocket client when a
// transaction commits.
type checkoutEvent struct {
	Type          string          `json:"type"`
	TransactionID uuid.UUID       `json:"transaction_id"`
	UserID        uuid.UUID       `json:"user_id"`
	Total         decimal.Decimal `json:"total"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production
	},
}

// Hub fans checkout events out to connected websocket clients.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	events  chan []byte
	log     *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		events:  make(chan []byte, 100), // buffered to prevent blocking
		log:     log,
	}
}

// Run delivers queued events to every client until the hub's channel is
// closed. Meant to run in its own goroutine.
func (h *Hub) Run() {
	for message := range h.events {
		h.mu.Lock()
		for client := range h.clients {
			if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
				h.log.Warn("websocket write failed", zap.Error(err))
				client.Close()
				delete(h.clients, client)
			}
		}
		h.mu.Unlock()
	}
}

// Broadcast queues an event for delivery; events are dropped when the
// queue is full rather than stalling a checkout.
func (h *Hub) Broadcast(event checkoutEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.log.Error("marshal checkout event failed", zap.Error(err))
		return
	}
	select {
	case h.events <- payload:
	default:
		h.log.Warn("event queue full, dropping checkout event")
	}
}

func (h *Hub) Handler() fiber.Handler {
	return adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.log.Warn("websocket upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()

		h.mu.Lock()
		h.clients[conn] = true
		h.mu.Unlock()
		h.log.Info("websocket client connected", zap.String("addr", conn.RemoteAddr().String()))

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					h.log.Warn("websocket read failed", zap.Error(err))
				}
				h.mu.Lock()
				delete(h.clients, conn)
				h.mu.Unlock()
				h.log.Info("websocket client disconnected", zap.String("addr", conn.RemoteAddr().String()))
				return
			}
		}
	})
}
