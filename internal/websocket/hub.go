package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/artigianatoshop/artigianato-backend/internal/app/model"
	"github.com/artigianatoshop/artigianato-backend/pkg/logger"
)

// Event types pushed over the order feed
const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
)

// OrderEvent is the payload sent to connected clients
type OrderEvent struct {
	Type       string    `json:"type"`
	OrderID    uint      `json:"order_id"`
	Status     string    `json:"status"`
	FromStatus string    `json:"from_status,omitempty"`
	TotalPrice float64   `json:"total_price"`
	Timestamp  time.Time `json:"timestamp"`
}

// envelope is an event routed to a set of recipients
type envelope struct {
	Recipients map[uint]bool
	ToAdmins   bool
	Message    []byte
}

// Hub manages WebSocket connections and routes order events
type Hub struct {
	// Registered clients (UserID -> []*Client, multi-device support)
	clients map[uint][]*Client

	// Client registration
	register chan *Client

	// Client deregistration
	unregister chan *Client

	// Event routing
	events chan *envelope

	mu sync.RWMutex
}

// NewHub creates a Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		events:     make(chan *envelope, 1024),
	}
}

// Run processes registration and event routing. Call in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			// Multi-device support: append to the client list
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			logger.Info("WebSocket client registered", map[string]interface{}{
				"user_id":        client.UserID,
				"role":           client.Role,
				"total_sessions": len(h.clients[client.UserID]),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if clientList, ok := h.clients[client.UserID]; ok {
				newList := make([]*Client, 0, len(clientList))
				for _, c := range clientList {
					if c != client {
						newList = append(newList, c)
					}
				}

				if len(newList) == 0 {
					delete(h.clients, client.UserID)
				} else {
					h.clients[client.UserID] = newList
				}

				close(client.Send)
			}
			h.mu.Unlock()
			logger.Info("WebSocket client unregistered", map[string]interface{}{
				"user_id": client.UserID,
			})

		case event := <-h.events:
			h.mu.RLock()
			for userID, clientList := range h.clients {
				if !event.Recipients[userID] {
					if !event.ToAdmins || len(clientList) == 0 || clientList[0].Role != model.RoleAdmin {
						continue
					}
				}

				// Multi-device: deliver to every session
				for _, client := range clientList {
					select {
					case client.Send <- event.Message:
						// delivered
					default:
						// Send buffer full - clean up asynchronously
						go h.Unregister(client)
						logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
							"user_id": userID,
						})
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register registers a client
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// IsUserOnline reports whether the user has at least one session
func (h *Hub) IsUserOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

// NotifyOrderCreated pushes a creation event to the order's participants
func (h *Hub) NotifyOrderCreated(order *model.Order) {
	h.send(order, &OrderEvent{
		Type:       EventOrderCreated,
		OrderID:    order.ID,
		Status:     string(order.Status),
		TotalPrice: order.TotalPrice,
		Timestamp:  time.Now(),
	})
}

// NotifyOrderStatusChanged pushes a status change event to the order's participants
func (h *Hub) NotifyOrderStatusChanged(order *model.Order, from model.OrderStatus) {
	h.send(order, &OrderEvent{
		Type:       EventOrderStatusChanged,
		OrderID:    order.ID,
		Status:     string(order.Status),
		FromStatus: string(from),
		TotalPrice: order.TotalPrice,
		Timestamp:  time.Now(),
	})
}

// send routes an event to the order's client, its artisans, and any
// connected admins. Events are dropped rather than blocking checkout.
func (h *Hub) send(order *model.Order, event *OrderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal order event", err, nil)
		return
	}

	recipients := map[uint]bool{order.ClientID: true}
	for _, item := range order.OrderItems {
		recipients[item.ArtisanID] = true
	}

	select {
	case h.events <- &envelope{
		Recipients: recipients,
		ToAdmins:   true,
		Message:    data,
	}:
	default:
		logger.Warn("Event channel full, order event dropped", map[string]interface{}{
			"order_id": order.ID,
		})
	}
}
