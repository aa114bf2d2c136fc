// Package notify pushes order status changes to connected clients over
// WebSocket.
package notify

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wicaksana/kedai/models"
)

// StatusUpdate is the message broadcast whenever an order changes status.
type StatusUpdate struct {
	OrderID int64              `json:"order_id"`
	Status  models.OrderStatus `json:"status"`
	Time    time.Time          `json:"time"`
}

// Conn is the subset of a WebSocket connection the hub needs.
// *websocket.Conn satisfies it.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Hub tracks subscribers and fans status updates out to them. It owns its
// subscriber set behind a mutex; connections that fail a write are dropped.
type Hub struct {
	mu    sync.Mutex
	conns map[Conn]bool
}

func NewHub() *Hub {
	return &Hub{conns: make(map[Conn]bool)}
}

func (h *Hub) Add(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = true
}

func (h *Hub) Remove(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

// Broadcast sends the update to every subscriber, dropping ones whose
// connection errors.
func (h *Hub) Broadcast(update StatusUpdate) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		if err := conn.WriteJSON(update); err != nil {
			logrus.Printf("dropping status subscriber, write failed: %v", err)
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// Count reports the current subscriber count.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
