package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"

	"aurora-fiscalizacao-be/internal/pkg/logger"
	"aurora-fiscalizacao-be/pkg/events"
)

const clusterChannel = "console_events"

// Hub fans audit events out to every connected operator console. There is no
// per-operator targeting; the console is a shared live feed.
type Hub struct {
	clients map[*Client]bool

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("Hub", "Operator connected", map[string]interface{}{"operator": client.Operator})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.logger.Info("Hub", "Operator disconnected", map[string]interface{}{"operator": client.Operator})
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast pushes one audit event to every connected console, locally and on
// the other instances through Redis.
func (h *Hub) Broadcast(event events.Event) {
	data, _ := json.Marshal(map[string]interface{}{
		"type":        event.EventType(),
		"occurred_at": event.Timestamp(),
		"data":        event.Payload(),
	})

	h.sendLocal(data)

	if h.rdb != nil {
		h.rdb.Publish(context.Background(), clusterChannel, data)
	}
}

func (h *Hub) sendLocal(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Console send buffer full, dropping client", map[string]interface{}{"operator": client.Operator})
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.sendLocal([]byte(msg.Payload))
	}
}
