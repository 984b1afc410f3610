package booking

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/petgroom/petgroom-api/internal/pkg/metrics"
)

// eventsChannel is the Redis channel shared by every API instance
const eventsChannel = "bookings:events"

// Client is one WebSocket connection on the booking feed
type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Hub fans booking events out to WebSocket clients. With Redis configured
// events travel through Pub/Sub so clients on every instance receive them.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	redis  *redis.Client
	pubsub *redis.PubSub

	register   chan *Client
	unregister chan *Client

	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub creates the booking feed hub. redisClient may be nil.
func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	h := &Hub{
		clients:    make(map[*Client]bool),
		redis:      redisClient,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
	}

	if redisClient != nil {
		h.pubsub = redisClient.Subscribe(ctx, eventsChannel)
	}

	return h
}

// Run starts the hub (call in goroutine)
func (h *Hub) Run() {
	if h.pubsub != nil {
		go h.runRedisSubscriber()
	}

	for {
		select {
		case <-h.ctx.Done():
			h.closeAll()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			n := len(h.clients)
			h.mu.Unlock()
			metrics.SetRealtimeClients(n)
			log.Debug().Int("clients", n).Msg("Booking feed client connected")

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.Send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			metrics.SetRealtimeClients(n)
			log.Debug().Int("clients", n).Msg("Booking feed client disconnected")
		}
	}
}

// Stop shuts the hub down and closes every client
func (h *Hub) Stop() {
	h.cancel()
	if h.pubsub != nil {
		h.pubsub.Close()
	}
}

// Register adds a client
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.ctx.Done():
		close(c.Send)
	}
}

// Unregister removes a client
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.ctx.Done():
	}
}

// ClientCount returns the number of local clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish sends event to feed clients on every instance
func (h *Hub) Publish(ctx context.Context, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal booking event")
		return
	}

	if h.redis != nil {
		err = h.redis.Publish(ctx, eventsChannel, data).Err()
		if err == nil {
			return
		}
		log.Error().Err(err).Str("channel", eventsChannel).Msg("Redis publish failed")
	}

	// No Redis, or publish failed: this instance only
	h.broadcastLocal(data)
}

func (h *Hub) runRedisSubscriber() {
	ch := h.pubsub.Channel()

	for {
		select {
		case <-h.ctx.Done():
			return

		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.broadcastLocal([]byte(msg.Payload))
		}
	}
}

// broadcastLocal sends data to clients connected to THIS server
func (h *Hub) broadcastLocal(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.Send <- data:
		default:
			log.Warn().Msg("Booking feed send buffer full")
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		delete(h.clients, c)
		close(c.Send)
	}
	metrics.SetRealtimeClients(0)
}
