package notify

import (
	"context"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Hub fans notification payloads out to the websocket connections of a user.
// Redis pub/sub bridges instances so an owner connected elsewhere still sees
// incoming join requests.
type Hub struct {
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	UserID string
	Send   chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:   redisClient,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(userID string) *Client {
	client := &Client{
		UserID: userID,
		Send:   make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = map[*Client]struct{}{}
	}
	h.clients[userID][client] = struct{}{}
	return client
}

// Unregister removes the client and closes its Send channel. Calling it
// again for the same client is a no-op.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userClients, ok := h.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := userClients[client]; !ok {
		return
	}
	delete(userClients, client)
	if len(userClients) == 0 {
		delete(h.clients, client.UserID)
	}
	close(client.Send)
}

func (h *Hub) Broadcast(userID string, payload []byte) {
	h.mu.RLock()
	clients := h.clients[userID]
	h.mu.RUnlock()

	for client := range clients {
		select {
		case client.Send <- payload:
		default:
		}
	}

	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(userID), payload).Err()
		if err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "notify:*:inbox")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		userID := userIDFromChannel(msg.Channel)
		h.mu.RLock()
		clients := h.clients[userID]
		h.mu.RUnlock()
		for client := range clients {
			select {
			case client.Send <- []byte(msg.Payload):
			default:
			}
		}
	}
}

func redisChannel(userID string) string {
	return "notify:" + userID + ":inbox"
}

func userIDFromChannel(ch string) string {
	// notify:{user}:inbox
	const prefix = "notify:"
	const suffix = ":inbox"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
