// Package stream pushes trail events to websocket subscribers, one channel
// per trail. A redis pub/sub bridge fans events out across instances when
// redis is configured.
package stream

import (
	"context"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

type Hub struct {
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	TrailID string
	Send      chan []byte
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

func (h *Hub) Register(trailID string) *Client {
	client := &Client{
		TrailID: trailID,
		Send:      make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[trailID] == nil {
		h.clients[trailID] = map[*Client]struct{}{}
	}
	h.clients[trailID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if trailClients, ok := h.clients[client.TrailID]; ok {
		delete(trailClients, client)
		if len(trailClients) == 0 {
			delete(h.clients, client.TrailID)
		}
	}
	close(client.Send)
}

func (h *Hub) Broadcast(trailID string, payload []byte) {
	h.mu.RLock()
	clients := h.clients[trailID]
	h.mu.RUnlock()

	for client := range clients {
		select {
		case client.Send <- payload:
		default:
		}
	}

	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(trailID), payload).Err()
		if err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.Subscribe(ctx, "trail:*:broadcast")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		trailID := trailIDFromChannel(msg.Channel)
		h.mu.RLock()
		clients := h.clients[trailID]
		h.mu.RUnlock()
		for client := range clients {
			select {
			case client.Send <- []byte(msg.Payload):
			default:
			}
		}
	}
}

func redisChannel(trailID string) string {
	return "trail:" + trailID + ":broadcast"
}

func trailIDFromChannel(ch string) string {
	// trail:{id}:broadcast
	const prefix = "trail:"
	const suffix = ":broadcast"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
