package services

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"go.uber.org/zap"

	"blogaulas/metrics"
	"blogaulas/models"
)

const (
	EventPostCreated    = "post_created"
	EventPostUpdated    = "post_updated"
	EventPostDeleted    = "post_deleted"
	EventCommentCreated = "comment_created"
	EventCommentUpdated = "comment_updated"
	EventCommentDeleted = "comment_deleted"
)

// Relay carries feed payloads between server instances.
type Relay interface {
	Publish(payload []byte) error
	Subscribe(ctx context.Context, deliver func([]byte)) error
}

type HubService struct {
	hub     *models.Hub
	relay   Relay
	log     *zap.Logger
	clients atomic.Int64
	done    chan struct{}
}

// NewHubService builds the feed hub. relay may be nil for a single instance.
func NewHubService(relay Relay, log *zap.Logger) *HubService {
	return &HubService{hub: models.NewHub(), relay: relay, log: log, done: make(chan struct{})}
}

func (h *HubService) GetHub() *models.Hub {
	return h.hub
}

func (h *HubService) ClientCount() int {
	return int(h.clients.Load())
}

// Start runs the hub loop and, with a relay, the subscription that feeds it.
func (h *HubService) Start(ctx context.Context) {
	go h.Run(ctx)
	if h.relay != nil {
		go func() {
			if err := h.relay.Subscribe(ctx, h.enqueue); err != nil && ctx.Err() == nil {
				h.log.Error("feed relay subscription ended", zap.Error(err))
			}
		}()
	}
}

func (h *HubService) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.hub.Register:
			h.registerClient(client)

		case client := <-h.hub.Unregister:
			h.unregisterClient(client)

		case message := <-h.hub.Broadcast:
			h.broadcastToAll(message)

		case <-ctx.Done():
			for client := range h.hub.Clients {
				h.unregisterClient(client)
			}
			return
		}
	}
}

// Register adds a client. After the hub stopped the client is closed instead.
func (h *HubService) Register(client *models.Client) {
	select {
	case h.hub.Register <- client:
	case <-h.done:
		close(client.Send)
	}
}

func (h *HubService) Unregister(client *models.Client) {
	select {
	case h.hub.Unregister <- client:
	case <-h.done:
	}
}

func (h *HubService) registerClient(client *models.Client) {
	h.hub.Clients[client] = true
	h.setCount()
	h.log.Debug("feed client registered", zap.String("client", client.ID), zap.String("username", client.Username))
}

func (h *HubService) unregisterClient(client *models.Client) {
	if _, ok := h.hub.Clients[client]; ok {
		delete(h.hub.Clients, client)
		close(client.Send)
		h.setCount()
		h.log.Debug("feed client unregistered", zap.String("client", client.ID))
	}
}

func (h *HubService) broadcastToAll(message []byte) {
	for client := range h.hub.Clients {
		select {
		case client.Send <- message:
		default:
			h.log.Warn("dropping slow feed client", zap.String("client", client.ID))
			h.unregisterClient(client)
		}
	}
}

func (h *HubService) setCount() {
	n := int64(len(h.hub.Clients))
	h.clients.Store(n)
	metrics.FeedClients.Set(float64(n))
}

// Publish implements Publisher. It never blocks the caller.
func (h *HubService) Publish(eventType string, data interface{}) {
	payload, err := json.Marshal(models.WSMessage{Type: eventType, Data: data})
	if err != nil {
		h.log.Error("marshal feed event", zap.String("type", eventType), zap.Error(err))
		return
	}

	if h.relay != nil {
		err := h.relay.Publish(payload)
		if err == nil {
			return
		}
		h.log.Warn("feed relay publish failed, delivering locally", zap.Error(err))
	}
	h.enqueue(payload)
}

func (h *HubService) enqueue(payload []byte) {
	select {
	case h.hub.Broadcast <- payload:
	default:
		h.log.Warn("feed broadcast queue full, event dropped")
	}
}
