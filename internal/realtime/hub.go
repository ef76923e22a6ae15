package realtime

import (
	"sync"

	"pedidos-service/internal/models"
	"pedidos-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// subscriberBuffer bounds how far one subscriber may lag behind the
// publish stream before its events start getting dropped.
const subscriberBuffer = 32

// Subscriber is one live realtime connection registered with the hub.
type Subscriber struct {
	ID     string
	events chan models.RealtimeEvent
}

// Events returns the channel the hub delivers events on. The channel is
// closed when the subscriber is unsubscribed.
func (s *Subscriber) Events() <-chan models.RealtimeEvent {
	return s.events
}

// Hub fans out order snapshot events to every live subscriber. Delivery
// is best effort: no backlog for late joiners, no replay, and a full
// subscriber buffer means that subscriber misses the event. Publishes
// are serialized under the hub lock, so every subscriber observes the
// same global event order.
type Hub struct {
	mu          sync.Mutex
	subscribers map[string]*Subscriber
	logger      *zap.Logger
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]*Subscriber),
		logger:      util.GetLogger(),
	}
}

// Subscribe registers a new subscriber. No historical events are delivered.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{
		ID:     uuid.New().String(),
		events: make(chan models.RealtimeEvent, subscriberBuffer),
	}

	h.mu.Lock()
	h.subscribers[sub.ID] = sub
	h.mu.Unlock()

	util.RealtimeSubscribers.Inc()
	h.logger.Info("Subscriber registered", zap.String("subscriber_id", sub.ID))
	return sub
}

// Unsubscribe deregisters a subscriber and closes its event channel.
// Calling it more than once for the same subscriber is harmless.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subscribers[sub.ID]; !ok {
		return
	}
	delete(h.subscribers, sub.ID)
	close(sub.events)

	util.RealtimeSubscribers.Dec()
	h.logger.Info("Subscriber removed", zap.String("subscriber_id", sub.ID))
}

// Publish delivers (event, snapshot) to every subscriber registered at
// the moment of the call. A subscriber whose buffer is full is skipped
// rather than blocking the publisher.
func (h *Hub) Publish(event string, snapshot *models.OrderSnapshot) {
	ev := models.RealtimeEvent{Event: event, Payload: snapshot}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.subscribers {
		select {
		case sub.events <- ev:
			util.BroadcastDeliveredTotal.WithLabelValues(event).Inc()
		default:
			util.BroadcastDroppedTotal.WithLabelValues(event).Inc()
			h.logger.Warn("Dropping event for slow subscriber",
				zap.String("subscriber_id", sub.ID),
				zap.String("event", event),
				zap.Int64("order_id", snapshot.ID))
		}
	}
}

// Len reports the number of live subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Close unsubscribes everyone, terminating their event channels.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, sub := range h.subscribers {
		delete(h.subscribers, id)
		close(sub.events)
		util.RealtimeSubscribers.Dec()
	}
}
