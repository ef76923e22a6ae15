package broker

import (
	"context"
	"fmt"
	"time"

	"pedidos-service/internal/models"

	"github.com/google/uuid"
)

// EventPublisher emits committed order mutations onto the outbound
// order stream. Messages are keyed by order so downstream consumers see
// each order's events in commit order.
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishOrderEvent wraps a snapshot in an event envelope and writes it
// to the order topic.
func (ep *EventPublisher) PublishOrderEvent(ctx context.Context, eventType string, snapshot *models.OrderSnapshot) error {
	event := &models.OrderEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: eventType,
			Timestamp: time.Now(),
		},
		Order: snapshot,
	}

	key := fmt.Sprintf("order-%d", snapshot.ID)
	return ep.producer.PublishEvent(ctx, key, event)
}
