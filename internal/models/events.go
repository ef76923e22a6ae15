package models

import "time"

// Realtime event names pushed over the websocket channel. The names are
// part of the wire contract with the restaurant-front clients.
const (
	RealtimeOrderCreated = "nuevo_pedido"
	RealtimeOrderUpdated = "actualizar_pedido"
)

// RealtimeEvent is one frame on the realtime channel.
type RealtimeEvent struct {
	Event   string         `json:"event"`
	Payload *OrderSnapshot `json:"payload"`
}

// Event types for the outbound Kafka order stream.
const (
	EventTypeOrderCreated = "ORDER_CREATED"
	EventTypeOrderUpdated = "ORDER_UPDATED"
)

// BaseEvent contains common fields for all stream events.
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderEvent is published to the order stream after every committed
// mutation. The payload is the same snapshot the realtime channel sees.
type OrderEvent struct {
	BaseEvent
	Order *OrderSnapshot `json:"order"`
}
