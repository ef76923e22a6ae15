package models

import "time"

// Product is a catalog item owned by one restaurant-front user.
type Product struct {
	ID      int64   `db:"id" json:"id"`
	Name    string  `db:"name" json:"name"`
	Price   float64 `db:"price" json:"price"`
	Estatus string  `db:"estatus" json:"estatus"`
	UserID  int64   `db:"user_id" json:"user"`
}

// Order represents a pedido: a customer request with a lifecycle status,
// contact phone, classification type and free-text comment.
type Order struct {
	ID        int64     `db:"id" json:"id"`
	Phone     string    `db:"phone" json:"phone"`
	Estatus   string    `db:"estatus" json:"estatus"`
	Type      string    `db:"type" json:"type"`
	Comentary string    `db:"comentary" json:"comentary"`
	UserID    int64     `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// OrderProductLink is one row of the order/product association table.
// Duplicate (order, product) pairs are allowed; each row is one item unit.
type OrderProductLink struct {
	ID        int64 `db:"id" json:"id"`
	OrderID   int64 `db:"order_id" json:"order_id"`
	ProductID int64 `db:"product_id" json:"product_id"`
}

// InstanceUser maps a restaurant-front user to the URL of its instance.
type InstanceUser struct {
	ID     int64  `db:"id" json:"id"`
	URL    string `db:"url" json:"url"`
	UserID int64  `db:"user_id" json:"iduser"`
}

// OrderItem is one resolved item line inside a snapshot.
type OrderItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// OrderSnapshot is the denormalized view of an order plus its resolved
// item list. It is assembled fresh on every read and mutation, used both
// as API response and realtime broadcast payload, and never persisted.
type OrderSnapshot struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"user_id"`
	Phone     string      `json:"phone"`
	Type      string      `json:"type"`
	Estatus   string      `json:"estatus"`
	Comentary string      `json:"comentary"`
	Items     []OrderItem `json:"items"`
}

// Well-known order statuses. The stored value is free text; these cover
// the lifecycle the clients understand. The initial status assigned at
// creation time comes from configuration, not from these constants.
const (
	OrderStatusNew        = "Nuevo"
	OrderStatusInProgress = "en_proceso"
	OrderStatusCompleted  = "completado"
	OrderStatusCancelled  = "cancelado"
)
