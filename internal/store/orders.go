package store

import (
	"context"
	"database/sql"
	"fmt"

	"pedidos-service/internal/models"

	"github.com/jmoiron/sqlx"
)

// CreateOrder inserts an order row plus one association link per product
// ID as a single transaction. Either every row becomes visible or none.
// The order's ID and timestamps are filled in on success.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order, productIDs []int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (phone, estatus, type, comentary, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err = tx.GetContext(ctx, order, query,
		order.Phone, order.Estatus, order.Type, order.Comentary, order.UserID)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	if err := insertLinks(ctx, tx, order.ID, productIDs); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateOrder updates an order and, when replaceItems is true, rewrites
// its whole association set (delete all links, insert the new list), all
// in one transaction. An empty comment leaves the stored comment alone.
// Returns ErrNotFound without writing anything if the order is missing.
func (s *Store) UpdateOrder(ctx context.Context, orderID int64, status, comment string, productIDs []int64, replaceItems bool) (*models.Order, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var order models.Order
	err = tx.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1 FOR UPDATE", orderID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	order.Estatus = status
	if comment != "" {
		order.Comentary = comment
	}

	err = tx.GetContext(ctx, &order, `
		UPDATE orders SET estatus = $1, comentary = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING *`,
		order.Estatus, order.Comentary, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if replaceItems {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM order_products WHERE order_id = $1", orderID); err != nil {
			return nil, fmt.Errorf("failed to clear order links: %w", err)
		}
		if err := insertLinks(ctx, tx, orderID, productIDs); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &order, nil
}

func insertLinks(ctx context.Context, tx *sqlx.Tx, orderID int64, productIDs []int64) error {
	for _, productID := range productIDs {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO order_products (order_id, product_id) VALUES ($1, $2)",
			orderID, productID)
		if err != nil {
			return fmt.Errorf("failed to link product %d: %w", productID, err)
		}
	}
	return nil
}

// GetOrderByID retrieves an order by ID
func (s *Store) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrdersByUser retrieves a user's orders, newest first.
func (s *Store) GetOrdersByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE user_id = $1 ORDER BY id DESC", userID)
	return orders, err
}

// GetLinksByOrderID retrieves an order's association links in insertion
// order, which preserves the item order the client supplied.
func (s *Store) GetLinksByOrderID(ctx context.Context, orderID int64) ([]models.OrderProductLink, error) {
	var links []models.OrderProductLink
	err := s.db.SelectContext(ctx, &links,
		"SELECT * FROM order_products WHERE order_id = $1 ORDER BY id", orderID)
	return links, err
}

// GetLinksByOrderIDs retrieves the links of many orders at once.
func (s *Store) GetLinksByOrderIDs(ctx context.Context, orderIDs []int64) ([]models.OrderProductLink, error) {
	if len(orderIDs) == 0 {
		return []models.OrderProductLink{}, nil
	}

	query, args, err := sqlx.In("SELECT * FROM order_products WHERE order_id IN (?) ORDER BY id", orderIDs)
	if err != nil {
		return nil, err
	}
	query = s.db.Rebind(query)

	var links []models.OrderProductLink
	err = s.db.SelectContext(ctx, &links, query, args...)
	return links, err
}
