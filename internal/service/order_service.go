package service

import (
	"context"
	"fmt"
	"time"

	"pedidos-service/internal/broker"
	"pedidos-service/internal/models"
	"pedidos-service/internal/realtime"
	"pedidos-service/internal/store"
	"pedidos-service/internal/util"

	"go.uber.org/zap"
)

// OrderService is the mutation core: it creates and updates orders
// together with their product associations, assembles the denormalized
// snapshot, and broadcasts it to live subscribers after each commit.
type OrderService struct {
	store         *store.Store
	hub           *realtime.Hub
	stream        *broker.EventPublisher
	initialStatus string
	logger        *zap.Logger
}

// NewOrderService creates a new order service. initialStatus is the
// lifecycle value stamped on every freshly created order.
func NewOrderService(
	store *store.Store,
	hub *realtime.Hub,
	stream *broker.EventPublisher,
	initialStatus string,
) *OrderService {
	return &OrderService{
		store:         store,
		hub:           hub,
		stream:        stream,
		initialStatus: initialStatus,
		logger:        util.GetLogger(),
	}
}

// CreateOrderRequest is the body of POST /orders/{user_id}.
type CreateOrderRequest struct {
	Phone      string  `json:"phone" binding:"required"`
	Comentary  string  `json:"comentary"`
	Type       string  `json:"type" binding:"required"`
	ProductIDs []int64 `json:"productIds"`
}

// UpdateOrderRequest is the body of PUT /orders/{order_id}. A nil
// ProductIDs leaves the item set untouched; a present (even empty) list
// replaces it entirely.
type UpdateOrderRequest struct {
	Estatus    string   `json:"estatus" binding:"required"`
	Comentary  string   `json:"comentary"`
	ProductIDs *[]int64 `json:"productIds"`
}

// CreateOrder inserts the order row and one association link per product
// ID in a single transaction, then broadcasts the resulting snapshot as
// nuevo_pedido. The order's initial status is never client supplied.
//
// Product IDs that do not resolve to a catalog row are dropped from the
// snapshot's item list but their link rows are still written; see the
// schema notes on orphaned links.
func (s *OrderService) CreateOrder(ctx context.Context, userID int64, req *CreateOrderRequest) (*models.OrderSnapshot, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateOrder")
	defer span.End()

	order := &models.Order{
		Phone:     req.Phone,
		Estatus:   s.initialStatus,
		Type:      req.Type,
		Comentary: req.Comentary,
		UserID:    userID,
	}

	if err := s.store.CreateOrder(ctx, order, req.ProductIDs); err != nil {
		util.OrdersFailedTotal.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", userID),
		zap.Int("requested_items", len(req.ProductIDs)))

	snapshot, err := s.assembleSnapshot(ctx, order, req.ProductIDs)
	if err != nil {
		return nil, err
	}

	// Broadcast only after the transaction committed: subscribers must
	// never observe an event for data that is not durable yet.
	s.hub.Publish(models.RealtimeOrderCreated, snapshot)
	s.publishStream(ctx, models.EventTypeOrderCreated, snapshot)

	return snapshot, nil
}

// UpdateOrder replaces the order's status unconditionally, its comment
// only when a non-empty one is supplied, and its whole item set only
// when ProductIDs is present, all in one transaction. The fresh snapshot
// is broadcast as actualizar_pedido after commit. A missing order yields
// store.ErrNotFound with no write and no broadcast.
func (s *OrderService) UpdateOrder(ctx context.Context, orderID int64, req *UpdateOrderRequest) (*models.OrderSnapshot, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.UpdateOrder")
	defer span.End()

	var (
		replaceItems bool
		productIDs   []int64
	)
	if req.ProductIDs != nil {
		replaceItems = true
		productIDs = *req.ProductIDs
	}

	order, err := s.store.UpdateOrder(ctx, orderID, req.Estatus, req.Comentary, productIDs, replaceItems)
	if err != nil {
		util.OrdersFailedTotal.WithLabelValues("update_failed").Inc()
		return nil, err
	}

	util.OrdersUpdatedTotal.Inc()
	s.logger.Info("Order updated",
		zap.Int64("order_id", order.ID),
		zap.String("estatus", order.Estatus),
		zap.Bool("items_replaced", replaceItems))

	if !replaceItems {
		productIDs, err = s.linkedProductIDs(ctx, orderID)
		if err != nil {
			return nil, err
		}
	}

	snapshot, err := s.assembleSnapshot(ctx, order, productIDs)
	if err != nil {
		return nil, err
	}

	s.hub.Publish(models.RealtimeOrderUpdated, snapshot)
	s.publishStream(ctx, models.EventTypeOrderUpdated, snapshot)

	return snapshot, nil
}

// ListOrders returns a user's orders newest first, each with its item
// list resolved against the catalog at read time.
func (s *OrderService) ListOrders(ctx context.Context, userID int64) ([]models.OrderSnapshot, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.ListOrders")
	defer span.End()

	orders, err := s.store.GetOrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orderIDs := make([]int64, len(orders))
	for i := range orders {
		orderIDs[i] = orders[i].ID
	}

	links, err := s.store.GetLinksByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load order links: %w", err)
	}

	idsByOrder := make(map[int64][]int64, len(orders))
	allProductIDs := make([]int64, 0, len(links))
	for _, link := range links {
		idsByOrder[link.OrderID] = append(idsByOrder[link.OrderID], link.ProductID)
		allProductIDs = append(allProductIDs, link.ProductID)
	}

	products, err := s.store.GetProductsByIDs(ctx, allProductIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}
	byID := productIndex(products)

	snapshots := make([]models.OrderSnapshot, 0, len(orders))
	for i := range orders {
		snapshots = append(snapshots, models.OrderSnapshot{
			ID:        orders[i].ID,
			UserID:    orders[i].UserID,
			Phone:     orders[i].Phone,
			Type:      orders[i].Type,
			Estatus:   orders[i].Estatus,
			Comentary: orders[i].Comentary,
			Items:     buildItems(idsByOrder[orders[i].ID], byID),
		})
	}
	return snapshots, nil
}

// assembleSnapshot performs the join-then-project step: resolve each
// product ID against the catalog right now and emit one item per
// resolvable ID, preserving input order and duplicates.
func (s *OrderService) assembleSnapshot(ctx context.Context, order *models.Order, productIDs []int64) (*models.OrderSnapshot, error) {
	start := time.Now()
	defer func() {
		util.SnapshotAssemblyLatency.Observe(time.Since(start).Seconds())
	}()

	products, err := s.store.GetProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}

	return &models.OrderSnapshot{
		ID:        order.ID,
		UserID:    order.UserID,
		Phone:     order.Phone,
		Type:      order.Type,
		Estatus:   order.Estatus,
		Comentary: order.Comentary,
		Items:     buildItems(productIDs, productIndex(products)),
	}, nil
}

// linkedProductIDs reads an order's current association rows, in the
// order they were inserted.
func (s *OrderService) linkedProductIDs(ctx context.Context, orderID int64) ([]int64, error) {
	links, err := s.store.GetLinksByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order links: %w", err)
	}
	ids := make([]int64, len(links))
	for i, link := range links {
		ids[i] = link.ProductID
	}
	return ids, nil
}

// publishStream emits the mutation to the outbound Kafka order stream.
// Stream delivery is best effort and never fails the mutation.
func (s *OrderService) publishStream(ctx context.Context, eventType string, snapshot *models.OrderSnapshot) {
	if s.stream == nil {
		return
	}
	if err := s.stream.PublishOrderEvent(ctx, eventType, snapshot); err != nil {
		util.StreamPublishFailedTotal.Inc()
		s.logger.Error("Failed to publish order stream event",
			zap.String("event_type", eventType),
			zap.Int64("order_id", snapshot.ID),
			zap.Error(err))
	}
}

// buildItems projects the snapshot item list from an ordered product ID
// sequence. Unresolvable IDs are omitted, not represented as holes.
func buildItems(productIDs []int64, products map[int64]*models.Product) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(productIDs))
	for _, id := range productIDs {
		product, ok := products[id]
		if !ok {
			util.UnresolvedProductsTotal.Inc()
			continue
		}
		items = append(items, models.OrderItem{Name: product.Name, Price: product.Price})
	}
	return items
}

func productIndex(products []models.Product) map[int64]*models.Product {
	byID := make(map[int64]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID
}
