package service

import (
	"context"
	"fmt"

	"pedidos-service/internal/models"
	"pedidos-service/internal/store"
	"pedidos-service/internal/util"

	"go.uber.org/zap"
)

// CatalogService is the thin collaborator owning product records.
type CatalogService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store *store.Store) *CatalogService {
	return &CatalogService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// ProductRequest is the body of POST /products/ and PUT /products/{id}.
type ProductRequest struct {
	Name    string  `json:"name" binding:"required"`
	Price   float64 `json:"price" binding:"gte=0"`
	Estatus string  `json:"estatus"`
	UserID  int64   `json:"user" binding:"required"`
}

// CreateProduct inserts a new catalog product.
func (s *CatalogService) CreateProduct(ctx context.Context, req *ProductRequest) (*models.Product, error) {
	product := &models.Product{
		Name:    req.Name,
		Price:   req.Price,
		Estatus: req.Estatus,
		UserID:  req.UserID,
	}

	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	util.ProductsCreatedTotal.Inc()
	s.logger.Info("Product created",
		zap.Int64("product_id", product.ID),
		zap.Int64("user_id", product.UserID))
	return product, nil
}

// ListProducts returns all products owned by a user.
func (s *CatalogService) ListProducts(ctx context.Context, userID int64) ([]models.Product, error) {
	return s.store.GetProductsByUser(ctx, userID)
}

// UpdateProduct replaces a product's name, price and status in place.
// The owning user is deliberately left unchanged.
func (s *CatalogService) UpdateProduct(ctx context.Context, productID int64, req *ProductRequest) (*models.Product, error) {
	product := &models.Product{
		ID:      productID,
		Name:    req.Name,
		Price:   req.Price,
		Estatus: req.Estatus,
	}

	if err := s.store.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product updated", zap.Int64("product_id", product.ID))
	return product, nil
}
