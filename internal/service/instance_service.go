package service

import (
	"context"
	"fmt"

	"pedidos-service/internal/models"
	"pedidos-service/internal/redisclient"
	"pedidos-service/internal/store"
	"pedidos-service/internal/util"

	"go.uber.org/zap"
)

// InstanceService owns the instance URL registrations the restaurant
// fronts read on boot. Reads go through a Redis cache since the records
// change rarely; writes invalidate it.
type InstanceService struct {
	store  *store.Store
	cache  *redisclient.Client
	logger *zap.Logger
}

// NewInstanceService creates a new instance service
func NewInstanceService(store *store.Store, cache *redisclient.Client) *InstanceService {
	return &InstanceService{
		store:  store,
		cache:  cache,
		logger: util.GetLogger(),
	}
}

// InstanceRequest is the body of POST /instance_user/ and PUT /instance_user/{id}.
type InstanceRequest struct {
	URL    string `json:"url" binding:"required"`
	UserID int64  `json:"iduser" binding:"required"`
}

// CreateInstance registers a new instance URL for a user.
func (s *InstanceService) CreateInstance(ctx context.Context, req *InstanceRequest) (*models.InstanceUser, error) {
	instance := &models.InstanceUser{URL: req.URL, UserID: req.UserID}

	if err := s.store.CreateInstanceUser(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to create instance: %w", err)
	}

	s.invalidate(ctx, req.UserID)
	s.logger.Info("Instance registered",
		zap.Int64("instance_id", instance.ID),
		zap.Int64("user_id", instance.UserID))
	return instance, nil
}

// ListInstances returns a user's instance registrations, served from
// cache when possible. Cache failures fall through to the database.
func (s *InstanceService) ListInstances(ctx context.Context, userID int64) ([]models.InstanceUser, error) {
	if s.cache != nil {
		if instances, ok := s.cache.GetInstances(ctx, userID); ok {
			return instances, nil
		}
	}

	instances, err := s.store.GetInstancesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetInstances(ctx, userID, instances); err != nil {
			s.logger.Warn("Failed to cache instances",
				zap.Int64("user_id", userID), zap.Error(err))
		}
	}
	return instances, nil
}

// UpdateInstance replaces a registration's url and owning user.
func (s *InstanceService) UpdateInstance(ctx context.Context, instanceID int64, req *InstanceRequest) (*models.InstanceUser, error) {
	instance := &models.InstanceUser{
		ID:     instanceID,
		URL:    req.URL,
		UserID: req.UserID,
	}

	if err := s.store.UpdateInstanceUser(ctx, instance); err != nil {
		return nil, err
	}

	s.invalidate(ctx, req.UserID)
	s.logger.Info("Instance updated", zap.Int64("instance_id", instanceID))
	return instance, nil
}

func (s *InstanceService) invalidate(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateInstances(ctx, userID); err != nil {
		s.logger.Warn("Failed to invalidate instance cache",
			zap.Int64("user_id", userID), zap.Error(err))
	}
}
