package store

import (
	"context"
	"fmt"

	"pedidos-service/internal/models"
)

// CreateInstanceUser inserts an instance URL registration.
func (s *Store) CreateInstanceUser(ctx context.Context, instance *models.InstanceUser) error {
	query := `
		INSERT INTO instance_user (url, user_id)
		VALUES ($1, $2)
		RETURNING id`

	return s.db.GetContext(ctx, &instance.ID, query, instance.URL, instance.UserID)
}

// GetInstancesByUser retrieves all instance registrations for a user.
func (s *Store) GetInstancesByUser(ctx context.Context, userID int64) ([]models.InstanceUser, error) {
	var instances []models.InstanceUser
	err := s.db.SelectContext(ctx, &instances,
		"SELECT * FROM instance_user WHERE user_id = $1 ORDER BY id", userID)
	return instances, err
}

// UpdateInstanceUser replaces the url and owning user of a registration.
func (s *Store) UpdateInstanceUser(ctx context.Context, instance *models.InstanceUser) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE instance_user SET url = $1, user_id = $2 WHERE id = $3",
		instance.URL, instance.UserID, instance.ID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("instance %d: %w", instance.ID, ErrNotFound)
	}
	return nil
}
