package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pedidos-service/internal/models"

	"github.com/go-redis/redis/v8"
)

const instanceKeyFmt = "instances:%d"

type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewClient creates a new Redis client used as the instance-URL cache.
func NewClient(addr, password string, db int, ttl time.Duration) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb, ttl: ttl}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// GetInstances returns a user's cached instance registrations. The
// second return is false on miss or on any cache error; callers fall
// back to the database either way.
func (c *Client) GetInstances(ctx context.Context, userID int64) ([]models.InstanceUser, bool) {
	raw, err := c.rdb.Get(ctx, fmt.Sprintf(instanceKeyFmt, userID)).Bytes()
	if err != nil {
		return nil, false
	}

	var instances []models.InstanceUser
	if err := json.Unmarshal(raw, &instances); err != nil {
		return nil, false
	}
	return instances, true
}

// SetInstances caches a user's instance registrations with the client TTL.
func (c *Client) SetInstances(ctx context.Context, userID int64, instances []models.InstanceUser) error {
	raw, err := json.Marshal(instances)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, fmt.Sprintf(instanceKeyFmt, userID), raw, c.ttl).Err()
}

// InvalidateInstances drops a user's cached registrations.
func (c *Client) InvalidateInstances(ctx context.Context, userID int64) error {
	return c.rdb.Del(ctx, fmt.Sprintf(instanceKeyFmt, userID)).Err()
}
