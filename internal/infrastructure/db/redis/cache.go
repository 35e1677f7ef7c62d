package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/swiftship/courier-portal/internal/core/ports"
)

const trackingTTL = time.Minute

// TrackingCache caches the public tracking view of a consignment.
// Key format: track:<consignment_number>
type TrackingCache struct {
	client *redis.Client
}

// NewTrackingCache creates a TrackingCache wrapping the given Redis client.
func NewTrackingCache(client *redis.Client) *TrackingCache {
	return &TrackingCache{client: client}
}

// Get returns the cached view, or (nil, nil) on a miss.
func (c *TrackingCache) Get(ctx context.Context, consignmentNumber string) (*ports.TrackingResult, error) {
	raw, err := c.client.Get(ctx, c.key(consignmentNumber)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("tracking cache get: %w", err)
	}

	var result ports.TrackingResult
	if err := json.Unmarshal(raw, &result); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten.
		return nil, nil
	}
	return &result, nil
}

// Set stores the view for trackingTTL.
func (c *TrackingCache) Set(ctx context.Context, consignmentNumber string, result *ports.TrackingResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("tracking cache set: %w", err)
	}
	return c.client.Set(ctx, c.key(consignmentNumber), raw, trackingTTL).Err()
}

// Invalidate removes the cached view, typically after an applied event.
func (c *TrackingCache) Invalidate(ctx context.Context, consignmentNumber string) error {
	return c.client.Del(ctx, c.key(consignmentNumber)).Err()
}

func (c *TrackingCache) key(consignmentNumber string) string {
	return "track:" + consignmentNumber
}
