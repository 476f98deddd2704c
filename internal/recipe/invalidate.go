// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/cookbook/internal/platform/constants"
)

// # Invalidation Events

// Action names the mutation carried by an [Event].
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event tells downstream caches that a recipe changed.
type Event struct {
	RecipeID   string    `json:"recipe_id"`
	Action     Action    `json:"action"`
	Category   string    `json:"category,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Invalidator publishes recipe mutation events.
type Invalidator interface {
	Invalidate(context context.Context, event Event) error
}

// RedisInvalidator publishes events on a Redis Pub/Sub channel.
type RedisInvalidator struct {
	client  *redis.Client
	channel string
}

// NewRedisInvalidator creates an [Invalidator] publishing to the recipe channel.
func NewRedisInvalidator(client *redis.Client) *RedisInvalidator {
	return &RedisInvalidator{client: client, channel: constants.RedisChannelRecipeInvalidated}
}

// Invalidate implements [Invalidator].
func (invalidator *RedisInvalidator) Invalidate(context context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("redis_recipe_invalidate_encode_failed: %w", err)
	}

	if err := invalidator.client.Publish(context, invalidator.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis_recipe_invalidate_publish_failed: %w", err)
	}
	return nil
}
