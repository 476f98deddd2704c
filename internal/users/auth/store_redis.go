// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/cookbook/internal/platform/constants"
)

// # Cooldown Store

// RedisCooldownStore implements CooldownStore using Redis SET NX.
type RedisCooldownStore struct {
	client *redis.Client
	prefix string
}

// NewCooldownStore creates a new Redis-backed CooldownStore for verification resends.
func NewCooldownStore(client *redis.Client) *RedisCooldownStore {
	return &RedisCooldownStore{client: client, prefix: constants.RedisPrefixVerifyCooldown}
}

/*
Acquire claims the key for ttl.

Description: SET NX is atomic, so two concurrent resends for the same
address cannot both pass.

Parameters:
  - context: context.Context
  - key: string
  - ttl: time.Duration

Returns:
  - bool: true when the caller owns the window
  - error: Execution errors
*/
func (store *RedisCooldownStore) Acquire(context context.Context, key string, ttl time.Duration) (bool, error) {
	acquired, err := store.client.SetNX(context, store.prefix+key, time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis_cooldown_acquire_failed: %w", err)
	}
	return acquired, nil
}
