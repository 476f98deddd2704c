// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis provides the shared go-redis client.

CookBook uses Redis for short-lived coordination only: the verification
resend cooldown (SET NX with TTL) and the recipe invalidation channel
(PUBLISH). Nothing stored here is authoritative; PostgreSQL is.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultPoolSize = 10
	dialTimeout     = 3 * time.Second
	readTimeout     = 2 * time.Second
	writeTimeout    = 2 * time.Second
	pingTimeout     = 2 * time.Second
)

// NewClient parses a Redis URL and returns a client that has answered a PING.
//
// # Parameters
//   - context: Context for the initial ping.
//   - redisURL: redis:// or rediss:// URL.
//   - poolSize: Maximum socket connections; zero selects the default.
//   - logger: Structured logger for connection events.
func NewClient(context stdctx.Context, redisURL string, poolSize int, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	options.PoolSize = poolSize
	options.MinIdleConns = max(1, poolSize/5)
	options.MaxIdleConns = max(options.MinIdleConns, poolSize/2)

	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout

	client := redis.NewClient(options)

	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis client connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Int("pool_size", options.PoolSize),
	)

	return client, nil
}

// Ping verifies that the Redis client is healthy.
func Ping(context stdctx.Context, client *redis.Client) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}

	return nil
}
