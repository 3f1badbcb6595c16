// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis connects the shared storage driver.

With STORAGE_DRIVER=redis the token, user snapshot, cart and preferences live
in Redis instead of a local file, so a session can follow the customer across
terminals.
*/
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limits for one interactive client.
const (
	poolSize     = 4
	dialTimeout  = 3 * time.Second
	ioTimeout    = 2 * time.Second
	pingTimeout  = 2 * time.Second
	pingAttempts = 3
	pingBackoff  = 200 * time.Millisecond
)

/*
NewClient parses redisURL and returns a client that answered a PING.

A Redis that is still starting gets a few attempts before giving up.

Returns:
  - *redis.Client: The connected client; the caller closes it
  - error: Invalid URL, or no PING answer
*/
func NewClient(ctx context.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	options.PoolSize = poolSize
	options.DialTimeout = dialTimeout
	options.ReadTimeout = ioTimeout
	options.WriteTimeout = ioTimeout

	client := redis.NewClient(options)

	for attempt := 1; ; attempt++ {
		err = Ping(ctx, client)
		if err == nil {
			break
		}
		if attempt == pingAttempts || ctx.Err() != nil {
			_ = client.Close()
			return nil, err
		}

		logger.Debug("redis_ping_retry", slog.Int("attempt", attempt), slog.Any("error", err))
		select {
		case <-ctx.Done():
		case <-time.After(pingBackoff * time.Duration(attempt)):
		}
	}

	logger.Debug("redis_client_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
	)
	return client, nil
}

// Ping checks that client answers within a short deadline.
func Ping(ctx context.Context, client *redis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}
	return nil
}
