// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps values in Redis under a namespace prefix, so several
// terminals (or a kiosk fleet) can share one session and cart.
type RedisStore struct {
	client    *redis.Client
	namespace string
}

// NewRedisStore creates a [RedisStore]. Keys are stored as "<namespace>:<key>".
func NewRedisStore(client *redis.Client, namespace string) *RedisStore {
	return &RedisStore{client: client, namespace: namespace}
}

// Get implements [Store].
func (store *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := store.client.Get(ctx, store.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("storage_redis_get_failed: %w", err)
	}
	return value, true, nil
}

// Set implements [Store]. Values do not expire.
func (store *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := store.client.Set(ctx, store.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("storage_redis_set_failed: %w", err)
	}
	return nil
}

// Delete implements [Store].
func (store *RedisStore) Delete(ctx context.Context, key string) error {
	if err := store.client.Del(ctx, store.key(key)).Err(); err != nil {
		return fmt.Errorf("storage_redis_delete_failed: %w", err)
	}
	return nil
}

func (store *RedisStore) key(key string) string {
	if store.namespace == "" {
		return key
	}
	return store.namespace + ":" + key
}
