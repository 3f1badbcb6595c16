// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/shopfront/internal/platform/config"
	redisclient "github.com/taibuivan/shopfront/internal/platform/redis"
)

// Open builds the [Store] selected by STORAGE_DRIVER.
//
// The returned close function releases the backing connection, if any.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StorageDriver {
	case config.StorageMemory:
		return NewMemoryStore(), noop, nil

	case config.StorageFile:
		store, err := NewFileStore(cfg.StoragePath, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("storage_opened", slog.String("driver", cfg.StorageDriver), slog.String("path", store.Path()))
		return store, noop, nil

	case config.StorageRedis:
		client, err := redisclient.NewClient(ctx, cfg.RedisURL, logger)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStore(client, cfg.StorageNamespace), client.Close, nil
	}

	return nil, nil, fmt.Errorf("storage: unknown driver %q", cfg.StorageDriver)
}
