// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package token holds the bearer token of the current session.
//
// The token is an opaque string kept raw in its own storage slot. It is
// written after a successful login or OTP verification, read on every
// authenticated request, and deleted on logout or on a 401.
package token

import (
	"context"
	"log/slog"

	"github.com/taibuivan/shopfront/internal/platform/constants"
	"github.com/taibuivan/shopfront/internal/storage"
)

// Store reads and writes the bearer token. No validation happens here.
type Store struct {
	store  storage.Store
	logger *slog.Logger
}

// NewStore binds a token store to the given storage medium.
func NewStore(store storage.Store, logger *slog.Logger) *Store {
	return &Store{store: store, logger: logger}
}

// Token returns the stored token, or false when none is stored.
func (tokens *Store) Token(ctx context.Context) (string, bool) {
	value, ok, err := tokens.store.Get(ctx, constants.StorageKeyToken)
	if err != nil {
		tokens.logger.Warn("token_read_failed", slog.Any("error", err))
		return "", false
	}
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// SetToken stores token, replacing any previous one.
func (tokens *Store) SetToken(ctx context.Context, token string) error {
	return tokens.store.Set(ctx, constants.StorageKeyToken, token)
}

// RemoveToken deletes the stored token.
func (tokens *Store) RemoveToken(ctx context.Context) error {
	return tokens.store.Delete(ctx, constants.StorageKeyToken)
}
