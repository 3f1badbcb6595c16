// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Slot is a typed, JSON-encoded view over a single key of a [Store].
//
// A value that no longer decodes (schema drift, manual edits, truncated
// writes) is logged, deleted, and reported as absent.
type Slot[T any] struct {
	store  Store
	key    string
	logger *slog.Logger
}

// NewSlot binds a typed slot to key.
func NewSlot[T any](store Store, key string, logger *slog.Logger) *Slot[T] {
	return &Slot[T]{store: store, key: key, logger: logger}
}

/*
Load returns the stored value.

Returns:
  - T: The decoded value, or the zero value
  - bool: false when absent, unreadable, or corrupt
*/
func (slot *Slot[T]) Load(ctx context.Context) (T, bool) {
	var value T

	raw, ok, err := slot.store.Get(ctx, slot.key)
	if err != nil {
		slot.logger.Warn("storage_slot_read_failed",
			slog.String("key", slot.key),
			slog.Any("error", err),
		)
		return value, false
	}
	if !ok {
		return value, false
	}

	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		slot.logger.Warn("storage_slot_corrupt_dropped",
			slog.String("key", slot.key),
			slog.Any("error", err),
		)
		if delErr := slot.store.Delete(ctx, slot.key); delErr != nil {
			slot.logger.Warn("storage_slot_delete_failed", slog.String("key", slot.key), slog.Any("error", delErr))
		}
		var zero T
		return zero, false
	}

	return value, true
}

// Save encodes value and stores it.
func (slot *Slot[T]) Save(ctx context.Context, value T) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage_slot_encode_failed: %w", err)
	}

	if err := slot.store.Set(ctx, slot.key, string(encoded)); err != nil {
		return fmt.Errorf("storage_slot_save_failed: %w", err)
	}
	return nil
}

// Clear removes the stored value.
func (slot *Slot[T]) Clear(ctx context.Context) error {
	if err := slot.store.Delete(ctx, slot.key); err != nil {
		return fmt.Errorf("storage_slot_clear_failed: %w", err)
	}
	return nil
}
