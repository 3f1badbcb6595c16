// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package storage provides the persisted key-value slots the storefront client
keeps between runs: the bearer token, the cached user snapshot, the cart, and
UI preferences.

# Architecture

  - Store: raw string values by key. Implementations: memory, file, redis.
  - Slot: a typed view over one key with JSON encoding and corrupt-value
    tolerance. Controllers only ever see slots.

Values are small and written from discrete user actions, so every write goes
straight through to the backing medium.
*/
package storage

import (
	"context"
	"sync"
)

// Store is the contract for a persisted string key-value medium.
type Store interface {
	/*
		Get returns the value stored under key.

		Returns:
		  - string: The stored value
		  - bool: false when the key is absent
		  - error: Medium failures (never returned for a missing key)
	*/
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// # Memory Store

// MemoryStore keeps values in process memory. Used by tests and ephemeral runs.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get implements [Store].
func (store *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	value, ok := store.values[key]
	return value, ok, nil
}

// Set implements [Store].
func (store *MemoryStore) Set(_ context.Context, key, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.values[key] = value
	return nil
}

// Delete implements [Store].
func (store *MemoryStore) Delete(_ context.Context, key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.values, key)
	return nil
}
