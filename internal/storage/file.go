// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps every key in one JSON object on disk.
//
// Writes go to a temporary file that is renamed over the original, so a crash
// mid-write leaves either the old or the new document. A document that cannot
// be parsed is treated as empty and overwritten on the next write.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

// NewFileStore creates a [FileStore] at path, creating parent directories.
func NewFileStore(path string, logger *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("storage_file_mkdir_failed: %w", err)
	}
	return &FileStore{path: path, logger: logger}, nil
}

// Path returns the backing file path.
func (store *FileStore) Path() string {
	return store.path
}

// Get implements [Store].
func (store *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	values, err := store.read()
	if err != nil {
		return "", false, err
	}

	value, ok := values[key]
	return value, ok, nil
}

// Set implements [Store].
func (store *FileStore) Set(_ context.Context, key, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	values, err := store.read()
	if err != nil {
		return err
	}

	values[key] = value
	return store.write(values)
}

// Delete implements [Store].
func (store *FileStore) Delete(_ context.Context, key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	values, err := store.read()
	if err != nil {
		return err
	}

	if _, ok := values[key]; !ok {
		return nil
	}

	delete(values, key)
	return store.write(values)
}

// read loads the document. Callers must hold mu.
func (store *FileStore) read() (map[string]string, error) {
	content, err := os.ReadFile(store.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage_file_read_failed: %w", err)
	}

	values := make(map[string]string)
	if len(content) == 0 {
		return values, nil
	}

	if err := json.Unmarshal(content, &values); err != nil {
		store.logger.Warn("storage_file_corrupt_reset",
			slog.String("path", store.path),
			slog.Any("error", err),
		)
		return make(map[string]string), nil
	}

	return values, nil
}

// write replaces the document atomically. Callers must hold mu.
func (store *FileStore) write(values map[string]string) error {
	content, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("storage_file_encode_failed: %w", err)
	}

	temp, err := os.CreateTemp(filepath.Dir(store.path), ".state-*.json")
	if err != nil {
		return fmt.Errorf("storage_file_temp_failed: %w", err)
	}
	tempName := temp.Name()

	if _, err := temp.Write(content); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempName)
		return fmt.Errorf("storage_file_write_failed: %w", err)
	}

	if err := temp.Close(); err != nil {
		_ = os.Remove(tempName)
		return fmt.Errorf("storage_file_close_failed: %w", err)
	}

	if err := os.Rename(tempName, store.path); err != nil {
		_ = os.Remove(tempName)
		return fmt.Errorf("storage_file_rename_failed: %w", err)
	}

	return nil
}
