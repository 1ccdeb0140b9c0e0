// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
)

// Keys of the two persisted blobs.
const (
	SettingsKey = "cafesync_settings_v1"
	HistoryKey  = "cafesync_history_v1"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// Store defines the interface for blob storage operations.
// Values are opaque JSON documents addressed by a string key.
// This abstraction allows swapping storage backends (SQLite, Redis, etc.)
// without changing the service layer.
type Store interface {
	// Get returns the value stored under key.
	// Returns ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
