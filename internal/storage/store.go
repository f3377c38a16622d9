// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"
)

// Logical keys holding the journal's two collections. Each value is a JSON array.
const (
	RecipesKey = "@cooknote_recipes"
	FamilyKey  = "@cooknote_family"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// KV defines the byte store the repositories persist through.
// This abstraction allows swapping storage backends (SQLite, in-memory)
// without changing the repository layer.
type KV interface {
	// Get returns the value stored under key.
	// Returns ErrNotFound if the key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases any resources held by the store.
	Close() error
}

// Inspector is implemented by backends that track when each key was written.
type Inspector interface {
	// Keys lists every stored key.
	Keys(ctx context.Context) ([]string, error)

	// UpdatedAt returns when key was last written, or ErrNotFound.
	UpdatedAt(ctx context.Context, key string) (time.Time, error)
}
