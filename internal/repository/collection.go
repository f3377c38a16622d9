// Package repository persists the journal's collections through a storage.KV.
//
// Each collection lives under one key as a JSON array and is rewritten whole
// on every mutation: read, modify in memory, write back. There is no locking
// or version check here, so two concurrent mutations on the same repository
// lose one of the updates. Callers must serialize mutations (journal.Service does).
//
// Persistence failures never reach the caller. A failed read degrades to the
// seed dataset; a failed write is logged and counted, and the returned list
// reflects the intended state even though the store may now lag behind it.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/GuotongWu/CookNote/internal/metrics"
	"github.com/GuotongWu/CookNote/internal/storage"
)

// collection is the shared whole-collection read-modify-write cycle.
type collection[T any] struct {
	kv      storage.KV
	key     string
	name    string
	seed    func() []T
	clone   func([]T) []T
	metrics *metrics.Metrics

	mu       sync.Mutex
	inflight []T // seed being written in the background, nil otherwise
	wg       sync.WaitGroup
}

// load returns the stored collection, seeding an empty store.
// With async set the seed is returned immediately and written in the
// background; otherwise the caller is expected to write it.
func (c *collection[T]) load(ctx context.Context, async bool) []T {
	c.mu.Lock()
	if c.inflight != nil {
		items := c.clone(c.inflight)
		c.mu.Unlock()
		return items
	}
	c.mu.Unlock()

	items, err := c.read(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		seed := c.seed()
		slog.Info("Seeding empty collection", "collection", c.name, "count", len(seed))
		c.metrics.Seeded(c.name)
		if async {
			c.seedAsync(ctx, seed)
		}
		return c.clone(seed)
	}
	if err != nil {
		slog.Error("Failed to load collection, using seed data", "collection", c.name, "error", err)
		c.metrics.ReadFailed(c.name)
		return c.seed()
	}
	return items
}

func (c *collection[T]) read(ctx context.Context) ([]T, error) {
	data, err := c.kv.Get(ctx, c.key)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", c.name, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// seedAsync persists seed without blocking the caller.
// The write outlives ctx cancellation; Wait joins it.
func (c *collection[T]) seedAsync(ctx context.Context, seed []T) {
	c.mu.Lock()
	c.inflight = c.clone(seed)
	c.mu.Unlock()

	bg := context.WithoutCancel(ctx)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.save(bg, seed)

		c.mu.Lock()
		c.inflight = nil
		c.mu.Unlock()
	}()
}

// save writes the whole collection. Failures are logged and counted, never returned.
func (c *collection[T]) save(ctx context.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		slog.Error("Failed to encode collection", "collection", c.name, "error", err)
		c.metrics.WriteFailed(c.name)
		return
	}
	if err := c.kv.Set(ctx, c.key, data); err != nil {
		slog.Error("Failed to save collection", "collection", c.name, "error", err)
		c.metrics.WriteFailed(c.name)
		return
	}
	c.metrics.Wrote(c.name)
	slog.Debug("Collection saved", "collection", c.name, "count", len(items), "bytes", len(data))
}

// mutate runs one read-modify-write cycle and returns a copy of the result.
// A pending seed write is joined first so the re-read observes it.
func (c *collection[T]) mutate(ctx context.Context, fn func([]T) []T) []T {
	c.wg.Wait()
	items := fn(c.load(ctx, false))
	c.save(ctx, items)
	return c.clone(items)
}

// overwrite replaces the collection without reading it first.
func (c *collection[T]) overwrite(ctx context.Context, items []T) []T {
	c.wg.Wait()
	items = c.clone(items)
	c.save(ctx, items)
	return c.clone(items)
}

// wait blocks until background seed writes finish.
func (c *collection[T]) wait() {
	c.wg.Wait()
}
