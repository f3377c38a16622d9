package catalog

import (
	"encoding/json"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/GuotongWu/CookNote/internal/models"
)

// Snapshot is the catalog derived from one recipe collection.
type Snapshot struct {
	Fingerprint uint64
	Ingredients []models.Ingredient // ranked
	Frequencies map[string]int
}

// Cache memoizes the ranked catalog and frequencies, recomputing only when the
// recipe collection's content fingerprint changes. Safe for concurrent use.
type Cache struct {
	seed []models.Ingredient

	mu       sync.Mutex
	snap     *Snapshot
	rebuilds int
}

// NewCache creates a cache that merges recipes with seed.
func NewCache(seed []models.Ingredient) *Cache {
	return &Cache{seed: seed}
}

// Fingerprint hashes the canonical JSON encoding of recipes.
func Fingerprint(recipes []models.Recipe) uint64 {
	h := xxhash.New()
	enc := json.NewEncoder(h)
	for i := range recipes {
		// Encoding a plain struct into a hash cannot fail.
		_ = enc.Encode(&recipes[i])
	}
	return h.Sum64()
}

// Get returns the snapshot for recipes, rebuilding it if the content changed.
// Callers must treat the snapshot as read-only.
func (c *Cache) Get(recipes []models.Recipe) *Snapshot {
	fp := Fingerprint(recipes)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snap != nil && c.snap.Fingerprint == fp {
		return c.snap
	}

	freq := Frequencies(recipes)
	c.snap = &Snapshot{
		Fingerprint: fp,
		Ingredients: Rank(Build(c.seed, recipes), freq),
		Frequencies: freq,
	}
	c.rebuilds++
	return c.snap
}

// Rebuilds reports how many times the snapshot has been recomputed.
func (c *Cache) Rebuilds() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rebuilds
}
