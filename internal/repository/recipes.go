package repository

import (
	"context"

	"github.com/GuotongWu/CookNote/internal/models"
	"github.com/GuotongWu/CookNote/internal/seed"
	"github.com/GuotongWu/CookNote/internal/storage"
)

// RecipeRepository is CRUD over the recipe collection, newest first.
type RecipeRepository struct {
	c *collection[models.Recipe]
}

// NewRecipeRepository creates a repository persisting under storage.RecipesKey.
func NewRecipeRepository(kv storage.KV, opts ...Option) *RecipeRepository {
	o := buildOptions(opts)
	return &RecipeRepository{
		c: &collection[models.Recipe]{
			kv:      kv,
			key:     storage.RecipesKey,
			name:    "recipes",
			seed:    func() []models.Recipe { return seed.Recipes(o.now()) },
			clone:   models.CloneRecipes,
			metrics: o.metrics,
		},
	}
}

// GetAll returns every recipe. An empty store yields the seed dataset.
func (r *RecipeRepository) GetAll(ctx context.Context) []models.Recipe {
	return r.c.clone(r.c.load(ctx, true))
}

// Add prepends recipe and returns the new collection.
func (r *RecipeRepository) Add(ctx context.Context, recipe models.Recipe) []models.Recipe {
	recipe = recipe.Clone()
	return r.c.mutate(ctx, func(items []models.Recipe) []models.Recipe {
		out := make([]models.Recipe, 0, len(items)+1)
		out = append(out, recipe)
		return append(out, items...)
	})
}

// Update replaces the recipe with the same ID. It is a no-op when none matches,
// but the collection is still written back.
func (r *RecipeRepository) Update(ctx context.Context, recipe models.Recipe) []models.Recipe {
	recipe = recipe.Clone()
	return r.c.mutate(ctx, func(items []models.Recipe) []models.Recipe {
		for i := range items {
			if items[i].ID == recipe.ID {
				items[i] = recipe
			}
		}
		return items
	})
}

// Delete removes the recipe with the given ID.
func (r *RecipeRepository) Delete(ctx context.Context, id string) []models.Recipe {
	return r.c.mutate(ctx, func(items []models.Recipe) []models.Recipe {
		out := items[:0]
		for _, item := range items {
			if item.ID != id {
				out = append(out, item)
			}
		}
		return out
	})
}

// Replace overwrites the whole collection (reset or import).
func (r *RecipeRepository) Replace(ctx context.Context, recipes []models.Recipe) []models.Recipe {
	return r.c.overwrite(ctx, recipes)
}

// Wait blocks until any background seed write has finished.
func (r *RecipeRepository) Wait() {
	r.c.wait()
}
