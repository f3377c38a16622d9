package catalog

import (
	"testing"

	"github.com/GuotongWu/CookNote/internal/models"
)

func TestCacheRebuildsOnlyOnContentChange(t *testing.T) {
	seed := []models.Ingredient{ing("1", "鸡蛋", models.CategoryMeat)}
	c := NewCache(seed)

	recipes := []models.Recipe{
		{ID: "a", Name: "番茄炒蛋", Ingredients: []models.Ingredient{ing("1", "鸡蛋", models.CategoryMeat), ing("2", "西红柿", models.CategoryVegetable)}},
	}

	first := c.Get(recipes)
	if c.Rebuilds() != 1 {
		t.Fatalf("expected 1 rebuild, got %d", c.Rebuilds())
	}

	// Same content in a different slice must hit the cache.
	again := c.Get([]models.Recipe{recipes[0].Clone()})
	if again != first || c.Rebuilds() != 1 {
		t.Errorf("expected cache hit, rebuilds=%d", c.Rebuilds())
	}

	// Toggling a favorite changes the fingerprint.
	changed := []models.Recipe{recipes[0].Clone()}
	changed[0].IsFavorite = true
	third := c.Get(changed)
	if third == first || c.Rebuilds() != 2 {
		t.Errorf("expected rebuild after content change, rebuilds=%d", c.Rebuilds())
	}

	if third.Frequencies["鸡蛋"] != 1 || third.Frequencies["西红柿"] != 1 {
		t.Errorf("unexpected frequencies %v", third.Frequencies)
	}
	if len(third.Ingredients) != 2 || third.Ingredients[0].Name != "鸡蛋" {
		t.Errorf("unexpected catalog %v", names(third.Ingredients))
	}
}

func TestFingerprintDiffersByOrder(t *testing.T) {
	a := models.Recipe{ID: "a"}
	b := models.Recipe{ID: "b"}
	if Fingerprint([]models.Recipe{a, b}) == Fingerprint([]models.Recipe{b, a}) {
		t.Error("fingerprint should depend on collection order")
	}
	if Fingerprint(nil) != Fingerprint([]models.Recipe{}) {
		t.Error("nil and empty collections should fingerprint the same")
	}
}
