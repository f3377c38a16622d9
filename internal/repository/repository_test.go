package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/GuotongWu/CookNote/internal/metrics"
	"github.com/GuotongWu/CookNote/internal/models"
	"github.com/GuotongWu/CookNote/internal/storage"
	"github.com/GuotongWu/CookNote/internal/storage/memory"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

func fixedClock() time.Time { return fixedNow }

// setupRecipes creates a repository over a fresh in-memory store.
func setupRecipes(t *testing.T) (*RecipeRepository, *memory.Store, *metrics.Metrics) {
	t.Helper()
	kv := memory.New()
	m := metrics.New(prometheus.NewRegistry())
	repo := NewRecipeRepository(kv, WithClock(fixedClock), WithMetrics(m))
	return repo, kv, m
}

func newRecipe(id, name string) models.Recipe {
	return models.Recipe{
		ID:        id,
		Name:      name,
		ImageURIs: []string{id + ".jpg"},
		CreatedAt: fixedNow.UnixMilli(),
	}
}

func ids(recipes []models.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.ID
	}
	return out
}

func TestGetAllSeedsEmptyStore(t *testing.T) {
	repo, kv, m := setupRecipes(t)
	ctx := context.Background()

	first := repo.GetAll(ctx)
	if len(first) != 5 {
		t.Fatalf("expected 5 seed recipes, got %d", len(first))
	}

	repo.Wait()
	if _, ok := kv.Raw(storage.RecipesKey); !ok {
		t.Fatal("expected seed to be persisted after Wait")
	}

	second := repo.GetAll(ctx)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("second GetAll differs from seed:\nfirst:  %+v\nsecond: %+v", first, second)
	}

	if got := testutil.ToFloat64(m.StoreSeeds.WithLabelValues("recipes")); got != 1 {
		t.Errorf("seeds counter = %v, want 1", got)
	}
}

func TestGetAllDuringSeedWriteReturnsSeed(t *testing.T) {
	kv := memory.New()
	release := make(chan struct{})
	kv.OnSet(func(string) { <-release })

	repo := NewRecipeRepository(kv, WithClock(fixedClock))
	ctx := context.Background()

	first := repo.GetAll(ctx)
	second := repo.GetAll(ctx)
	close(release)
	repo.Wait()

	if !reflect.DeepEqual(first, second) {
		t.Error("GetAll during an in-flight seed write should return the same seed")
	}
	if kv.Sets() != 1 {
		t.Errorf("expected a single seed write, got %d", kv.Sets())
	}
}

func TestGetAllReadFailureDegradesToSeed(t *testing.T) {
	repo, kv, m := setupRecipes(t)
	kv.FailGets(errors.New("io error"))

	got := repo.GetAll(context.Background())
	repo.Wait()

	if len(got) != 5 {
		t.Fatalf("expected seed fallback, got %d recipes", len(got))
	}
	if kv.Sets() != 0 {
		t.Error("a failed read must not trigger a seed write")
	}
	if v := testutil.ToFloat64(m.StoreReadFailures.WithLabelValues("recipes")); v != 1 {
		t.Errorf("read failures = %v, want 1", v)
	}
}

func TestGetAllCorruptDataDegradesToSeed(t *testing.T) {
	repo, kv, m := setupRecipes(t)
	kv.Put(storage.RecipesKey, []byte(`{not json`))

	got := repo.GetAll(context.Background())
	if len(got) != 5 {
		t.Fatalf("expected seed fallback, got %d recipes", len(got))
	}
	if v := testutil.ToFloat64(m.StoreReadFailures.WithLabelValues("recipes")); v != 1 {
		t.Errorf("read failures = %v, want 1", v)
	}
}

func TestGetAllDecodesLegacyRecords(t *testing.T) {
	repo, kv, _ := setupRecipes(t)
	kv.Put(storage.RecipesKey, []byte(`[{"id":"old","name":"土豆丝","imageUris":["a.jpg"],
		"ingredients":[{"id":"5","name":"土豆","amount":"300g"}],"createdAt":1600000000000}]`))

	got := repo.GetAll(context.Background())
	if len(got) != 1 {
		t.Fatalf("expected 1 recipe, got %d", len(got))
	}
	ing := got[0].Ingredients[0]
	if ing.Amount == nil || *ing.Amount != 300 {
		t.Errorf("legacy amount not sanitized: %v", ing.Amount)
	}
	if ing.Category != models.CategoryOther {
		t.Errorf("missing category should default to other, got %q", ing.Category)
	}
	if got[0].LikedBy != nil || got[0].Cost != nil {
		t.Error("missing likedBy/cost should stay empty")
	}
}

func TestNullCollectionIsEmpty(t *testing.T) {
	repo, kv, _ := setupRecipes(t)
	kv.Put(storage.RecipesKey, []byte(`null`))

	if got := repo.GetAll(context.Background()); len(got) != 0 {
		t.Errorf("expected empty collection, got %d", len(got))
	}
}

func TestRecipeCRUD(t *testing.T) {
	repo, kv, _ := setupRecipes(t)
	ctx := context.Background()
	kv.Put(storage.RecipesKey, []byte(`[]`))

	t.Run("Add prepends", func(t *testing.T) {
		repo.Add(ctx, newRecipe("a", "番茄炒蛋"))
		got := repo.Add(ctx, newRecipe("b", "青椒炒牛肉"))

		if !reflect.DeepEqual(ids(got), []string{"b", "a"}) {
			t.Errorf("order = %v, want [b a]", ids(got))
		}
		if !reflect.DeepEqual(ids(repo.GetAll(ctx)), []string{"b", "a"}) {
			t.Error("persisted order differs from returned order")
		}
	})

	t.Run("Update replaces by id", func(t *testing.T) {
		r := newRecipe("a", "经典番茄炒蛋")
		r.IsFavorite = true
		got := repo.Update(ctx, r)

		if got[1].Name != "经典番茄炒蛋" || !got[1].IsFavorite {
			t.Errorf("update not applied: %+v", got[1])
		}
	})

	t.Run("Update is idempotent", func(t *testing.T) {
		r := newRecipe("b", "青椒牛柳")
		once := repo.Update(ctx, r)
		twice := repo.Update(ctx, r)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("second update changed the collection:\n%+v\n%+v", once, twice)
		}
	})

	t.Run("Update with unknown id is a no-op", func(t *testing.T) {
		before := repo.GetAll(ctx)
		after := repo.Update(ctx, newRecipe("zzz", "不存在"))
		if !reflect.DeepEqual(before, after) {
			t.Error("update of unknown id changed the collection")
		}
	})

	t.Run("Delete removes id", func(t *testing.T) {
		repo.Delete(ctx, "a")
		for _, r := range repo.GetAll(ctx) {
			if r.ID == "a" {
				t.Fatal("deleted recipe still present")
			}
		}
	})

	t.Run("Replace overwrites", func(t *testing.T) {
		got := repo.Replace(ctx, []models.Recipe{newRecipe("x", "新")})
		if !reflect.DeepEqual(ids(got), []string{"x"}) {
			t.Errorf("replace result = %v", ids(got))
		}
		if !reflect.DeepEqual(ids(repo.GetAll(ctx)), []string{"x"}) {
			t.Error("replace not persisted")
		}
	})
}

func TestDeleteThenGetAllNeverContainsID(t *testing.T) {
	repo, _, _ := setupRecipes(t)
	ctx := context.Background()

	for _, r := range repo.GetAll(ctx) {
		repo.Delete(ctx, r.ID)
		for _, left := range repo.GetAll(ctx) {
			if left.ID == r.ID {
				t.Errorf("recipe %s still present after delete", r.ID)
			}
		}
	}
	if got := repo.GetAll(ctx); len(got) != 0 {
		t.Errorf("expected empty collection, got %v", ids(got))
	}
}

func TestMutationOnEmptyStoreIncludesSeed(t *testing.T) {
	repo, kv, _ := setupRecipes(t)
	got := repo.Add(context.Background(), newRecipe("new", "新菜"))
	repo.Wait()

	if len(got) != 6 || got[0].ID != "new" {
		t.Fatalf("expected new recipe prepended to seed, got %v", ids(got))
	}
	if kv.Sets() != 1 {
		t.Errorf("expected one write, got %d", kv.Sets())
	}
}

func TestWriteFailureIsNotPropagated(t *testing.T) {
	repo, kv, m := setupRecipes(t)
	ctx := context.Background()
	kv.Put(storage.RecipesKey, []byte(`[]`))
	kv.FailSets(errors.New("disk full"))

	got := repo.Add(ctx, newRecipe("a", "番茄炒蛋"))
	if len(got) != 1 {
		t.Fatalf("caller should see intended state, got %d recipes", len(got))
	}

	raw, _ := kv.Raw(storage.RecipesKey)
	if string(raw) != `[]` {
		t.Errorf("store should be unchanged after failed write, got %s", raw)
	}
	if v := testutil.ToFloat64(m.StoreWriteFailures.WithLabelValues("recipes")); v != 1 {
		t.Errorf("write failures = %v, want 1", v)
	}
}

func TestReturnedListsAreCopies(t *testing.T) {
	repo, kv, _ := setupRecipes(t)
	ctx := context.Background()
	kv.Put(storage.RecipesKey, []byte(`[]`))

	got := repo.Add(ctx, newRecipe("a", "番茄炒蛋"))
	got[0].Name = "mutated"
	got[0].ImageURIs[0] = "mutated.jpg"

	again := repo.GetAll(ctx)
	if again[0].Name != "番茄炒蛋" || again[0].ImageURIs[0] != "a.jpg" {
		t.Errorf("mutating a returned list leaked into the repository: %+v", again[0])
	}
}

func TestMemberRegistry(t *testing.T) {
	kv := memory.New()
	reg := NewMemberRegistry(kv)
	ctx := context.Background()

	seeded := reg.GetAll(ctx)
	reg.Wait()
	if len(seeded) != 2 {
		t.Fatalf("expected default household of 2, got %d", len(seeded))
	}

	t.Run("Add appends", func(t *testing.T) {
		got := reg.Add(ctx, models.FamilyMember{ID: "99", Name: "小明", Color: "#51CF66"})
		if got[len(got)-1].ID != "99" {
			t.Errorf("expected new member last, got %+v", got)
		}
	})

	t.Run("Update replaces", func(t *testing.T) {
		got := reg.Update(ctx, models.FamilyMember{ID: "99", Name: "小明同学", Color: "#51CF66"})
		if got[len(got)-1].Name != "小明同学" {
			t.Errorf("update not applied: %+v", got)
		}
	})

	t.Run("Delete removes", func(t *testing.T) {
		got := reg.Delete(ctx, "99")
		if len(got) != 2 {
			t.Errorf("expected 2 members, got %d", len(got))
		}
		for _, m := range reg.GetAll(ctx) {
			if m.ID == "99" {
				t.Error("deleted member still present")
			}
		}
	})
}
