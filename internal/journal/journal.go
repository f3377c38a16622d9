// Package journal is the application service over the recipe journal. It
// owns the recipe repository and household registry and composes catalog,
// filtering, grouping and cost reconciliation into the operations exposed
// by the HTTP API and the CLI.
//
// Mutations are serialized by a single mutex. Persistence failures are
// absorbed by the repositories, so only validation and lookup failures are
// returned as errors.
package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/GuotongWu/CookNote/internal/catalog"
	"github.com/GuotongWu/CookNote/internal/config"
	"github.com/GuotongWu/CookNote/internal/cost"
	"github.com/GuotongWu/CookNote/internal/filter"
	"github.com/GuotongWu/CookNote/internal/grouping"
	"github.com/GuotongWu/CookNote/internal/models"
	"github.com/GuotongWu/CookNote/internal/repository"
	"github.com/GuotongWu/CookNote/internal/seed"
)

// ErrNotFound is returned when a recipe or member id does not exist.
var ErrNotFound = errors.New("not found")

// View is one browse result.
type View struct {
	Groups      []grouping.Group    `json:"groups"`
	Recipes     []models.Recipe     `json:"recipes"`
	Catalog     []models.Ingredient `json:"catalog"`
	Frequencies map[string]int      `json:"frequencies"`
}

// CatalogView is the ingredient catalog narrowed by a search query.
type CatalogView struct {
	Ingredients []models.Ingredient `json:"ingredients"`
	Frequencies map[string]int      `json:"frequencies"`
	Sections    []catalog.Section   `json:"sections"`
}

// Service implements the journal operations.
type Service struct {
	recipes *repository.RecipeRepository
	members *repository.MemberRegistry
	catalog *catalog.Cache

	now       func() time.Time
	newID     func() string
	orphans   config.OrphanPolicy
	groupOpts []grouping.Option

	mu sync.Mutex
}

// New creates a Service over the given repository and registry.
func New(recipes *repository.RecipeRepository, members *repository.MemberRegistry, opts ...Option) *Service {
	s := &Service{
		recipes: recipes,
		members: members,
		catalog: catalog.NewCache(seed.Ingredients()),
	}
	defaultOptions(s)
	for _, o := range opts {
		o(s)
	}
	return s
}

// Recipes returns every recipe, newest first.
func (s *Service) Recipes(ctx context.Context) []models.Recipe {
	return s.recipes.GetAll(ctx)
}

// Recipe returns the recipe with id.
func (s *Service) Recipe(ctx context.Context, id string) (models.Recipe, error) {
	r, ok := find(s.recipes.GetAll(ctx), id)
	if !ok {
		return models.Recipe{}, fmt.Errorf("recipe %s: %w", id, ErrNotFound)
	}
	return r, nil
}

// Browse filters and groups the journal and returns the ranked catalog of
// the whole collection alongside.
func (s *Service) Browse(ctx context.Context, c filter.Criteria) View {
	all := s.recipes.GetAll(ctx)
	snap := s.catalog.Get(all)
	matched := filter.Apply(all, c)

	return View{
		Groups:      grouping.Sections(matched, s.now(), s.groupOpts...),
		Recipes:     matched,
		Catalog:     snap.Ingredients,
		Frequencies: snap.Frequencies,
	}
}

// Catalog returns the ranked ingredient catalog narrowed by query.
func (s *Service) Catalog(ctx context.Context, query string) CatalogView {
	snap := s.catalog.Get(s.recipes.GetAll(ctx))
	items := catalog.Search(snap.Ingredients, query)
	return CatalogView{
		Ingredients: items,
		Frequencies: snap.Frequencies,
		Sections:    catalog.ByCategory(items),
	}
}

// SaveRecipe validates r and stores it. A recipe with a blank or unknown id
// is added at the front of the journal; otherwise the stored copy is
// replaced, keeping its creation time. The stored cost is the reconciled
// display cost: the override from opts, or the one Reconcile derives from
// r.Cost when none is given.
func (s *Service) SaveRecipe(ctx context.Context, r models.Recipe, opts ...SaveOption) (models.Recipe, error) {
	var o saveOptions
	for _, opt := range opts {
		opt(&o)
	}

	r = r.Clone()
	r.Name = strings.TrimSpace(r.Name)
	if err := r.Validate(); err != nil {
		return models.Recipe{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, r, o.override), nil
}

// save must be called with s.mu held and r already validated.
func (s *Service) save(ctx context.Context, r models.Recipe, override *string) models.Recipe {
	now := s.now()

	existing, ok := find(s.recipes.GetAll(ctx), r.ID)

	// Without an explicit override, a manual figure is recognized against
	// the ingredients it was stored with, not the edited ones.
	text := ""
	switch {
	case override != nil:
		text = cost.SanitizeCost(*override)
	case ok:
		text = cost.Reconcile(existing.Cost, existing.Ingredients)
	default:
		text = cost.Reconcile(r.Cost, r.Ingredients)
	}
	for i := range r.Ingredients {
		ing := &r.Ingredients[i]
		ing.Name = strings.TrimSpace(ing.Name)
		ing.Category = models.ParseCategory(string(ing.Category))
		if ing.ID == "" {
			ing.ID = fmt.Sprintf("custom-%d-%d", now.UnixMilli(), i)
		}
	}
	c := cost.Saved(cost.Display(r.Ingredients, text))
	r.Cost = &c

	if !ok {
		if r.ID == "" {
			r.ID = s.newID()
		}
		if r.CreatedAt == 0 {
			r.CreatedAt = now.UnixMilli()
		}
		s.recipes.Add(ctx, r)
		slog.Info("Recipe added", "id", r.ID, "name", r.Name, "cost", c)
		return r
	}

	r.CreatedAt = existing.CreatedAt
	s.recipes.Update(ctx, r)
	slog.Info("Recipe updated", "id", r.ID, "name", r.Name, "cost", c)
	return r
}

// EditCost opens a cost editor on the stored recipe, lets edit change it,
// and saves the result.
func (s *Service) EditCost(ctx context.Context, id string, edit func(*cost.Editor) error) (models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := find(s.recipes.GetAll(ctx), id)
	if !ok {
		return models.Recipe{}, fmt.Errorf("recipe %s: %w", id, ErrNotFound)
	}
	e := cost.Open(r)
	if err := edit(e); err != nil {
		return models.Recipe{}, err
	}
	e.Apply(&r)
	s.recipes.Update(ctx, r)
	slog.Info("Recipe cost updated", "id", r.ID, "cost", *r.Cost)
	return r, nil
}

// DeleteRecipe removes the recipe with id.
func (s *Service) DeleteRecipe(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := find(s.recipes.GetAll(ctx), id); !ok {
		return fmt.Errorf("recipe %s: %w", id, ErrNotFound)
	}
	s.recipes.Delete(ctx, id)
	slog.Info("Recipe deleted", "id", id)
	return nil
}

// ToggleFavorite flips the favorite flag and returns the updated recipe.
func (s *Service) ToggleFavorite(ctx context.Context, id string) (models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := find(s.recipes.GetAll(ctx), id)
	if !ok {
		return models.Recipe{}, fmt.Errorf("recipe %s: %w", id, ErrNotFound)
	}
	r.IsFavorite = !r.IsFavorite
	s.recipes.Update(ctx, r)
	return r, nil
}

// ToggleLike adds or removes memberID from the recipe's likes. The member
// must exist to add a like; a like left by a deleted member can still be
// removed.
func (s *Service) ToggleLike(ctx context.Context, recipeID, memberID string) (models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := find(s.recipes.GetAll(ctx), recipeID)
	if !ok {
		return models.Recipe{}, fmt.Errorf("recipe %s: %w", recipeID, ErrNotFound)
	}
	if !r.LikedByMember(memberID) {
		if _, ok := findMember(s.members.GetAll(ctx), memberID); !ok {
			return models.Recipe{}, fmt.Errorf("member %s: %w", memberID, ErrNotFound)
		}
	}
	r.ToggleLike(memberID)
	s.recipes.Update(ctx, r)
	return r, nil
}

// ImportDraft accepts an analysis draft as a new recipe with the given images.
func (s *Service) ImportDraft(ctx context.Context, d *models.Draft, images []string) (models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := d.ToRecipe(s.now(), images)
	if err := r.Validate(); err != nil {
		return models.Recipe{}, err
	}
	return s.save(ctx, r, nil), nil
}

// Reset replaces the whole journal. Every recipe must be valid and ids must
// be unique.
func (s *Service) Reset(ctx context.Context, recipes []models.Recipe) ([]models.Recipe, error) {
	if err := validateAll(recipes); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.recipes.Replace(ctx, recipes)
	slog.Info("Journal reset", "recipes", len(out))
	return out, nil
}

func validateAll(recipes []models.Recipe) error {
	seen := make(map[string]bool, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		if r.ID == "" {
			return &models.ValidationError{Field: "id", Message: fmt.Sprintf("recipe %d has no id", i)}
		}
		if seen[r.ID] {
			return &models.ValidationError{Field: "id", Message: "duplicate recipe id " + r.ID}
		}
		seen[r.ID] = true
		if err := r.Validate(); err != nil {
			return fmt.Errorf("recipe %s: %w", r.ID, err)
		}
	}
	return nil
}

func find(recipes []models.Recipe, id string) (models.Recipe, bool) {
	if id == "" {
		return models.Recipe{}, false
	}
	for _, r := range recipes {
		if r.ID == id {
			return r, true
		}
	}
	return models.Recipe{}, false
}

func findMember(members []models.FamilyMember, id string) (models.FamilyMember, bool) {
	for _, m := range members {
		if m.ID == id {
			return m, true
		}
	}
	return models.FamilyMember{}, false
}

// memberID derives an unused id from the current time in milliseconds.
func memberID(now time.Time, existing []models.FamilyMember) string {
	ms := now.UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if _, taken := findMember(existing, id); !taken {
			return id
		}
		ms++
	}
}
