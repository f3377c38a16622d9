// Package catalog aggregates the ingredient catalog: the deduplicated, ranked
// set of ingredient names available for selection and filtering.
package catalog

import (
	"sort"

	"github.com/GuotongWu/CookNote/internal/models"
)

// Frequencies counts, by ingredient name, how many ingredient lines across all
// recipes use that name. It is independent of any active filter.
func Frequencies(recipes []models.Recipe) map[string]int {
	freq := make(map[string]int)
	for _, r := range recipes {
		for _, ing := range r.Ingredients {
			freq[ing.Name]++
		}
	}
	return freq
}

// Build merges the seed list with every ingredient found in recipes.
// Names are unique in the result; a seed entry always wins over a
// recipe-sourced entry with the same name. Recipe ingredients are appended
// in scan order.
func Build(seed []models.Ingredient, recipes []models.Recipe) []models.Ingredient {
	seen := make(map[string]bool, len(seed))
	var out []models.Ingredient

	add := func(ing models.Ingredient) {
		if seen[ing.Name] {
			return
		}
		seen[ing.Name] = true
		if !ing.Category.Valid() {
			ing.Category = models.CategoryOther
		}
		out = append(out, ing.Clone())
	}

	for _, ing := range seed {
		add(ing)
	}
	for _, r := range recipes {
		for _, ing := range r.Ingredients {
			add(ing)
		}
	}
	return out
}

// Rank orders items by category priority, then by descending frequency.
// Ties keep their input order.
func Rank(items []models.Ingredient, freq map[string]int) []models.Ingredient {
	out := make([]models.Ingredient, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].Category.Priority(), out[j].Category.Priority()
		if pi != pj {
			return pi < pj
		}
		return freq[out[i].Name] > freq[out[j].Name]
	})
	return out
}

// Section is one category's slice of the catalog.
type Section struct {
	Category models.Category     `json:"category"`
	Items    []models.Ingredient `json:"items"`
}

// ByCategory splits items into sections in browsing order, skipping empty ones.
// Item order within a section follows the input.
func ByCategory(items []models.Ingredient) []Section {
	buckets := make(map[models.Category][]models.Ingredient)
	for _, ing := range items {
		cat := models.ParseCategory(string(ing.Category))
		buckets[cat] = append(buckets[cat], ing)
	}

	var sections []Section
	for _, cat := range models.Categories() {
		if items, ok := buckets[cat]; ok {
			sections = append(sections, Section{Category: cat, Items: items})
		}
	}
	return sections
}
