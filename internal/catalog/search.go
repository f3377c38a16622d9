package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/GuotongWu/CookNote/internal/models"
)

// Search returns the items whose name contains query, ignoring case.
// Names starting with the query come first; otherwise input order is kept.
// An empty or blank query returns items unchanged.
func Search(items []models.Ingredient, query string) []models.Ingredient {
	lower := cases.Lower(language.Und)
	q := lower.String(strings.TrimSpace(query))
	if q == "" {
		return items
	}

	var out []models.Ingredient
	for _, ing := range items {
		if strings.Contains(lower.String(ing.Name), q) {
			out = append(out, ing)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.HasPrefix(lower.String(out[i].Name), q) &&
			!strings.HasPrefix(lower.String(out[j].Name), q)
	})
	return out
}
