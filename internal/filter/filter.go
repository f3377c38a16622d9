// Package filter narrows a recipe list by search text, ingredient and member.
package filter

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/GuotongWu/CookNote/internal/models"
)

// Criteria holds the optional predicates. A zero field is always true.
type Criteria struct {
	// SearchText matches the recipe name only, case-insensitively.
	SearchText string `json:"q,omitempty"`

	// Ingredient must equal some ingredient's name exactly.
	Ingredient string `json:"ingredient,omitempty"`

	// MemberID must be present in the recipe's LikedBy.
	MemberID string `json:"member,omitempty"`
}

// IsZero reports whether no predicate is active.
func (c Criteria) IsZero() bool {
	return c.SearchText == "" && c.Ingredient == "" && c.MemberID == ""
}

// Apply returns the recipes matching every active predicate, in input order.
// Ingredient names are not searched by SearchText.
func Apply(recipes []models.Recipe, c Criteria) []models.Recipe {
	lower := cases.Lower(language.Und)
	query := lower.String(c.SearchText)
	out := make([]models.Recipe, 0, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		if query != "" && !strings.Contains(lower.String(r.Name), query) {
			continue
		}
		if c.Ingredient != "" && !r.HasIngredient(c.Ingredient) {
			continue
		}
		if c.MemberID != "" && !r.LikedByMember(c.MemberID) {
			continue
		}
		out = append(out, *r)
	}
	return out
}
