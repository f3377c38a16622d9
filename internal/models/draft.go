package models

import (
	"fmt"
	"strings"
	"time"
)

// DraftIngredient is an ingredient as returned by the analysis service.
type DraftIngredient struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
}

// Draft is the structured recipe returned by the image analysis service.
// It becomes a Recipe only after the user accepts it.
type Draft struct {
	Name        string            `json:"name"`
	Ingredients []DraftIngredient `json:"ingredients"`
	Steps       []string          `json:"steps"`
}

// AIRecipePrefix marks recipe IDs that came from an analysis draft.
const AIRecipePrefix = "ai-"

// IsAIRecipeID reports whether id was assigned to an accepted draft.
func IsAIRecipeID(id string) bool {
	return strings.HasPrefix(id, AIRecipePrefix)
}

// ToRecipe converts the draft into a new recipe created at now.
// Ingredient IDs are derived from the creation time and their index.
func (d *Draft) ToRecipe(now time.Time, images []string) Recipe {
	ms := now.UnixMilli()
	ingredients := make([]Ingredient, len(d.Ingredients))
	for i, ing := range d.Ingredients {
		ingredients[i] = Ingredient{
			ID:       fmt.Sprintf("ai-ing-%d-%d", ms, i),
			Name:     strings.TrimSpace(ing.Name),
			Category: ParseCategory(ing.Category),
		}
		// Amounts are whole grams; fractions are truncated.
		if g := int(ing.Amount); g > 0 {
			ingredients[i].Amount = IntPtr(g)
		}
	}
	return Recipe{
		ID:          fmt.Sprintf("%s%d", AIRecipePrefix, ms),
		Name:        strings.TrimSpace(d.Name),
		ImageURIs:   append([]string(nil), images...),
		Ingredients: ingredients,
		Steps:       append([]string(nil), d.Steps...),
		CreatedAt:   ms,
	}
}
