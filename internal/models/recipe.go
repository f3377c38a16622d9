package models

import "strings"

// Recipe is one dish recorded in the journal.
type Recipe struct {
	// ID is assigned at creation: a random token for manual entries,
	// "ai-<ms>" for recipes accepted from an analysis draft.
	ID string `json:"id" yaml:"id"`

	// Name is required to save.
	Name string `json:"name" yaml:"name"`

	// ImageURIs is ordered; index 0 is the cover. At least one is required to save.
	ImageURIs []string `json:"imageUris" yaml:"imageUris"`

	// Ingredients are kept in display order.
	Ingredients []Ingredient `json:"ingredients" yaml:"ingredients"`

	// Steps are optional cooking instructions.
	Steps []string `json:"steps,omitempty" yaml:"steps,omitempty"`

	// CreatedAt is the epoch-millisecond creation time. It never changes after creation.
	CreatedAt int64 `json:"createdAt" yaml:"createdAt"`

	// IsFavorite marks the recipe for the favorites group.
	IsFavorite bool `json:"isFavorite,omitempty" yaml:"isFavorite,omitempty"`

	// Cost is the reconciled total (automatic sum or manual override).
	Cost *float64 `json:"cost,omitempty" yaml:"cost,omitempty"`

	// LikedBy holds household member IDs. Dangling IDs are tolerated.
	LikedBy []string `json:"likedBy,omitempty" yaml:"likedBy,omitempty"`
}

// Validate checks the fields required to save a recipe.
func (r *Recipe) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Field: "name", Message: "recipe name is required"}
	}
	if len(r.ImageURIs) == 0 {
		return &ValidationError{Field: "imageUris", Message: "at least one image is required"}
	}
	return nil
}

// CoverImage returns the first image URI, or "" when there is none.
func (r *Recipe) CoverImage() string {
	if len(r.ImageURIs) == 0 {
		return ""
	}
	return r.ImageURIs[0]
}

// HasIngredient reports whether any ingredient is named exactly name.
func (r *Recipe) HasIngredient(name string) bool {
	for _, ing := range r.Ingredients {
		if ing.Name == name {
			return true
		}
	}
	return false
}

// LikedByMember reports whether memberID is in LikedBy.
func (r *Recipe) LikedByMember(memberID string) bool {
	for _, id := range r.LikedBy {
		if id == memberID {
			return true
		}
	}
	return false
}

// ToggleLike adds memberID to LikedBy, or removes it if already present.
// It returns true when the member now likes the recipe.
func (r *Recipe) ToggleLike(memberID string) bool {
	for i, id := range r.LikedBy {
		if id == memberID {
			r.LikedBy = append(r.LikedBy[:i:i], r.LikedBy[i+1:]...)
			return false
		}
	}
	r.LikedBy = append(r.LikedBy, memberID)
	return true
}

// RemoveLike drops memberID from LikedBy and reports whether it was present.
func (r *Recipe) RemoveLike(memberID string) bool {
	for i, id := range r.LikedBy {
		if id == memberID {
			r.LikedBy = append(r.LikedBy[:i:i], r.LikedBy[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy of r.
func (r Recipe) Clone() Recipe {
	out := r
	if r.ImageURIs != nil {
		out.ImageURIs = append([]string(nil), r.ImageURIs...)
	}
	if r.Steps != nil {
		out.Steps = append([]string(nil), r.Steps...)
	}
	if r.LikedBy != nil {
		out.LikedBy = append([]string(nil), r.LikedBy...)
	}
	if r.Ingredients != nil {
		out.Ingredients = make([]Ingredient, len(r.Ingredients))
		for i, ing := range r.Ingredients {
			out.Ingredients[i] = ing.Clone()
		}
	}
	if r.Cost != nil {
		c := *r.Cost
		out.Cost = &c
	}
	return out
}

// CloneRecipes deep-copies a recipe list.
func CloneRecipes(in []Recipe) []Recipe {
	if in == nil {
		return nil
	}
	out := make([]Recipe, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}
