package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// Ingredient is a single line of a recipe's ingredient list.
// Name is the identity key for catalog deduplication and filtering; ID only
// needs to be unique within one list.
type Ingredient struct {
	// ID is unique within a single ingredient list.
	ID string `json:"id" yaml:"id"`

	// Name is the display label and the matching key.
	Name string `json:"name" yaml:"name"`

	// Category defaults to CategoryOther when absent.
	Category Category `json:"category,omitempty" yaml:"category,omitempty"`

	// Amount is the weight in grams.
	Amount *int `json:"amount,omitempty" yaml:"amount,omitempty"`

	// Cost is the price of this ingredient in currency units.
	Cost *float64 `json:"cost,omitempty" yaml:"cost,omitempty"`
}

// CostOrZero returns the ingredient cost, treating a missing cost as 0.
func (i Ingredient) CostOrZero() float64 {
	if i.Cost == nil {
		return 0
	}
	return *i.Cost
}

// Clone returns a copy that shares no pointers with i.
func (i Ingredient) Clone() Ingredient {
	out := i
	if i.Amount != nil {
		a := *i.Amount
		out.Amount = &a
	}
	if i.Cost != nil {
		c := *i.Cost
		out.Cost = &c
	}
	return out
}

// ingredientJSON mirrors Ingredient with loosely typed numeric fields so that
// records written by older versions still decode.
type ingredientJSON struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Amount   json.RawMessage `json:"amount"`
	Cost     json.RawMessage `json:"cost"`
}

// UnmarshalJSON accepts amounts stored as unit-suffixed strings ("200g"),
// costs stored as strings, and a missing category.
func (i *Ingredient) UnmarshalJSON(data []byte) error {
	var raw ingredientJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode ingredient: %w", err)
	}

	*i = Ingredient{
		ID:       raw.ID,
		Name:     raw.Name,
		Category: ParseCategory(raw.Category),
	}

	if n, ok := decodeAmount(raw.Amount); ok {
		i.Amount = &n
	}
	if c, ok := decodeCost(raw.Cost); ok {
		i.Cost = &c
	}
	return nil
}

func decodeAmount(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		if num < 0 || math.IsNaN(num) || math.IsInf(num, 0) {
			return 0, false
		}
		return int(num), true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ParseAmount(s)
	}
	return 0, false
}

func decodeCost(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		if num < 0 || math.IsNaN(num) || math.IsInf(num, 0) {
			return 0, false
		}
		return num, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ParseCost(s)
	}
	return 0, false
}

// IntPtr and FloatPtr are small helpers for optional numeric fields.
func IntPtr(v int) *int { return &v }

func FloatPtr(v float64) *float64 { return &v }
