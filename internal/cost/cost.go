// Package cost reconciles a recipe's total cost between the automatic sum of
// ingredient costs and a manual override typed by the user.
package cost

import (
	"math"
	"strconv"
	"strings"

	"github.com/GuotongWu/CookNote/internal/models"
)

// Tolerance is the largest difference at which a stored cost is still
// considered to be the automatic sum.
const Tolerance = 0.01

// Auto sums the ingredient costs, treating a missing cost as 0.
func Auto(ingredients []models.Ingredient) float64 {
	var sum float64
	for _, ing := range ingredients {
		sum += ing.CostOrZero()
	}
	return sum
}

// Round2 rounds v to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Format renders v with exactly two decimals.
func Format(v float64) string {
	return strconv.FormatFloat(Round2(v), 'f', 2, 64)
}

// Display returns the override when it is non-empty, otherwise the automatic
// cost formatted to two decimals.
func Display(ingredients []models.Ingredient, override string) string {
	if override != "" {
		return override
	}
	return Format(Auto(ingredients))
}

// Saved converts a displayed cost into the value stored on the recipe.
// Anything unparseable saves as 0.
func Saved(display string) float64 {
	if v, ok := models.ParseCost(strings.TrimSpace(display)); ok {
		return v
	}
	return 0
}

// Reconcile decides the override to pre-populate when an existing recipe is
// opened for editing. The stored cost counts as a manual figure when it is
// exactly zero or differs from the recomputed automatic cost by more than
// Tolerance; otherwise it is treated as auto-derived and the override is empty.
func Reconcile(stored *float64, ingredients []models.Ingredient) string {
	if stored == nil {
		return ""
	}
	auto := Auto(ingredients)
	if *stored == 0 || math.Abs(*stored-auto) > Tolerance {
		return strconv.FormatFloat(*stored, 'f', -1, 64)
	}
	return ""
}

// SanitizeAmount keeps digits only.
func SanitizeAmount(s string) string {
	return models.DigitsOnly(s)
}

// SanitizeCost keeps digits and at most one decimal point.
func SanitizeCost(s string) string {
	return models.DecimalOnly(s)
}
