package models

// Category is the fixed classification of an ingredient.
// The wire value is the label the journal has always stored.
type Category string

const (
	CategoryMeat      Category = "肉禽类"
	CategoryVegetable Category = "蔬菜类"
	CategoryCondiment Category = "调料类"
	CategorySeafood   Category = "海鲜类"
	CategoryStaple    Category = "主食类"
	CategoryOther     Category = "其他"
)

// categoryPriority is the ranking order used when listing the catalog.
var categoryPriority = map[Category]int{
	CategoryMeat:      0,
	CategorySeafood:   1,
	CategoryVegetable: 2,
	CategoryStaple:    3,
	CategoryCondiment: 4,
	CategoryOther:     5,
}

// Categories returns every category in browsing order.
func Categories() []Category {
	return []Category{
		CategoryMeat,
		CategoryVegetable,
		CategoryCondiment,
		CategorySeafood,
		CategoryStaple,
		CategoryOther,
	}
}

// ParseCategory maps a stored or user-supplied label to a Category.
// Unknown and empty labels map to CategoryOther.
func ParseCategory(s string) Category {
	c := Category(s)
	if _, ok := categoryPriority[c]; ok {
		return c
	}
	return CategoryOther
}

// Priority returns the catalog ranking ordinal (lower sorts first).
func (c Category) Priority() int {
	if p, ok := categoryPriority[c]; ok {
		return p
	}
	return categoryPriority[CategoryOther]
}

// Valid reports whether c is one of the six known categories.
func (c Category) Valid() bool {
	_, ok := categoryPriority[c]
	return ok
}
