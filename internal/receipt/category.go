package receipt

import "strings"

// Category is one of the closed set of spending classification tags used for
// budgeting and aggregation.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryShopping      Category = "shopping"
	CategoryEntertainment Category = "entertainment"
	CategoryHealthcare    Category = "healthcare"
	CategoryUtilities     Category = "utilities"
	CategoryEducation     Category = "education"
	CategoryOther         Category = "other"
)

// Categories returns the full category set in canonical order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryShopping,
		CategoryEntertainment,
		CategoryHealthcare,
		CategoryUtilities,
		CategoryEducation,
		CategoryOther,
	}
}

var categoryLabels = map[Category]string{
	CategoryFood:          "Food & Dining",
	CategoryTransport:     "Transportation",
	CategoryShopping:      "Shopping",
	CategoryEntertainment: "Entertainment",
	CategoryHealthcare:    "Healthcare",
	CategoryUtilities:     "Utilities & Bills",
	CategoryEducation:     "Education",
	CategoryOther:         "Other",
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display label for the category.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return categoryLabels[CategoryOther]
}

// ParseCategory coerces an arbitrary tag to a member of the closed set.
// Unknown or empty input maps to CategoryOther; the coercion is irreversible.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c.Valid() {
		return c
	}
	return CategoryOther
}

// Budgets maps each category to its monthly spending limit.
type Budgets map[Category]float64

// DefaultBudgets returns the default monthly limit table. Callers receive a
// fresh copy and may mutate it.
func DefaultBudgets() Budgets {
	return Budgets{
		CategoryFood:          500,
		CategoryTransport:     200,
		CategoryShopping:      300,
		CategoryEntertainment: 150,
		CategoryHealthcare:    200,
		CategoryUtilities:     150,
		CategoryEducation:     100,
		CategoryOther:         100,
	}
}
