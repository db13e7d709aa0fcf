package catalog

import "strings"

// Category selects the treatment advice for a label.
type Category string

const (
	CategoryHealthy     Category = "healthy"
	CategoryEarlyBlight Category = "early-blight"
	CategoryLateBlight  Category = "late-blight"
	CategorySeptoria    Category = "septoria"
	CategoryGeneral     Category = "general" // mites, mold, viruses, bacterial spot
)

// Categories returns every category in routing priority order.
func Categories() []Category {
	return []Category{
		CategoryHealthy,
		CategoryEarlyBlight,
		CategoryLateBlight,
		CategorySeptoria,
		CategoryGeneral,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// DisplayName returns a human-readable category name.
func (c Category) DisplayName() string {
	switch c {
	case CategoryHealthy:
		return "Healthy"
	case CategoryEarlyBlight:
		return "Early Blight"
	case CategoryLateBlight:
		return "Late Blight"
	case CategorySeptoria:
		return "Septoria"
	default:
		return "General"
	}
}

// categoryRule maps a label fragment to a category.
type categoryRule struct {
	pattern  string
	category Category
}

// categoryRules run in priority order; the first match wins.
var categoryRules = []categoryRule{
	{pattern: "Healthy", category: CategoryHealthy},
	{pattern: "Early Blight", category: CategoryEarlyBlight},
	{pattern: "Late Blight", category: CategoryLateBlight},
	{pattern: "Septoria", category: CategorySeptoria},
}

// Classify resolves the category of a label by fragment match. Labels
// matching no rule fall into CategoryGeneral.
func Classify(label Label) Category {
	for _, r := range categoryRules {
		if strings.Contains(string(label), r.pattern) {
			return r.category
		}
	}
	return CategoryGeneral
}
