package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category enumerates the fixed news sections an article can belong to.
type Category string

const (
	CategoryTechnology    Category = "technology"
	CategoryBusiness      Category = "business"
	CategoryPolitics      Category = "politics"
	CategorySports        Category = "sports"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
	CategoryScience       Category = "science"
	CategoryWorld         Category = "world"
	CategoryLocal         Category = "local"
)

var categories = []Category{
	CategoryTechnology,
	CategoryBusiness,
	CategoryPolitics,
	CategorySports,
	CategoryEntertainment,
	CategoryHealth,
	CategoryScience,
	CategoryWorld,
	CategoryLocal,
}

var categoryIcons = map[Category]string{
	CategoryTechnology:    "💻",
	CategoryBusiness:      "💼",
	CategoryPolitics:      "🏛️",
	CategorySports:        "⚽",
	CategoryEntertainment: "🎬",
	CategoryHealth:        "🏥",
	CategoryScience:       "🔬",
	CategoryWorld:         "🌍",
	CategoryLocal:         "📍",
}

// Categories returns every known category in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory maps user input onto a known category.
func ParseCategory(value string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(value)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", value)
	}
	return c, nil
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	_, ok := categoryIcons[c]
	return ok
}

// DisplayName is the human-facing label, e.g. "Technology".
func (c Category) DisplayName() string {
	// a Caser is stateful, so one is built per call
	return cases.Title(language.English).String(string(c))
}

// Icon returns the emoji shown next to the category.
func (c Category) Icon() string {
	return categoryIcons[c]
}

func (c Category) String() string {
	return string(c)
}
