package profile

import "strings"

// Category is the canonical content/industry category enumeration shared by
// all submission paths. Unrecognized labels fold to CategoryOther.
type Category string

const (
	CategoryFashionBeauty Category = "fashion_beauty"
	CategoryTechnology    Category = "technology"
	CategoryFitnessHealth Category = "fitness_health"
	CategoryFoodCooking   Category = "food_cooking"
	CategoryTravel        Category = "travel"
	CategoryGaming        Category = "gaming"
	CategoryEntertainment Category = "entertainment"
	CategoryEducation     Category = "education"
	CategoryLifestyle     Category = "lifestyle"
	CategoryParenting     Category = "parenting"
	CategoryBusiness      Category = "business"
	CategoryArtDesign     Category = "art_design"
	CategoryMusic         Category = "music"
	CategorySports        Category = "sports"
	CategoryHomeGarden    Category = "home_garden"
	CategoryAutomotive    Category = "automotive"
	CategoryPets          Category = "pets"
	CategoryOther         Category = "other"
)

// categoryLabels maps the free-text labels used across signup forms onto the
// canonical enumeration. Lookup is case-insensitive.
var categoryLabels = map[string]Category{
	"fashion":           CategoryFashionBeauty,
	"fashion & beauty":  CategoryFashionBeauty,
	"fashion_beauty":    CategoryFashionBeauty,
	"beauty":            CategoryFashionBeauty,
	"technology":        CategoryTechnology,
	"tech":              CategoryTechnology,
	"fitness":           CategoryFitnessHealth,
	"fitness & health":  CategoryFitnessHealth,
	"fitness_health":    CategoryFitnessHealth,
	"health":            CategoryFitnessHealth,
	"food":              CategoryFoodCooking,
	"food & cooking":    CategoryFoodCooking,
	"food & beverage":   CategoryFoodCooking,
	"food_cooking":      CategoryFoodCooking,
	"travel":            CategoryTravel,
	"travel & tourism":  CategoryTravel,
	"gaming":            CategoryGaming,
	"entertainment":     CategoryEntertainment,
	"education":         CategoryEducation,
	"lifestyle":         CategoryLifestyle,
	"parenting":         CategoryParenting,
	"business":          CategoryBusiness,
	"art & design":      CategoryArtDesign,
	"art_design":        CategoryArtDesign,
	"music":             CategoryMusic,
	"sports":            CategorySports,
	"home & garden":     CategoryHomeGarden,
	"home_garden":       CategoryHomeGarden,
	"automotive":        CategoryAutomotive,
	"pets":              CategoryPets,
	"other":             CategoryOther,
}

// ParseCategory resolves a free-text label to its canonical category.
// Unknown or empty labels resolve to CategoryOther, never to an empty value.
func ParseCategory(label string) Category {
	if c, ok := categoryLabels[strings.ToLower(strings.TrimSpace(label))]; ok {
		return c
	}
	return CategoryOther
}

// ParseCategories maps a slice of labels, deduplicating while preserving the
// first-seen order.
func ParseCategories(labels []string) []Category {
	if len(labels) == 0 {
		return nil
	}
	seen := make(map[Category]bool, len(labels))
	out := make([]Category, 0, len(labels))
	for _, l := range labels {
		c := ParseCategory(l)
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// IsValid reports whether c is a member of the canonical enumeration.
func (c Category) IsValid() bool {
	for _, known := range categoryLabels {
		if known == c {
			return true
		}
	}
	return false
}
