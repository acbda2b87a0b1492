package recommend

import (
	"strconv"
	"strings"
)

// Portion — продукт и граммовка в рецепте
type Portion struct {
	Food  string
	Grams float64
}

// Recipe fires when every Requires food is in the pantry; Optional foods are
// appended when present.
type Recipe struct {
	Name        string
	Description string
	Requires    []Portion
	Optional    []Portion
}

// Recipes — фиксированный список комбинаций из кладовой
var Recipes = []Recipe{
	{
		Name:        "Protein Bowl",
		Description: "High protein balanced meal",
		Requires:    []Portion{{"chicken breast", 150}, {"brown rice", 150}},
	},
	{
		Name:        "Healthy Omelette",
		Description: "Quick protein-rich option",
		Requires:    []Portion{{"eggs", 100}, {"spinach", 50}},
	},
	{
		Name:        "Traditional Indian",
		Description: "Balanced vegetarian meal",
		Requires:    []Portion{{"roti", 120}, {"dal", 100}},
	},
	{
		Name:        "Oats Bowl",
		Description: "Healthy breakfast",
		Requires:    []Portion{{"oatmeal", 50}},
		Optional:    []Portion{{"banana", 100}},
	},
	{
		Name:        "Chicken Pasta",
		Description: "Balanced protein meal",
		Requires:    []Portion{{"pasta", 100}, {"chicken breast", 100}},
	},
	{
		Name:        "Rice & Dal",
		Description: "Complete protein vegetarian",
		Requires:    []Portion{{"brown rice", 150}, {"dal", 100}},
	},
}

// Match returns the suggestion for available foods, or false when a required food is missing.
func (r Recipe) Match(available func(food string) bool) (Suggestion, bool) {
	parts := make([]Portion, 0, len(r.Requires)+len(r.Optional))
	for _, p := range r.Requires {
		if !available(p.Food) {
			return Suggestion{}, false
		}
		parts = append(parts, p)
	}
	for _, p := range r.Optional {
		if available(p.Food) {
			parts = append(parts, p)
		}
	}
	return Suggestion{Name: r.Name, Description: r.Description, Foods: formatPortions(parts)}, true
}

// formatPortions renders "food:grams, food:grams" accepted by log_meal.
func formatPortions(parts []Portion) string {
	items := make([]string, len(parts))
	for i, p := range parts {
		items[i] = p.Food + ":" + strconv.FormatFloat(p.Grams, 'f', -1, 64)
	}
	return strings.Join(items, ", ")
}
