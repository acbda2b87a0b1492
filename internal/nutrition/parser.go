package nutrition

import (
	"math"
	"strconv"
	"strings"

	"github.com/fdg312/health-assistant/internal/storage"
)

// ParseMealItems splits "food:grams, food:grams" into items.
// Blank tokens are dropped; every other token yields an item, rejected ones carry Err.
func ParseMealItems(text string) []ParsedItem {
	tokens := strings.Split(text, ",")
	items := make([]ParsedItem, 0, len(tokens))

	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		items = append(items, parseToken(tok))
	}
	return items
}

func parseToken(tok string) ParsedItem {
	item := ParsedItem{Raw: tok}

	parts := strings.Split(tok, ":")
	if len(parts) != 2 {
		item.Err = &ParseError{Token: tok, Kind: KindFormat}
		return item
	}

	item.Food = Normalize(parts[0])
	if item.Food == "" {
		item.Err = &ParseError{Token: tok, Kind: KindFormat}
		return item
	}

	grams, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		item.Err = &ParseError{Token: tok, Kind: KindQuantity}
		return item
	}
	if grams <= 0 || math.IsNaN(grams) || math.IsInf(grams, 0) {
		item.Err = &ParseError{Token: tok, Kind: KindNonPositive}
		return item
	}

	item.Grams = grams
	return item
}

// Scale returns the nutrients of grams of food given per-100 g values.
func Scale(food storage.FoodProfile, grams float64) storage.Nutrients {
	m := grams / 100
	return storage.Nutrients{
		Calories: food.Calories * m,
		Protein:  food.Protein * m,
		Carbs:    food.Carbs * m,
		Fats:     food.Fats * m,
		Fiber:    food.Fiber * m,
	}
}
