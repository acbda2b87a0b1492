package routines

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fdg312/health-assistant/internal/nutrition"
	"github.com/fdg312/health-assistant/internal/storage"
)

var validate = validator.New()

const (
	DefaultPortionGrams = 100
	DefaultPreference   = 5
)

// AddRequest — привычный продукт и окна, когда его едят
type AddRequest struct {
	FoodName            string  `validate:"required"`
	Bands               []Band  `validate:"dive,oneof=morning midday afternoon evening night latenight"`
	PreparationType     string  `validate:"max=50"`
	EffortLevel         string  `validate:"oneof=easy medium hard"`
	TypicalPortionGrams float64 `validate:"gt=0"`
	PreferenceScore     int     `validate:"min=1,max=10"`
	Notes               string  `validate:"max=500"`
}

// Validate normalizes the request and fills defaults for zero values.
func (r *AddRequest) Validate() error {
	r.FoodName = nutrition.Normalize(r.FoodName)
	r.PreparationType = strings.TrimSpace(r.PreparationType)
	r.Notes = strings.TrimSpace(r.Notes)
	r.EffortLevel = strings.ToLower(strings.TrimSpace(r.EffortLevel))
	if r.EffortLevel == "" {
		r.EffortLevel = EffortEasy
	}
	if r.TypicalPortionGrams == 0 {
		r.TypicalPortionGrams = DefaultPortionGrams
	}
	if r.PreferenceScore == 0 {
		r.PreferenceScore = DefaultPreference
	}
	return validate.Struct(r)
}

// AddResult reports the stored item and whether it was new.
type AddResult struct {
	Item    storage.RoutineItem
	Created bool
}

// BulkEntry — продукт, успешно привязанный к окну
type BulkEntry struct {
	FoodName string
	Band     Band
}

// BulkResult — итог массовой настройки
type BulkResult struct {
	Added  []BulkEntry
	Failed []string // unknown foods
}

// PortionCalories returns the calories of one typical portion of row.
func PortionCalories(row storage.RoutineRow) float64 {
	return row.Food.Calories * row.TypicalPortionGrams / 100
}

// PortionProtein returns the protein grams of one typical portion of row.
func PortionProtein(row storage.RoutineRow) float64 {
	return row.Food.Protein * row.TypicalPortionGrams / 100
}
