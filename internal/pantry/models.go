package pantry

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fdg312/health-assistant/internal/nutrition"
	"github.com/fdg312/health-assistant/internal/storage"
)

var validate = validator.New()

// ErrNotInPantry is returned when removing a food that was never added.
var ErrNotInPantry = errors.New("food is not in pantry")

// AddRequest — добавление или обновление позиции кладовой
type AddRequest struct {
	FoodName      string   `validate:"required"`
	QuantityGrams *float64 `validate:"omitempty,gt=0"`
	Notes         string   `validate:"max=500"`
}

func (r *AddRequest) Validate() error {
	r.FoodName = nutrition.Normalize(r.FoodName)
	r.Notes = strings.TrimSpace(r.Notes)
	return validate.Struct(r)
}

// AddResult reports the stored item and whether it was new.
type AddResult struct {
	Item    storage.PantryItem
	Created bool
}
