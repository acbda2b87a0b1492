package recommend

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fdg312/health-assistant/internal/routines"
	"github.com/fdg312/health-assistant/internal/storage"
)

var (
	// ErrNoCalorieGoal is returned when the profile has no daily calorie goal.
	ErrNoCalorieGoal = errors.New("daily calorie goal is not set")
	// ErrEmptyPantry is returned when a pantry-based suggestion has nothing to work with.
	ErrEmptyPantry = errors.New("pantry is empty")
)

// MealType — тип приёма пищи
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

// MealTypes in daily order.
var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snack}

// UnknownMealTypeError lists the accepted values.
type UnknownMealTypeError struct {
	Value string
}

func (e *UnknownMealTypeError) Error() string {
	valid := make([]string, len(MealTypes))
	for i, m := range MealTypes {
		valid[i] = string(m)
	}
	return fmt.Sprintf("unknown meal type %q, use one of: %s", e.Value, strings.Join(valid, ", "))
}

// ParseMealType accepts a meal type in any case.
func ParseMealType(s string) (MealType, error) {
	m := MealType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range MealTypes {
		if m == known {
			return m, nil
		}
	}
	return "", &UnknownMealTypeError{Value: s}
}

// Fraction is the share of the daily goal planned for the meal.
func (m MealType) Fraction() float64 {
	switch m {
	case Breakfast:
		return 0.25
	case Lunch:
		return 0.35
	case Dinner:
		return 0.30
	case Snack:
		return 0.10
	}
	return 0
}

// Budget — калорийный бюджет на сегодня
type Budget struct {
	Goal      float64
	Consumed  float64
	Remaining float64
}

// MealBudget — бюджет с целевой калорийностью конкретного приёма
type MealBudget struct {
	Budget
	MealType MealType
	Target   float64
	// LowRemaining is set when little is left and the meal is not a snack.
	LowRemaining bool
}

// Option — готовый вариант приёма пищи в формате log_meal
type Option struct {
	Foods       string `mapstructure:"foods"`
	Description string `mapstructure:"description"`
}

// FoodsResult — рекомендации по региону
type FoodsResult struct {
	MealBudget
	Region  string
	Options []Option
}

// Suggestion — сработавший рецепт из кладовой
type Suggestion struct {
	Name        string
	Description string
	Foods       string
}

// PantryResult — рекомендации только из кладовой
type PantryResult struct {
	MealBudget
	Available   []storage.PantryRow
	Suggestions []Suggestion
}

// RoutineQuery — параметры рекомендации по рутинам
type RoutineQuery struct {
	// Period is "current" or a band name.
	Period string
	// Effort is "all" or an effort level.
	Effort        string
	IncludePantry bool
}

// RoutineResult — рекомендации по привычкам для временного окна
type RoutineResult struct {
	Budget
	Band     routines.Band
	Routines []storage.RoutineRow
	Pantry   []storage.PantryRow
}

// Empty reports whether there is nothing to suggest for the band.
func (r RoutineResult) Empty() bool {
	return len(r.Routines) == 0 && len(r.Pantry) == 0
}

// SmartPick is the best ranked routine, or nil.
func (r RoutineResult) SmartPick() *storage.RoutineRow {
	if len(r.Routines) == 0 {
		return nil
	}
	return &r.Routines[0]
}

// Groups returns routines per effort group, keeping rank order inside each group.
func (r RoutineResult) Groups() map[string][]storage.RoutineRow {
	out := make(map[string][]storage.RoutineRow)
	for _, row := range r.Routines {
		g := routines.EffortGroup(row.EffortLevel)
		out[g] = append(out[g], row)
	}
	return out
}
