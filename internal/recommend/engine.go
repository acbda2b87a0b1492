package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fdg312/health-assistant/internal/profiles"
	"github.com/fdg312/health-assistant/internal/routines"
	"github.com/fdg312/health-assistant/internal/storage"
)

// ErrUnknownEffort is returned for an effort filter other than all/easy/medium/hard.
var ErrUnknownEffort = errors.New("unknown effort level, use all, easy, medium or hard")

// DefaultLowRemainingKcal — порог предупреждения о малом остатке
const DefaultLowRemainingKcal = 500

// sleepWindowDays — окно усреднения сна для плана тренировок
const sleepWindowDays = 7

type ProfileReader interface {
	Get(ctx context.Context) (storage.UserProfile, error)
}

type DayReader interface {
	ConsumedOn(ctx context.Context, date string) (float64, error)
	AverageSleep(ctx context.Context, days int) (avg float64, ok bool, err error)
}

type PantryReader interface {
	List(ctx context.Context) ([]storage.PantryRow, error)
}

type RoutineReader interface {
	ForBand(ctx context.Context, band routines.Band, effort string) ([]storage.RoutineRow, error)
}

type WeightReader interface {
	LatestWeightBefore(ctx context.Context, before string) (*storage.WeightEntry, error)
}

// Deps — источники данных движка
type Deps struct {
	Profiles ProfileReader
	Days     DayReader
	Pantry   PantryReader
	Routines RoutineReader
	Weight   WeightReader
}

// Engine строит рекомендации из профиля, сегодняшнего журнала, кладовой и рутин.
// Profile is read on every call.
type Engine struct {
	deps         Deps
	rules        Rules
	lowRemaining float64

	Now func() time.Time
}

// NewEngine creates an engine; lowRemaining <= 0 selects DefaultLowRemainingKcal.
func NewEngine(deps Deps, rules Rules, lowRemaining float64) *Engine {
	if lowRemaining <= 0 {
		lowRemaining = DefaultLowRemainingKcal
	}
	return &Engine{deps: deps, rules: rules, lowRemaining: lowRemaining, Now: time.Now}
}

// Rules returns the region table in use.
func (e *Engine) Rules() Rules {
	return e.rules
}

// MARK: - Budget

func (e *Engine) profile(ctx context.Context) (storage.UserProfile, error) {
	p, err := e.deps.Profiles.Get(ctx)
	if errors.Is(err, profiles.ErrNotFound) || errors.Is(err, storage.ErrNotFound) {
		return storage.UserProfile{}, ErrNoCalorieGoal
	}
	if err != nil {
		return storage.UserProfile{}, err
	}
	if p.DailyCalorieGoal == nil || *p.DailyCalorieGoal <= 0 {
		return storage.UserProfile{}, ErrNoCalorieGoal
	}
	return p, nil
}

func (e *Engine) budget(ctx context.Context, p storage.UserProfile) (Budget, error) {
	today := e.Now().Format(storage.DateLayout)
	consumed, err := e.deps.Days.ConsumedOn(ctx, today)
	if err != nil {
		return Budget{}, fmt.Errorf("consumed today: %w", err)
	}
	goal := *p.DailyCalorieGoal
	return Budget{Goal: goal, Consumed: consumed, Remaining: goal - consumed}, nil
}

func (e *Engine) mealBudget(b Budget, meal MealType) MealBudget {
	return MealBudget{
		Budget:       b,
		MealType:     meal,
		Target:       b.Goal * meal.Fraction(),
		LowRemaining: b.Remaining < e.lowRemaining && meal != Snack,
	}
}

// MARK: - Foods

// Foods suggests the region menu for mealType within today's calorie budget.
func (e *Engine) Foods(ctx context.Context, mealType string) (FoodsResult, error) {
	meal, err := ParseMealType(mealType)
	if err != nil {
		return FoodsResult{}, err
	}
	p, err := e.profile(ctx)
	if err != nil {
		return FoodsResult{}, err
	}
	b, err := e.budget(ctx, p)
	if err != nil {
		return FoodsResult{}, err
	}

	rule := e.rules.For(p.Region)
	return FoodsResult{
		MealBudget: e.mealBudget(b, meal),
		Region:     rule.Name,
		Options:    rule.Menu(meal),
	}, nil
}

// MARK: - Pantry

// FromPantry suggests recipes that use only available pantry foods.
// Suggestions may be empty when no recipe fires.
func (e *Engine) FromPantry(ctx context.Context, mealType string) (PantryResult, error) {
	meal, err := ParseMealType(mealType)
	if err != nil {
		return PantryResult{}, err
	}
	p, err := e.profile(ctx)
	if err != nil {
		return PantryResult{}, err
	}
	b, err := e.budget(ctx, p)
	if err != nil {
		return PantryResult{}, err
	}

	rows, err := e.deps.Pantry.List(ctx)
	if err != nil {
		return PantryResult{}, fmt.Errorf("list pantry: %w", err)
	}
	if len(rows) == 0 {
		return PantryResult{}, ErrEmptyPantry
	}

	have := make(map[string]bool, len(rows))
	for _, r := range rows {
		have[r.FoodName] = true
	}
	available := func(food string) bool { return have[food] }

	result := PantryResult{MealBudget: e.mealBudget(b, meal), Available: rows}
	for _, recipe := range Recipes {
		if s, ok := recipe.Match(available); ok {
			result.Suggestions = append(result.Suggestions, s)
		}
	}
	return result, nil
}

// MARK: - Routines

// FromRoutines returns ranked routines for the requested band ("current" resolves
// from the clock) and, optionally, the pantry. An empty result is not an error.
func (e *Engine) FromRoutines(ctx context.Context, q RoutineQuery) (RoutineResult, error) {
	band, err := e.resolveBand(q.Period)
	if err != nil {
		return RoutineResult{}, err
	}
	effort := strings.ToLower(strings.TrimSpace(q.Effort))
	if effort != "" && effort != "all" && !validEffort(effort) {
		return RoutineResult{}, ErrUnknownEffort
	}

	p, err := e.profile(ctx)
	if err != nil {
		return RoutineResult{}, err
	}
	b, err := e.budget(ctx, p)
	if err != nil {
		return RoutineResult{}, err
	}

	result := RoutineResult{Budget: b, Band: band}
	result.Routines, err = e.deps.Routines.ForBand(ctx, band, effort)
	if err != nil {
		return RoutineResult{}, err
	}

	if q.IncludePantry {
		result.Pantry, err = e.deps.Pantry.List(ctx)
		if err != nil {
			return RoutineResult{}, fmt.Errorf("list pantry: %w", err)
		}
	}
	return result, nil
}

func (e *Engine) resolveBand(period string) (routines.Band, error) {
	period = strings.ToLower(strings.TrimSpace(period))
	if period == "" || period == "current" {
		return routines.BandForHour(e.Now().Hour()), nil
	}
	return routines.ParseBand(period)
}

func validEffort(level string) bool {
	for _, known := range routines.Efforts {
		if level == known {
			return true
		}
	}
	return false
}

// MARK: - Exercise

// Exercise picks one of three fixed plans from the 7-day sleep average and
// sets the goal from the latest weight against the profile target.
func (e *Engine) Exercise(ctx context.Context) (ExercisePlan, error) {
	avg, ok, err := e.deps.Days.AverageSleep(ctx, sleepWindowDays)
	if err != nil {
		return ExercisePlan{}, fmt.Errorf("average sleep: %w", err)
	}

	plan := ExercisePlan{Intensity: IntensityForSleep(avg, ok)}
	if ok {
		plan.AverageSleep = &avg
	}

	p, err := e.deps.Profiles.Get(ctx)
	switch {
	case errors.Is(err, profiles.ErrNotFound), errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return ExercisePlan{}, err
	default:
		plan.TargetKg = p.TargetWeightKg
	}

	latest, err := e.deps.Weight.LatestWeightBefore(ctx, "")
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return ExercisePlan{}, fmt.Errorf("latest weight: %w", err)
	default:
		w := latest.WeightKg
		plan.CurrentKg = &w
	}

	plan.Goal = goalFor(plan.CurrentKg, plan.TargetKg)
	plan.Exercises = exercises[plan.Intensity]
	plan.Tips = exerciseTips
	return plan, nil
}
