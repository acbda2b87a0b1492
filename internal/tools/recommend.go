package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fdg312/health-assistant/internal/recommend"
	"github.com/fdg312/health-assistant/internal/routines"
)

const noCalorieGoal = "❌ Please set your daily calorie goal first using set_user_profile()"

func mealTypeArg() mcp.ToolOption {
	names := make([]string, len(recommend.MealTypes))
	for i, m := range recommend.MealTypes {
		names[i] = string(m)
	}
	return mcp.WithString("meal_type",
		mcp.Description("Meal to plan"),
		mcp.Enum(names...),
		mcp.DefaultString(string(recommend.Lunch)),
	)
}

// MARK: - Recommendations

func (r *Registry) recommendTools() []tool {
	return []tool{
		{
			def: mcp.NewTool("recommend_foods",
				mcp.WithDescription("Recommend foods based on your daily calorie goal, what you've eaten today and your region."),
				mealTypeArg(),
				mcp.WithBoolean("pantry_only",
					mcp.Description("Only recommend from foods in your pantry"),
					mcp.DefaultBool(false),
				),
			),
			handle: r.recommendFoods,
		},
		{
			def: mcp.NewTool("recommend_from_pantry",
				mcp.WithDescription("Recommend meals using only foods available in your pantry, within today's calorie budget."),
				mealTypeArg(),
			),
			handle: r.recommendFromPantry,
		},
		{
			def: mcp.NewTool("recommend_from_routines",
				mcp.WithDescription("Food options from your time-based routines for now or a chosen time period, "+
					"ranked by preference and effort, with today's calorie budget."),
				mcp.WithString("time_period",
					mcp.Description("'current' (from the clock) or a time period"),
					mcp.Enum(append([]string{"current"}, bandNames()...)...),
					mcp.DefaultString("current"),
				),
				mcp.WithString("filter_by_effort",
					mcp.Description("Only show one effort level"),
					mcp.Enum(append([]string{"all"}, routines.Efforts...)...),
					mcp.DefaultString("all"),
				),
				mcp.WithBoolean("include_pantry",
					mcp.Description("Also show foods from your pantry"),
					mcp.DefaultBool(true),
				),
			),
			handle: r.recommendFromRoutines,
		},
		{
			def: mcp.NewTool("recommend_exercise",
				mcp.WithDescription("Recommend exercises based on your recent sleep and weight goal."),
			),
			handle: r.recommendExercise,
		},
	}
}

func (r *Registry) recommendFoods(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	if req.GetBool("pantry_only", false) {
		return r.recommendFromPantry(ctx, req)
	}

	res, err := r.svc.Recommend.Foods(ctx, req.GetString("meal_type", string(recommend.Lunch)))
	if errors.Is(err, recommend.ErrNoCalorieGoal) {
		return noCalorieGoal, nil
	}
	if err != nil {
		return "", err
	}
	return formatFoods(res), nil
}

func formatFoods(res recommend.FoodsResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🍽️ Food Recommendations for %s:\n\n", title(string(res.MealType)))
	b.WriteString("📊 Today's Status:\n")
	fmt.Fprintf(&b, "  Goal: %.0f kcal\n", res.Goal)
	fmt.Fprintf(&b, "  Consumed: %.0f kcal\n", res.Consumed)
	fmt.Fprintf(&b, "  Remaining: %.0f kcal\n\n", res.Remaining)
	fmt.Fprintf(&b, "🎯 Target for %s: ~%.0f kcal\n\n", res.MealType, res.Target)

	b.WriteString("Suggested meals:\n\n")
	for i, o := range res.Options {
		fmt.Fprintf(&b, "%d. %s:\n", i+1, o.Description)
		fmt.Fprintf(&b, "   Foods: %s\n", o.Foods)
		fmt.Fprintf(&b, "   💡 Use: log_meal(\"%s\")\n\n", o.Foods)
	}
	if res.LowRemaining {
		b.WriteString("⚠️ Low remaining calories! Consider lighter options or adjust your goal.\n")
	}
	return b.String()
}

func (r *Registry) recommendFromPantry(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	res, err := r.svc.Recommend.FromPantry(ctx, req.GetString("meal_type", string(recommend.Lunch)))
	switch {
	case errors.Is(err, recommend.ErrNoCalorieGoal):
		return noCalorieGoal, nil
	case errors.Is(err, recommend.ErrEmptyPantry):
		return "🍽️ Your pantry is empty! Add foods with add_to_pantry() first.", nil
	case err != nil:
		return "", err
	}
	return formatPantryMeals(res), nil
}

func formatPantryMeals(res recommend.PantryResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🍽️ Meal Recommendations from YOUR PANTRY (%s):\n\n", title(string(res.MealType)))
	fmt.Fprintf(&b, "📊 Today: %.0f/%.0f kcal consumed, %.0f remaining\n\n", res.Consumed, res.Goal, res.Remaining)
	fmt.Fprintf(&b, "🎯 Target for %s: ~%.0f kcal\n\n", res.MealType, res.Target)

	b.WriteString("Available ingredients:\n")
	for _, row := range res.Available {
		b.WriteString("  • " + title(row.FoodName))
		if row.QuantityGrams != nil {
			fmt.Fprintf(&b, " (%sg)", num(*row.QuantityGrams))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n💡 Suggested combinations:\n\n")
	if len(res.Suggestions) == 0 {
		b.WriteString("⚠️ Not enough variety for meal suggestions.\n")
		b.WriteString("Try combining what you have or add more foods to pantry!")
		return b.String()
	}
	for i, s := range res.Suggestions {
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, s.Name, s.Description)
		fmt.Fprintf(&b, "   Foods: %s\n", s.Foods)
		fmt.Fprintf(&b, "   💡 Use: log_meal(\"%s\")\n\n", s.Foods)
	}
	return b.String()
}

var bandEmoji = map[routines.Band]string{
	routines.Morning:   "🌅",
	routines.Midday:    "☀️",
	routines.Afternoon: "🌤️",
	routines.Evening:   "🌆",
	routines.Night:     "🌙",
	routines.LateNight: "🌃",
}

var effortHeaders = []struct {
	group, emoji string
}{
	{routines.EffortEasy, "⚡"},
	{routines.EffortMedium, "🔥"},
	{routines.EffortHard, "💪"},
}

func (r *Registry) recommendFromRoutines(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	res, err := r.svc.Recommend.FromRoutines(ctx, recommend.RoutineQuery{
		Period:        req.GetString("time_period", "current"),
		Effort:        req.GetString("filter_by_effort", "all"),
		IncludePantry: req.GetBool("include_pantry", true),
	})
	if errors.Is(err, recommend.ErrNoCalorieGoal) {
		return noCalorieGoal, nil
	}
	if err != nil {
		return "", err
	}
	return formatRoutineOptions(res), nil
}

func formatRoutineOptions(res recommend.RoutineResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s Food Options:\n\n", bandEmoji[res.Band], title(string(res.Band)))
	fmt.Fprintf(&b, "📊 Today: %.0f/%.0f kcal | Remaining: %.0f kcal\n\n", res.Consumed, res.Goal, res.Remaining)

	if res.Empty() {
		fmt.Fprintf(&b, "⚠️ No routines set for %s!\n", res.Band)
		b.WriteString("💡 Add foods with: add_to_food_routine()\n")
		b.WriteString("💡 Or add to pantry with: add_to_pantry()")
		return b.String()
	}

	if len(res.Routines) > 0 {
		b.WriteString("**Your Usual Options:**\n\n")
		groups := res.Groups()
		for _, h := range effortHeaders {
			rows := groups[h.group]
			if len(rows) == 0 {
				continue
			}
			fmt.Fprintf(&b, "%s **%s Options:**\n", h.emoji, title(h.group))
			for _, row := range rows {
				fmt.Fprintf(&b, "  • %s (%s) - %.0f cal, %.1fg protein\n",
					title(row.FoodName), row.PreparationType, routines.PortionCalories(row), routines.PortionProtein(row))
				fmt.Fprintf(&b, "    %sg portion | ⭐%d/10", num(row.TypicalPortionGrams), row.PreferenceScore)
				if row.Notes != "" {
					b.WriteString(" | " + row.Notes)
				}
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
	}

	if len(res.Pantry) > 0 {
		b.WriteString("**From Your Pantry:**\n")
		for _, row := range res.Pantry {
			b.WriteString("  • " + title(row.FoodName))
			if row.QuantityGrams != nil {
				fmt.Fprintf(&b, " (%sg available)", num(*row.QuantityGrams))
			}
			fmt.Fprintf(&b, " - %scal/100g\n", num(row.Food.Calories))
		}
		b.WriteString("\n")
	}

	b.WriteString("💡 **Smart Pick:** ")
	if best := res.SmartPick(); best != nil {
		fmt.Fprintf(&b, "%s (%s, %s) = %.0f cal",
			title(best.FoodName), best.PreparationType, best.EffortLevel, routines.PortionCalories(*best))
	}
	return b.String()
}

var sleepNotes = map[recommend.Intensity]string{
	recommend.IntensityLight:    "   ⚠️ Low energy expected - Focus on light exercises\n",
	recommend.IntensityModerate: "   💡 Moderate energy - Light to moderate exercise\n",
	recommend.IntensityHigh:     "   ✅ Good energy - You can do intense workouts!\n",
}

func (r *Registry) recommendExercise(ctx context.Context, _ mcp.CallToolRequest) (string, error) {
	plan, err := r.svc.Recommend.Exercise(ctx)
	if err != nil {
		return "", err
	}
	return formatExercisePlan(plan), nil
}

func formatExercisePlan(plan recommend.ExercisePlan) string {
	var b strings.Builder
	b.WriteString("💪 Exercise Recommendations:\n\n")

	if plan.AverageSleep != nil {
		fmt.Fprintf(&b, "😴 Sleep: %.1f hours/night average\n", *plan.AverageSleep)
		b.WriteString(sleepNotes[plan.Intensity])
	} else {
		b.WriteString("💤 No sleep data - Recommending moderate exercises\n")
	}
	b.WriteString("\n")

	switch plan.Goal {
	case recommend.GoalWeightLoss:
		fmt.Fprintf(&b, "🎯 Goal: Weight loss (%.1fkg → %.1fkg)\n\n", *plan.CurrentKg, *plan.TargetKg)
	case recommend.GoalWeightGain:
		fmt.Fprintf(&b, "🎯 Goal: Weight gain (%.1fkg → %.1fkg)\n\n", *plan.CurrentKg, *plan.TargetKg)
	case recommend.GoalMaintenance:
		fmt.Fprintf(&b, "🎯 Goal: Maintain weight (%.1fkg)\n\n", *plan.CurrentKg)
	default:
		b.WriteString("🎯 Goal: General health and energy\n\n")
	}

	b.WriteString("📋 Recommended Exercises:\n\n")
	for i, ex := range plan.Exercises {
		fmt.Fprintf(&b, "%d. %s\n", i+1, ex.Name)
		for _, d := range ex.Details {
			fmt.Fprintf(&b, "   - %s\n", d)
		}
		b.WriteString("\n")
	}

	b.WriteString("💡 Tips:\n")
	for _, tip := range plan.Tips {
		fmt.Fprintf(&b, "  - %s\n", tip)
	}
	return b.String()
}
