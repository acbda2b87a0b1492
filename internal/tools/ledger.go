package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fdg312/health-assistant/internal/ledger"
	"github.com/fdg312/health-assistant/internal/nutrition"
)

const dateHelp = "Date in YYYY-MM-DD format (default: today)"

// MARK: - Journals

func (r *Registry) ledgerTools() []tool {
	return []tool{
		{
			def: mcp.NewTool("log_meal",
				mcp.WithDescription("Log a meal broken down into foods and quantities. "+
					"Provide items as \"food_name:quantity_grams\" separated by commas, "+
					"e.g. \"chicken breast:150, brown rice:100, broccoli:80\"."),
				mcp.WithString("food_items", mcp.Required(),
					mcp.Description("Comma-separated list of \"food:quantity\" in grams")),
				mcp.WithString("date", mcp.Description(dateHelp)),
			),
			handle: r.logMeal,
		},
		{
			def: mcp.NewTool("log_sleep",
				mcp.WithDescription("Log sleep: when you went to sleep and when you woke up. "+
					"Sleep across midnight is handled, e.g. 23:00 → 07:00 is 8 hours."),
				mcp.WithString("sleep_time", mcp.Required(), mcp.Description("Time you went to sleep (HH:MM, e.g. \"23:30\")")),
				mcp.WithString("wake_time", mcp.Required(), mcp.Description("Time you woke up (HH:MM, e.g. \"07:00\")")),
				mcp.WithString("date", mcp.Description(dateHelp)),
				mcp.WithString("quality",
					mcp.Description("Sleep quality"),
					mcp.Enum(ledger.SleepQualities...),
					mcp.DefaultString("good"),
				),
				mcp.WithString("notes", mcp.Description("Optional notes about sleep")),
			),
			handle: r.logSleep,
		},
		{
			def: mcp.NewTool("log_weight",
				mcp.WithDescription("Log your weight to track progress."),
				mcp.WithNumber("weight_kg", mcp.Required(), mcp.Description("Your weight in kilograms")),
				mcp.WithString("date", mcp.Description(dateHelp)),
				mcp.WithString("notes", mcp.Description("Optional notes")),
			),
			handle: r.logWeight,
		},
		{
			def: mcp.NewTool("log_exercise",
				mcp.WithDescription("Log an exercise session. Calories burned are estimated from duration and intensity."),
				mcp.WithString("exercise_name", mcp.Required(), mcp.Description("Name of exercise (e.g. \"running\", \"yoga\", \"gym\")")),
				mcp.WithNumber("duration_minutes", mcp.Required(), mcp.Description("Duration in minutes")),
				mcp.WithString("intensity",
					mcp.Description("Exercise intensity"),
					mcp.Enum("light", "moderate", "intense"),
					mcp.DefaultString("moderate"),
				),
				mcp.WithString("date", mcp.Description(dateHelp)),
			),
			handle: r.logExercise,
		},
	}
}

func (r *Registry) logMeal(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	items, err := requiredString(req, "food_items")
	if err != nil {
		return "", err
	}
	log, err := r.svc.Ledger.LogMeal(ctx, items, req.GetString("date", ""))
	if err != nil {
		return "", err
	}
	return formatMealLog(log), nil
}

func formatMealLog(log ledger.MealLog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Meal logged for %s:\n\n", log.Date)

	for _, e := range log.Items {
		fmt.Fprintf(&b, "✓ %s (%sg): %.0fcal, P:%.1fg, C:%.1fg, F:%.1fg\n",
			title(e.FoodName), num(e.QuantityGrams), e.Calories, e.Protein, e.Carbs, e.Fats)
	}
	for _, name := range log.Skipped {
		fmt.Fprintf(&b, "⚠️  '%s' not found in database. Skipped.\n", name)
	}
	for _, pe := range log.Invalid {
		if pe.Kind == nutrition.KindNonPositive {
			fmt.Fprintf(&b, "⚠️  Quantity must be positive for item: '%s'\n", pe.Token)
			continue
		}
		fmt.Fprintf(&b, "⚠️  Invalid format for item: '%s'. Use 'food:quantity'\n", pe.Token)
	}

	t := log.Total
	fmt.Fprintf(&b, "\n📊 TOTAL: %.0f calories, Protein: %.1fg, Carbs: %.1fg, Fats: %.1fg, Fiber: %.1fg",
		t.Calories, t.Protein, t.Carbs, t.Fats, t.Fiber)
	return b.String()
}

var qualityEmoji = map[string]string{
	"excellent": "😴✨",
	"good":      "😊",
	"fair":      "😐",
	"poor":      "😞",
}

func (r *Registry) logSleep(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	sleepTime, err := requiredString(req, "sleep_time")
	if err != nil {
		return "", err
	}
	wakeTime, err := requiredString(req, "wake_time")
	if err != nil {
		return "", err
	}

	e, err := r.svc.Ledger.LogSleep(ctx, ledger.SleepRequest{
		SleepTime: sleepTime,
		WakeTime:  wakeTime,
		Date:      req.GetString("date", ""),
		Quality:   req.GetString("quality", "good"),
		Notes:     req.GetString("notes", ""),
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✓ Sleep logged for %s:\n", e.Date)
	fmt.Fprintf(&b, "  Slept: %s\n  Woke: %s\n", e.SleepTime, e.WakeTime)
	fmt.Fprintf(&b, "  Duration: %.1f hours\n", e.Hours)
	fmt.Fprintf(&b, "  Quality: %s %s", e.Quality, qualityEmoji[e.Quality])
	if e.Notes != "" {
		fmt.Fprintf(&b, "\n  %s", e.Notes)
	}
	return b.String(), nil
}

func (r *Registry) logWeight(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	kg, err := requiredFloat(req, "weight_kg")
	if err != nil {
		return "", err
	}
	log, err := r.svc.Ledger.LogWeight(ctx, ledger.WeightRequest{
		WeightKg: kg,
		Date:     req.GetString("date", ""),
		Notes:    req.GetString("notes", ""),
	})
	if err != nil {
		return "", err
	}
	return formatWeightLog(log), nil
}

func formatWeightLog(log ledger.WeightLog) string {
	out := fmt.Sprintf("✓ Weight logged: %s kg on %s", num(log.Entry.WeightKg), log.Entry.Date)
	delta, ok := log.Delta()
	switch {
	case !ok:
	case delta > 0:
		out += fmt.Sprintf("\n  ⬆️ +%.1f kg from last entry", delta)
	case delta < 0:
		out += fmt.Sprintf("\n  ⬇️ %.1f kg from last entry", delta)
	default:
		out += "\n  ➡️ No change from last entry"
	}
	return out
}

func (r *Registry) logExercise(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	name, err := requiredString(req, "exercise_name")
	if err != nil {
		return "", err
	}
	minutes, err := requiredFloat(req, "duration_minutes")
	if err != nil {
		return "", err
	}

	e, err := r.svc.Ledger.LogExercise(ctx, ledger.ExerciseRequest{
		Name:            name,
		DurationMinutes: minutes,
		Intensity:       req.GetString("intensity", "moderate"),
		Date:            req.GetString("date", ""),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✓ Exercise logged!\n  %s: %s min (%s)\n  🔥 Estimated calories burned: ~%.0f kcal",
		title(e.Name), num(e.DurationMinutes), e.Intensity, e.CaloriesBurned), nil
}
