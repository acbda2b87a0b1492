package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fdg312/health-assistant/internal/summary"
)

var separator = strings.Repeat("=", 50)

func daysArg(desc string, def int) mcp.ToolOption {
	return mcp.WithNumber("days",
		mcp.Description(fmt.Sprintf("%s (default: %d)", desc, def)),
		mcp.DefaultNumber(float64(def)),
	)
}

// MARK: - Summaries

func (r *Registry) summaryTools() []tool {
	return []tool{
		{
			def: mcp.NewTool("get_daily_nutrition",
				mcp.WithDescription("Get total nutrition intake for a specific day with the macro split."),
				mcp.WithString("date", mcp.Description(dateHelp)),
			),
			handle: r.dailyNutrition,
		},
		{
			def: mcp.NewTool("get_nutrition_stats",
				mcp.WithDescription("Get nutrition statistics for the last N days."),
				daysArg("Number of days to analyze", 7),
			),
			handle: r.nutritionStats,
		},
		{
			def: mcp.NewTool("get_sleep_summary",
				mcp.WithDescription("Get sleep summary for the last N days."),
				daysArg("Number of days to analyze", 7),
			),
			handle: r.sleepSummary,
		},
		{
			def: mcp.NewTool("get_weight_trend",
				mcp.WithDescription("Get weight trend over time."),
				daysArg("Number of days to analyze", 30),
			),
			handle: r.weightTrend,
		},
		{
			def: mcp.NewTool("get_exercise_summary",
				mcp.WithDescription("Get exercise sessions, minutes and calories burned for the last N days."),
				daysArg("Number of days to analyze", 7),
			),
			handle: r.exerciseSummary,
		},
		{
			def: mcp.NewTool("get_daily_summary",
				mcp.WithDescription("Get a complete health summary for a day: meals, sleep, exercise and weight."),
				mcp.WithString("date", mcp.Description(dateHelp)),
			),
			handle: r.dailySummary,
		},
	}
}

func (r *Registry) dailyNutrition(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	day, err := r.svc.Summary.DailyNutrition(ctx, req.GetString("date", ""))
	if errors.Is(err, summary.ErrNoData) {
		return fmt.Sprintf("No meals logged for %s", day.Date), nil
	}
	if err != nil {
		return "", err
	}
	return formatDailyNutrition(day), nil
}

func formatDailyNutrition(day summary.DailyNutrition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📅 Nutrition Summary for %s\n\n", day.Date)
	b.WriteString("Meals logged:\n")
	for _, e := range day.Entries {
		fmt.Fprintf(&b, "  • %s - %s (%sg): %.0fcal, P:%.1fg, C:%.1fg, F:%.1fg\n",
			e.LoggedAt.Format("15:04"), title(e.FoodName), num(e.QuantityGrams),
			e.Calories, e.Protein, e.Carbs, e.Fats)
	}

	t, s := day.Totals, day.Split
	fmt.Fprintf(&b, "\n%s\n", separator)
	b.WriteString("📊 DAILY TOTALS:\n")
	fmt.Fprintf(&b, "  Calories: %.0f kcal\n", t.Calories)
	fmt.Fprintf(&b, "  Protein:  %.1fg (%.0f kcal, %.0f%%)\n", t.Protein, s.ProteinKcal, s.ProteinPct)
	fmt.Fprintf(&b, "  Carbs:    %.1fg (%.0f kcal, %.0f%%)\n", t.Carbs, s.CarbsKcal, s.CarbsPct)
	fmt.Fprintf(&b, "  Fats:     %.1fg (%.0f kcal, %.0f%%)\n", t.Fats, s.FatsKcal, s.FatsPct)
	fmt.Fprintf(&b, "  Fiber:    %.1fg\n", t.Fiber)
	return b.String()
}

func (r *Registry) nutritionStats(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	days := req.GetInt("days", 7)
	stats, err := r.svc.Summary.NutritionStats(ctx, days)
	if errors.Is(err, summary.ErrNoData) {
		return fmt.Sprintf("No nutrition data found for the last %d days.", days), nil
	}
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📈 Nutrition Stats for Last %d Days:\n\n", days)
	for _, d := range stats.PerDay {
		fmt.Fprintf(&b, "%s: %.0f kcal | P:%.0fg | C:%.0fg | F:%.0fg | Fiber:%.0fg\n",
			d.Date, d.Calories, d.Protein, d.Carbs, d.Fats, d.Fiber)
	}

	a := stats.Average
	fmt.Fprintf(&b, "\n%s\n", separator)
	fmt.Fprintf(&b, "📊 Averages over %d days:\n", len(stats.PerDay))
	fmt.Fprintf(&b, "  Calories: %.0f kcal/day\n", a.Calories)
	fmt.Fprintf(&b, "  Protein:  %.0fg/day\n", a.Protein)
	fmt.Fprintf(&b, "  Carbs:    %.0fg/day\n", a.Carbs)
	fmt.Fprintf(&b, "  Fats:     %.0fg/day\n", a.Fats)
	fmt.Fprintf(&b, "  Fiber:    %.0fg/day\n", a.Fiber)
	return b.String(), nil
}

var summaryQualityEmoji = map[string]string{
	"excellent": "✨",
	"good":      "😊",
	"fair":      "😐",
	"poor":      "😞",
}

var verdictText = map[summary.SleepVerdict]string{
	summary.VerdictOptimal:      "✅ Great! You're getting optimal sleep!",
	summary.VerdictInsufficient: "⚠️ You might need more sleep for optimal health (7-9 hours recommended)",
	summary.VerdictExcessive:    "💤 You're sleeping a lot! Make sure it's quality sleep.",
}

func (r *Registry) sleepSummary(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	days := req.GetInt("days", 7)
	sum, err := r.svc.Summary.SleepSummary(ctx, days)
	if errors.Is(err, summary.ErrNoData) {
		return fmt.Sprintf("No sleep data found for the last %d days.", days), nil
	}
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "😴 Sleep Summary for Last %d Days:\n\n", days)
	for _, e := range sum.Entries {
		fmt.Fprintf(&b, "%s: %s → %s (%.1fh) %s\n", e.Date, e.SleepTime, e.WakeTime, e.Hours, summaryQualityEmoji[e.Quality])
	}
	fmt.Fprintf(&b, "\n📊 Average: %.1f hours/night\n", sum.AverageHours)
	b.WriteString(verdictText[sum.Verdict])
	return b.String(), nil
}

func (r *Registry) weightTrend(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	days := req.GetInt("days", 30)
	trend, err := r.svc.Summary.WeightTrend(ctx, days)
	if errors.Is(err, summary.ErrNoData) {
		return fmt.Sprintf("No weight data found for the last %d days.", days), nil
	}
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "⚖️ Weight Trend (Last %d Days):\n\n", days)
	for _, e := range trend.Entries {
		fmt.Fprintf(&b, "%s: %.1f kg\n", e.Date, e.WeightKg)
	}
	if trend.Change != nil {
		b.WriteString("\n📊 Overall change: ")
		switch c := *trend.Change; {
		case c > 0:
			fmt.Fprintf(&b, "+%.1f kg (gained)", c)
		case c < 0:
			fmt.Fprintf(&b, "%.1f kg (lost)", c)
		default:
			b.WriteString("No change")
		}
	}
	return b.String(), nil
}

func (r *Registry) exerciseSummary(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	days := req.GetInt("days", 7)
	sum, err := r.svc.Summary.ExerciseSummary(ctx, days)
	if errors.Is(err, summary.ErrNoData) {
		return fmt.Sprintf("No exercise data found for the last %d days.", days), nil
	}
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "💪 Exercise Summary for Last %d Days:\n\n", days)
	for _, day := range sum.PerDay {
		fmt.Fprintf(&b, "%s: %.0f min, ~%.0f kcal\n", day.Date, day.Minutes, day.Burned)
		for _, e := range sum.Entries {
			if e.Date != day.Date {
				continue
			}
			fmt.Fprintf(&b, "  • %s: %.0f min (%s, ~%.0f kcal)\n", title(e.Name), e.DurationMinutes, e.Intensity, e.CaloriesBurned)
		}
	}
	fmt.Fprintf(&b, "\n📊 Total: %.0f min, ~%.0f kcal burned\n", sum.TotalMinutes, sum.TotalBurned)
	fmt.Fprintf(&b, "  Active days: %d | Average: ~%.0f kcal per active day",
		len(sum.PerDay), sum.TotalBurned/float64(len(sum.PerDay)))
	return b.String(), nil
}

func (r *Registry) dailySummary(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	day, err := r.svc.Summary.DailySummary(ctx, req.GetString("date", ""))
	if err != nil {
		return "", err
	}
	return formatDailySummary(day), nil
}

func formatDailySummary(day summary.DailySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📅 Health Summary for %s\n%s\n\n", day.Date, separator)

	if day.HasMeals {
		n := day.Nutrition
		b.WriteString("🍽️ NUTRITION:\n")
		fmt.Fprintf(&b, "  Calories: %.0f kcal\n", n.Calories)
		fmt.Fprintf(&b, "  Protein: %.1fg | Carbs: %.1fg | Fats: %.1fg\n\n", n.Protein, n.Carbs, n.Fats)
	} else {
		b.WriteString("🍽️ NUTRITION: No meals logged\n\n")
	}

	if s := day.Sleep; s != nil {
		b.WriteString("😴 SLEEP:\n")
		fmt.Fprintf(&b, "  %s → %s (%.1f hours)\n", s.SleepTime, s.WakeTime, s.Hours)
		fmt.Fprintf(&b, "  Quality: %s\n\n", s.Quality)
	} else {
		b.WriteString("😴 SLEEP: Not logged\n\n")
	}

	if len(day.Exercise) > 0 {
		b.WriteString("💪 EXERCISE:\n")
		for _, e := range day.Exercise {
			fmt.Fprintf(&b, "  • %s: %.0f min (~%.0f kcal)\n", title(e.Name), e.DurationMinutes, e.CaloriesBurned)
		}
		fmt.Fprintf(&b, "  Total burned: ~%.0f kcal\n\n", day.Burned)
	} else {
		b.WriteString("💪 EXERCISE: No exercise logged\n\n")
	}

	if day.Weight != nil {
		fmt.Fprintf(&b, "⚖️ WEIGHT: %.1f kg\n\n", day.Weight.WeightKg)
	} else {
		b.WriteString("⚖️ WEIGHT: Not logged\n\n")
	}

	if day.NetCalories != nil {
		fmt.Fprintf(&b, "📊 NET CALORIES: %.0f kcal\n", *day.NetCalories)
	}
	return b.String()
}
