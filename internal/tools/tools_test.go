package tools

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fdg312/health-assistant/internal/blob"
	"github.com/fdg312/health-assistant/internal/ledger"
	"github.com/fdg312/health-assistant/internal/nutrition"
	"github.com/fdg312/health-assistant/internal/pantry"
	"github.com/fdg312/health-assistant/internal/profiles"
	"github.com/fdg312/health-assistant/internal/recommend"
	"github.com/fdg312/health-assistant/internal/reports"
	"github.com/fdg312/health-assistant/internal/routines"
	"github.com/fdg312/health-assistant/internal/storage/memory"
	"github.com/fdg312/health-assistant/internal/summary"
	"github.com/fdg312/health-assistant/internal/telemetry"
	"github.com/fdg312/health-assistant/internal/userctx"
)

var noon = time.Date(2025, 3, 10, 12, 30, 0, 0, time.Local)

type fixture struct {
	registry *Registry
	svc      Services
	metrics  *telemetry.Metrics
	logs     *observer.ObservedLogs
	handlers map[string]func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := memory.New()
	clock := func() time.Time { return noon }

	foods := nutrition.NewService(db.Foods(), nil)
	_, err := foods.EnsureSeed(ctx)
	require.NoError(t, err)

	svc := Services{
		Foods:    foods,
		Ledger:   ledger.NewService(db, foods, nil),
		Summary:  summary.NewService(db),
		Profiles: profiles.NewService(db.Profile()),
		Pantry:   pantry.NewService(db.Pantry(), foods),
		Routines: routines.NewService(db.Routines(), foods),
	}
	svc.Ledger.Now = clock
	svc.Summary.Now = clock
	svc.Profiles.Now = clock
	svc.Pantry.Now = clock
	svc.Routines.Now = clock

	svc.Recommend = recommend.NewEngine(recommend.Deps{
		Profiles: svc.Profiles,
		Days:     svc.Summary,
		Pantry:   svc.Pantry,
		Routines: svc.Routines,
		Weight:   db.Weight(),
	}, recommend.DefaultRules(), 0)
	svc.Recommend.Now = clock

	store, err := blob.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	svc.Reports = reports.NewService(svc.Summary, store, "reports", 365, nil)
	svc.Reports.Now = clock

	core, logs := observer.New(zap.InfoLevel)
	metrics := telemetry.New()

	f := &fixture{svc: svc, metrics: metrics, logs: logs}
	f.registry = NewRegistry(svc, zap.New(core), metrics)
	f.handlers = make(map[string]func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error))
	for _, srvTool := range f.registry.Tools() {
		f.handlers[srvTool.Tool.Name] = srvTool.Handler
	}
	return f
}

// call runs a tool and returns its text and error flag.
func (f *fixture) call(t *testing.T, name string, args map[string]any) (string, bool) {
	t.Helper()
	h, ok := f.handlers[name]
	require.True(t, ok, "tool %s is not registered", name)

	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

// ok runs a tool that must succeed.
func (f *fixture) ok(t *testing.T, name string, args map[string]any) string {
	t.Helper()
	text, isErr := f.call(t, name, args)
	require.False(t, isErr, text)
	return text
}

func TestTools_Registered(t *testing.T) {
	f := newFixture(t)
	assert.Len(t, f.handlers, 30)

	for _, name := range []string{
		"list_foods", "add_food_to_database",
		"log_meal", "log_sleep", "log_weight", "log_exercise",
		"get_daily_nutrition", "get_nutrition_stats", "get_sleep_summary",
		"get_weight_trend", "get_exercise_summary", "get_daily_summary",
		"set_user_profile", "get_user_profile",
		"add_to_pantry", "remove_from_pantry", "list_my_pantry",
		"add_to_food_routine", "remove_from_food_routine", "view_food_routines", "bulk_setup_routines",
		"recommend_foods", "recommend_from_pantry", "recommend_from_routines", "recommend_exercise",
		"calculate_bmi", "daily_water_intake", "steps_to_calories", "heart_rate_zone",
		"export_health_report",
	} {
		assert.Contains(t, f.handlers, name)
	}

	f.svc.Reports = nil
	withoutReports := NewRegistry(f.svc, nil, nil).Tools()
	assert.Len(t, withoutReports, 29)
}

func TestFoods(t *testing.T) {
	f := newFixture(t)

	list := f.ok(t, "list_foods", nil)
	assert.True(t, strings.HasPrefix(list, "Available Foods (per 100g):"))
	assert.Contains(t, list, "• Chicken Breast: 165cal")
	assert.Equal(t, list, f.ok(t, "list_foods", nil))

	added := f.ok(t, "add_food_to_database", map[string]any{
		"name": "Quinoa", "calories": 120.0, "protein": 4.4, "carbs": 21.3, "fats": 1.9,
	})
	assert.Equal(t, "✓ Added 'quinoa' to food database: 120cal, P:4.4g, C:21.3g, F:1.9g, Fiber:0g (per 100g)", added)

	dup := f.ok(t, "add_food_to_database", map[string]any{
		"name": "quinoa", "calories": 1.0, "protein": 1.0, "carbs": 1.0, "fats": 1.0,
	})
	assert.Contains(t, dup, "already exists")

	text, isErr := f.call(t, "add_food_to_database", map[string]any{"name": "tofu", "calories": 76.0})
	assert.True(t, isErr)
	assert.Contains(t, text, "protein is required")

	text, isErr = f.call(t, "add_food_to_database", map[string]any{
		"name": "tofu", "calories": -5.0, "protein": 8.0, "carbs": 1.9, "fats": 4.8,
	})
	assert.True(t, isErr)
	assert.Contains(t, text, "calories must be at least 0")
}

func TestLogMeal(t *testing.T) {
	f := newFixture(t)

	text := f.ok(t, "log_meal", map[string]any{"food_items": "chicken breast:150, brown rice:100, pizza:200, rice"})
	assert.Contains(t, text, "Meal logged for 2025-03-10:")
	assert.Contains(t, text, "✓ Chicken Breast (150g)")
	assert.Contains(t, text, "⚠️  'pizza' not found in database. Skipped.")
	assert.Contains(t, text, "⚠️  Invalid format for item: 'rice'. Use 'food:quantity'")
	assert.Contains(t, text, "Protein: 49.1g")

	text, isErr := f.call(t, "log_meal", map[string]any{})
	assert.True(t, isErr)
	assert.Contains(t, text, "food_items is required")

	text, isErr = f.call(t, "log_meal", map[string]any{"food_items": "apple:100", "date": "yesterday"})
	assert.True(t, isErr)
	assert.Contains(t, text, "invalid date")
}

func TestDailyNutrition(t *testing.T) {
	f := newFixture(t)

	text, isErr := f.call(t, "get_daily_nutrition", nil)
	assert.False(t, isErr)
	assert.Equal(t, "No meals logged for 2025-03-10", text)

	f.ok(t, "log_meal", map[string]any{"food_items": "chicken breast:150, brown rice:100"})
	text = f.ok(t, "get_daily_nutrition", nil)
	assert.Contains(t, text, "📅 Nutrition Summary for 2025-03-10")
	assert.Contains(t, text, "12:30 - Chicken Breast (150g)")
	assert.Contains(t, text, "📊 DAILY TOTALS:")

	stats := f.ok(t, "get_nutrition_stats", map[string]any{"days": 7.0})
	assert.Contains(t, stats, "📈 Nutrition Stats for Last 7 Days:")
	assert.Contains(t, stats, "📊 Averages over 1 days:")

	text, isErr = f.call(t, "get_nutrition_stats", map[string]any{"days": 0.0})
	assert.True(t, isErr)
	assert.Contains(t, text, "days must be between")
}

func TestSleep(t *testing.T) {
	f := newFixture(t)

	text := f.ok(t, "log_sleep", map[string]any{"sleep_time": "23:00", "wake_time": "07:00", "quality": "excellent"})
	assert.Contains(t, text, "Duration: 8.0 hours")
	assert.Contains(t, text, "Quality: excellent 😴✨")

	text = f.ok(t, "log_sleep", map[string]any{"sleep_time": "06:00", "wake_time": "07:30", "date": "2025-03-09"})
	assert.Contains(t, text, "Duration: 1.5 hours")

	text, isErr := f.call(t, "log_sleep", map[string]any{"sleep_time": "late", "wake_time": "07:00"})
	assert.True(t, isErr)
	assert.Contains(t, text, "invalid time format")

	sum := f.ok(t, "get_sleep_summary", nil)
	assert.Contains(t, sum, "2025-03-10: 23:00 → 07:00 (8.0h) ✨")
	assert.Contains(t, sum, "📊 Average: 4.8 hours/night")
	assert.Contains(t, sum, "You might need more sleep")
}

func TestWeight(t *testing.T) {
	f := newFixture(t)

	text := f.ok(t, "log_weight", map[string]any{"weight_kg": 80.0, "date": "2025-03-01"})
	assert.Equal(t, "✓ Weight logged: 80 kg on 2025-03-01", text)

	text = f.ok(t, "log_weight", map[string]any{"weight_kg": 78.5, "date": "2025-03-08"})
	assert.Contains(t, text, "⬇️ -1.5 kg from last entry")

	trend := f.ok(t, "get_weight_trend", nil)
	assert.Contains(t, trend, "2025-03-08: 78.5 kg")
	assert.Contains(t, trend, "📊 Overall change: -1.5 kg (lost)")

	text, isErr := f.call(t, "log_weight", map[string]any{"weight_kg": 0.0})
	assert.True(t, isErr)
	assert.Contains(t, text, "weight_kg must be greater than 0")
}

func TestExerciseAndDailySummary(t *testing.T) {
	f := newFixture(t)

	empty := f.ok(t, "get_daily_summary", nil)
	assert.Contains(t, empty, "🍽️ NUTRITION: No meals logged")
	assert.Contains(t, empty, "😴 SLEEP: Not logged")
	assert.NotContains(t, empty, "NET CALORIES")

	text := f.ok(t, "log_exercise", map[string]any{"exercise_name": "running", "duration_minutes": 30.0, "intensity": "intense"})
	assert.Contains(t, text, "Running: 30 min (intense)")
	assert.Contains(t, text, "~300 kcal")

	f.ok(t, "log_meal", map[string]any{"food_items": "apple:100"})
	day := f.ok(t, "get_daily_summary", map[string]any{"date": "2025-03-10"})
	assert.Contains(t, day, "• Running: 30 min (~300 kcal)")
	assert.Contains(t, day, "📊 NET CALORIES: -248 kcal")

	sum := f.ok(t, "get_exercise_summary", nil)
	assert.Contains(t, sum, "2025-03-10: 30 min, ~300 kcal")
	assert.Contains(t, sum, "📊 Total: 30 min, ~300 kcal burned")
}

func TestProfile(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, "❌ No profile found. Use set_user_profile() to create one.", f.ok(t, "get_user_profile", nil))

	text := f.ok(t, "set_user_profile", map[string]any{"daily_calorie_goal": 2000.0, "region": "India"})
	assert.Contains(t, text, "Calorie Goal: 2000 kcal")
	assert.Contains(t, text, "Height: not set")

	f.ok(t, "set_user_profile", map[string]any{"height_m": 1.75, "activity_level": "Moderate"})
	profile := f.ok(t, "get_user_profile", nil)
	assert.Contains(t, profile, "Height: 1.75m")
	assert.Contains(t, profile, "Daily Calorie Goal: 2000 kcal")
	assert.Contains(t, profile, "Activity Level: moderate")
	assert.Contains(t, profile, "Region: India")

	text, isErr := f.call(t, "set_user_profile", map[string]any{})
	assert.True(t, isErr)
	assert.Contains(t, text, "nothing to update")

	text, isErr = f.call(t, "set_user_profile", map[string]any{"activity_level": "couch"})
	assert.True(t, isErr)
	assert.Contains(t, text, "activity_level must be one of")
}

func TestPantry(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, "🍽️ Your pantry is empty!\n💡 Add foods with: add_to_pantry()", f.ok(t, "list_my_pantry", nil))

	text := f.ok(t, "add_to_pantry", map[string]any{"food_name": "pizza"})
	assert.Equal(t, "⚠️ 'pizza' not in food database. Add it first with add_food_to_database()", text)

	text = f.ok(t, "add_to_pantry", map[string]any{"food_name": "Eggs", "quantity_grams": 300.0, "notes": "fridge"})
	assert.Equal(t, "✓ Added 'eggs' to pantry\n  Quantity: 300g\n  Notes: fridge", text)

	text = f.ok(t, "add_to_pantry", map[string]any{"food_name": "eggs"})
	assert.Equal(t, "✓ Updated 'eggs' in pantry", text)

	list := f.ok(t, "list_my_pantry", nil)
	assert.Contains(t, list, "• Eggs\n  Nutrition (per 100g):")
	assert.Contains(t, list, "Last updated: 2025-03-10")

	assert.Equal(t, "✓ Removed 'eggs' from pantry", f.ok(t, "remove_from_pantry", map[string]any{"food_name": "eggs"}))
	assert.Equal(t, "⚠️ 'eggs' was not in your pantry", f.ok(t, "remove_from_pantry", map[string]any{"food_name": "eggs"}))
}

func TestRoutines(t *testing.T) {
	f := newFixture(t)

	text := f.ok(t, "add_to_food_routine", map[string]any{
		"food_name": "maggie", "evening": true, "preparation_type": "quick", "typical_portion_grams": 50.0,
	})
	assert.Contains(t, text, "✓ Added 'maggie' to routines")
	assert.Contains(t, text, "Available: evening")
	assert.Contains(t, text, "Effort: easy")
	assert.Contains(t, text, "Preference: 5/10")

	text = f.ok(t, "add_to_food_routine", map[string]any{"food_name": "unicorn", "morning": true})
	assert.Contains(t, text, "not in food database")

	text, isErr := f.call(t, "add_to_food_routine", map[string]any{"food_name": "eggs", "preference_score": 11.0})
	assert.True(t, isErr)
	assert.Contains(t, text, "preference_score must be at most 10")

	bulk := f.ok(t, "bulk_setup_routines", map[string]any{"morning_foods": "eggs, pizza", "evening_foods": "oatmeal"})
	assert.Contains(t, bulk, "Added 2 items:")
	assert.Contains(t, bulk, "• eggs (morning)")
	assert.Contains(t, bulk, "⚠️ Failed 1 items:")
	assert.Contains(t, bulk, "• pizza (not in database)")

	evening := f.ok(t, "view_food_routines", map[string]any{"time_period": "evening"})
	assert.Contains(t, evening, "🍽️ Your Food Routines (Evening):")
	assert.Contains(t, evening, "• Maggie (⭐5/10)")
	assert.Contains(t, evening, "200 cal per portion")

	all := f.ok(t, "view_food_routines", nil)
	assert.Contains(t, all, "Times: morning")

	assert.Contains(t, f.ok(t, "view_food_routines", map[string]any{"time_period": "night"}), "No routines set for night")

	text, isErr = f.call(t, "view_food_routines", map[string]any{"time_period": "brunch"})
	assert.True(t, isErr)
	assert.Contains(t, text, "unknown time period, use one of: morning, midday")

	assert.Contains(t, f.ok(t, "remove_from_food_routine", map[string]any{"food_name": "maggie"}), "✓ Removed")
	assert.Contains(t, f.ok(t, "remove_from_food_routine", map[string]any{"food_name": "maggie"}), "was not in your routines")
}

func TestRecommendFoods(t *testing.T) {
	f := newFixture(t)

	text, isErr := f.call(t, "recommend_foods", nil)
	assert.False(t, isErr)
	assert.Equal(t, noCalorieGoal, text)

	f.ok(t, "set_user_profile", map[string]any{"daily_calorie_goal": 2000.0, "region": "India"})
	text = f.ok(t, "recommend_foods", map[string]any{"meal_type": "lunch"})
	assert.Contains(t, text, "🍽️ Food Recommendations for Lunch:")
	assert.Contains(t, text, "Remaining: 2000 kcal")
	assert.Contains(t, text, "🎯 Target for lunch: ~700 kcal")
	assert.Contains(t, text, "   💡 Use: log_meal(\"brown rice:150, dal:100, chicken breast:100\")")
	assert.NotContains(t, text, "Low remaining")

	text, isErr = f.call(t, "recommend_foods", map[string]any{"meal_type": "brunch"})
	assert.True(t, isErr)
	assert.Contains(t, text, "unknown meal type \"brunch\"")

	assert.Equal(t, "🍽️ Your pantry is empty! Add foods with add_to_pantry() first.",
		f.ok(t, "recommend_foods", map[string]any{"pantry_only": true}))

	f.ok(t, "add_to_pantry", map[string]any{"food_name": "chicken breast"})
	f.ok(t, "add_to_pantry", map[string]any{"food_name": "brown rice"})
	pantryText := f.ok(t, "recommend_from_pantry", map[string]any{"meal_type": "dinner"})
	assert.Contains(t, pantryText, "(Dinner)")
	assert.Contains(t, pantryText, "1. Protein Bowl: High protein balanced meal")
}

func TestRecommendFromRoutines_NightFallback(t *testing.T) {
	f := newFixture(t)
	f.svc.Recommend.Now = func() time.Time { return time.Date(2025, 3, 10, 21, 0, 0, 0, time.Local) }

	f.ok(t, "set_user_profile", map[string]any{"daily_calorie_goal": 1800.0})
	f.ok(t, "add_to_food_routine", map[string]any{"food_name": "maggie", "evening": true})

	text := f.ok(t, "recommend_from_routines", nil)
	assert.Contains(t, text, "🌙 Night Food Options:")
	assert.Contains(t, text, "⚠️ No routines set for night!")

	f.ok(t, "add_to_food_routine", map[string]any{
		"food_name": "eggs", "night": true, "preparation_type": "cook", "effort_level": "medium", "preference_score": 8.0,
	})
	text = f.ok(t, "recommend_from_routines", map[string]any{"include_pantry": false})
	assert.Contains(t, text, "🔥 **Medium Options:**")
	assert.Contains(t, text, "💡 **Smart Pick:** Eggs (cook, medium)")
	assert.NotContains(t, text, "From Your Pantry")

	text, isErr := f.call(t, "recommend_from_routines", map[string]any{"filter_by_effort": "extreme"})
	assert.True(t, isErr)
	assert.Contains(t, text, "unknown effort level")
}

func TestRecommendExercise(t *testing.T) {
	f := newFixture(t)

	text := f.ok(t, "recommend_exercise", nil)
	assert.Contains(t, text, "💤 No sleep data - Recommending moderate exercises")
	assert.Contains(t, text, "🎯 Goal: General health and energy")
	assert.Contains(t, text, "1. Brisk Walking/Jogging (30 mins)")

	f.ok(t, "log_sleep", map[string]any{"sleep_time": "23:00", "wake_time": "07:30"})
	f.ok(t, "log_weight", map[string]any{"weight_kg": 82.0})
	f.ok(t, "set_user_profile", map[string]any{"target_weight_kg": 75.0})

	text = f.ok(t, "recommend_exercise", nil)
	assert.Contains(t, text, "😴 Sleep: 8.5 hours/night average")
	assert.Contains(t, text, "🎯 Goal: Weight loss (82.0kg → 75.0kg)")
	assert.Contains(t, text, "1. Running (30-40 mins)")
	assert.Contains(t, text, "  - Track with: log_exercise()")
}

func TestWellness(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, "BMI: 22.9 - Category: Normal weight",
		f.ok(t, "calculate_bmi", map[string]any{"weight_kg": 70.0, "height_m": 1.75}))
	assert.Equal(t, "Recommended daily water intake: 2100-2450 ml (2.1-2.5 liters)",
		f.ok(t, "daily_water_intake", map[string]any{"weight_kg": 70.0}))
	assert.Equal(t, "10000 steps burned approximately 400 calories",
		f.ok(t, "steps_to_calories", map[string]any{"steps": 10000.0}))

	zones := f.ok(t, "heart_rate_zone", map[string]any{"age": 30.0})
	assert.Contains(t, zones, "Max Heart Rate: 190 bpm")
	assert.Contains(t, zones, "  Easy (50-60%): 125-138 bpm")

	text, isErr := f.call(t, "calculate_bmi", map[string]any{"weight_kg": 70.0, "height_m": 0.0})
	assert.True(t, isErr)
	assert.Contains(t, text, "height_m must be greater than 0")
}

func TestExportReport(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, "No health data found for the last 30 days.", f.ok(t, "export_health_report", nil))

	f.ok(t, "log_meal", map[string]any{"food_items": "apple:100"})
	text := f.ok(t, "export_health_report", map[string]any{"days": 7.0})
	assert.Contains(t, text, "📄 Health report ready (csv, 2025-03-03 → 2025-03-10, 1 days with data")

	lines := strings.Split(text, "\n")
	path := strings.TrimSpace(lines[len(lines)-1])
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "date,calories"))

	text, isErr := f.call(t, "export_health_report", map[string]any{"days": 400.0})
	assert.True(t, isErr)
	assert.Contains(t, text, "date range too large")
}

func TestInstrumentation(t *testing.T) {
	f := newFixture(t)

	f.ok(t, "list_foods", nil)
	_, isErr := f.call(t, "log_meal", nil)
	require.True(t, isErr)

	entries := f.logs.FilterMessage("tool call").All()
	require.Len(t, entries, 2)
	fields := entries[1].ContextMap()
	assert.Equal(t, "log_meal", fields["tool"])
	assert.Equal(t, telemetry.OutcomeInvalid, fields["outcome"])

	n, err := testutil.GatherAndCount(f.metrics.Registry(), "health_assistant_tool_calls_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestInstrumentation_Subject(t *testing.T) {
	f := newFixture(t)

	var req mcp.CallToolRequest
	req.Params.Name = "list_foods"
	_, err := f.handlers["list_foods"](userctx.WithSubject(context.Background(), "dev-user"), req)
	require.NoError(t, err)

	entries := f.logs.FilterMessage("tool call").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "dev-user", entries[0].ContextMap()["sub"])
}
