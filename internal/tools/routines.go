package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fdg312/health-assistant/internal/nutrition"
	"github.com/fdg312/health-assistant/internal/routines"
	"github.com/fdg312/health-assistant/internal/storage"
)

var bandHelp = map[routines.Band]string{
	routines.Morning:   "6-10am (breakfast items like bread, poha, paratha)",
	routines.Midday:    "10am-12pm (brunch/snacks)",
	routines.Afternoon: "12-4pm (lunch items like dal-rice, roti-sabzi)",
	routines.Evening:   "4-8pm (evening snacks like maggie, chowmein, pakora)",
	routines.Night:     "8-11pm (dinner items)",
	routines.LateNight: "11pm-6am (light snacks)",
}

// MARK: - Routines

func (r *Registry) routineTools() []tool {
	add := []mcp.ToolOption{
		mcp.WithDescription("Add a food to your time-based routine: what you typically eat or cook at different times of day. " +
			"Re-adding a food replaces its routine."),
		mcp.WithString("food_name", mcp.Required(), mcp.Description("Name of food (must exist in the food database)")),
	}
	bulk := []mcp.ToolOption{
		mcp.WithDescription("Quick setup of many foods for different times at once. Existing routines keep their settings."),
	}
	for _, b := range routines.Bands {
		add = append(add, mcp.WithBoolean(string(b),
			mcp.Description("Eaten "+bandHelp[b]),
			mcp.DefaultBool(false),
		))
		bulk = append(bulk, mcp.WithString(string(b)+"_foods",
			mcp.Description(fmt.Sprintf("Comma-separated food names for %s (e.g. \"bread,poha,paratha\")", b)),
		))
	}
	add = append(add,
		mcp.WithString("preparation_type", mcp.Description("'quick', 'cook', 'ready' or 'snack'")),
		mcp.WithString("effort_level",
			mcp.Description("Preparation effort"),
			mcp.Enum(routines.Efforts...),
			mcp.DefaultString(routines.EffortEasy),
		),
		mcp.WithNumber("typical_portion_grams",
			mcp.Description("Your usual portion size in grams"),
			mcp.DefaultNumber(routines.DefaultPortionGrams),
		),
		mcp.WithNumber("preference_score",
			mcp.Description("1-10, how much you like this option"),
			mcp.DefaultNumber(routines.DefaultPreference),
			mcp.Min(1),
			mcp.Max(10),
		),
		mcp.WithString("notes", mcp.Description("Additional context")),
	)

	return []tool{
		{def: mcp.NewTool("add_to_food_routine", add...), handle: r.addRoutine},
		{
			def: mcp.NewTool("remove_from_food_routine",
				mcp.WithDescription("Remove a food from your routines."),
				mcp.WithString("food_name", mcp.Required(), mcp.Description("Name of food")),
			),
			handle: r.removeRoutine,
		},
		{
			def: mcp.NewTool("view_food_routines",
				mcp.WithDescription("View your food routines, all of them or one time period."),
				mcp.WithString("time_period",
					mcp.Description("'all' or one time period"),
					mcp.Enum(append([]string{routines.PeriodAll}, bandNames()...)...),
					mcp.DefaultString(routines.PeriodAll),
				),
			),
			handle: r.viewRoutines,
		},
		{def: mcp.NewTool("bulk_setup_routines", bulk...), handle: r.bulkSetup},
	}
}

func bandNames() []string {
	out := make([]string, len(routines.Bands))
	for i, b := range routines.Bands {
		out[i] = string(b)
	}
	return out
}

func (r *Registry) addRoutine(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	name, err := requiredString(req, "food_name")
	if err != nil {
		return "", err
	}

	add := routines.AddRequest{
		FoodName:            name,
		PreparationType:     req.GetString("preparation_type", ""),
		EffortLevel:         req.GetString("effort_level", routines.EffortEasy),
		TypicalPortionGrams: req.GetFloat("typical_portion_grams", routines.DefaultPortionGrams),
		PreferenceScore:     req.GetInt("preference_score", routines.DefaultPreference),
		Notes:               req.GetString("notes", ""),
	}
	for _, b := range routines.Bands {
		if req.GetBool(string(b), false) {
			add.Bands = append(add.Bands, b)
		}
	}

	res, err := r.svc.Routines.Add(ctx, add)
	if errors.Is(err, nutrition.ErrUnknownFood) {
		return fmt.Sprintf(notInDatabase, name), nil
	}
	if err != nil {
		return "", err
	}

	item := res.Item
	out := fmt.Sprintf("✓ Updated '%s' in routines", item.FoodName)
	if res.Created {
		out = fmt.Sprintf("✓ Added '%s' to routines", item.FoodName)
	}
	if bands := routines.BandsOf(item); len(bands) > 0 {
		out += "\n  Available: " + joinBands(bands)
	}
	if item.PreparationType != "" {
		out += "\n  Type: " + item.PreparationType
	}
	out += "\n  Effort: " + item.EffortLevel
	out += fmt.Sprintf("\n  Portion: %sg", num(item.TypicalPortionGrams))
	out += fmt.Sprintf("\n  Preference: %d/10", item.PreferenceScore)
	return out, nil
}

func joinBands(bands []routines.Band) string {
	names := make([]string, len(bands))
	for i, b := range bands {
		names[i] = string(b)
	}
	return strings.Join(names, ", ")
}

func (r *Registry) removeRoutine(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	name, err := requiredString(req, "food_name")
	if err != nil {
		return "", err
	}
	err = r.svc.Routines.Remove(ctx, name)
	if errors.Is(err, routines.ErrNotInRoutines) {
		return fmt.Sprintf("⚠️ '%s' was not in your routines", name), nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✓ Removed '%s' from routines", name), nil
}

func (r *Registry) viewRoutines(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	period := strings.ToLower(strings.TrimSpace(req.GetString("time_period", routines.PeriodAll)))
	if period == "" {
		period = routines.PeriodAll
	}
	rows, err := r.svc.Routines.View(ctx, period)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return fmt.Sprintf("🍽️ No routines set for %s!\n💡 Add with: add_to_food_routine()", period), nil
	}
	return formatRoutines(period, rows), nil
}

func formatRoutines(period string, rows []storage.RoutineRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🍽️ Your Food Routines (%s):\n\n", title(period))

	for _, row := range rows {
		if period == routines.PeriodAll {
			fmt.Fprintf(&b, "• %s (preference: %d/10)\n", title(row.FoodName), row.PreferenceScore)
			fmt.Fprintf(&b, "  Times: %s\n", joinBands(routines.BandsOf(row.RoutineItem)))
			fmt.Fprintf(&b, "  %s | %s effort | %sg portion\n", row.PreparationType, row.EffortLevel, num(row.TypicalPortionGrams))
			f := row.Food
			fmt.Fprintf(&b, "  Nutrition: %scal, P:%sg, C:%sg, F:%sg (per 100g)\n\n",
				num(f.Calories), num(f.Protein), num(f.Carbs), num(f.Fats))
			continue
		}

		fmt.Fprintf(&b, "• %s (⭐%d/10)\n", title(row.FoodName), row.PreferenceScore)
		fmt.Fprintf(&b, "  %s | %s effort | %sg typical\n", row.PreparationType, row.EffortLevel, num(row.TypicalPortionGrams))
		fmt.Fprintf(&b, "  %.0f cal per portion\n", routines.PortionCalories(row))
		if row.Notes != "" {
			fmt.Fprintf(&b, "  📝 %s\n", row.Notes)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Registry) bulkSetup(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	foods := make(map[routines.Band]string)
	for _, b := range routines.Bands {
		if list := req.GetString(string(b)+"_foods", ""); strings.TrimSpace(list) != "" {
			foods[b] = list
		}
	}
	if len(foods) == 0 {
		return "", argError("pass at least one of: " + bandList() + " (as <period>_foods)")
	}

	res, err := r.svc.Routines.BulkSetup(ctx, foods)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("✓ Bulk routine setup complete!\n\n")
	if len(res.Added) > 0 {
		fmt.Fprintf(&b, "Added %d items:\n", len(res.Added))
		for _, e := range res.Added {
			fmt.Fprintf(&b, "  • %s (%s)\n", e.FoodName, e.Band)
		}
	}
	if len(res.Failed) > 0 {
		fmt.Fprintf(&b, "\n⚠️ Failed %d items:\n", len(res.Failed))
		for _, name := range res.Failed {
			fmt.Fprintf(&b, "  • %s (not in database)\n", name)
		}
		b.WriteString("\nAdd missing foods with: add_food_to_database()")
	}
	return b.String(), nil
}
