package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fdg312/health-assistant/internal/profiles"
	"github.com/fdg312/health-assistant/internal/storage"
)

// MARK: - Profile

func (r *Registry) profileTools() []tool {
	return []tool{
		{
			def: mcp.NewTool("set_user_profile",
				mcp.WithDescription("Set or update your profile and goals. Only the fields you pass are changed."),
				mcp.WithNumber("height_m", mcp.Description("Height in meters (e.g. 1.75)")),
				mcp.WithNumber("target_weight_kg", mcp.Description("Target weight in kg")),
				mcp.WithNumber("daily_calorie_goal", mcp.Description("Daily calorie goal in kcal")),
				mcp.WithString("activity_level",
					mcp.Description("Activity level"),
					mcp.Enum(profiles.ActivityLevels...),
				),
				mcp.WithString("region", mcp.Description("Your region (e.g. \"India\", \"USA\", \"Europe\")")),
				mcp.WithString("dietary_preferences", mcp.Description("e.g. \"vegetarian\", \"vegan\", \"no-restrictions\"")),
			),
			handle: r.setProfile,
		},
		{
			def: mcp.NewTool("get_user_profile",
				mcp.WithDescription("Get your current profile and goals."),
			),
			handle: r.getProfile,
		},
	}
}

func (r *Registry) setProfile(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	var (
		patch profiles.Patch
		err   error
	)
	if patch.HeightM, err = optionalFloat(req, "height_m"); err != nil {
		return "", err
	}
	if patch.TargetWeightKg, err = optionalFloat(req, "target_weight_kg"); err != nil {
		return "", err
	}
	if patch.DailyCalorieGoal, err = optionalFloat(req, "daily_calorie_goal"); err != nil {
		return "", err
	}
	patch.ActivityLevel = optionalString(req, "activity_level")
	patch.Region = optionalString(req, "region")
	patch.DietaryPreferences = optionalString(req, "dietary_preferences")

	p, err := r.svc.Profiles.Update(ctx, patch)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("✓ Profile updated successfully!\n")
	fmt.Fprintf(&b, "  Height: %s\n", orNotSet(p.HeightM, "m"))
	fmt.Fprintf(&b, "  Target: %s\n", orNotSet(p.TargetWeightKg, "kg"))
	fmt.Fprintf(&b, "  Calorie Goal: %s\n", orNotSet(p.DailyCalorieGoal, " kcal"))
	fmt.Fprintf(&b, "  Activity: %s\n", textOrNotSet(p.ActivityLevel))
	fmt.Fprintf(&b, "  Region: %s\n", textOrNotSet(p.Region))
	fmt.Fprintf(&b, "  Diet: %s", textOrNotSet(p.DietaryPreferences))
	return b.String(), nil
}

func (r *Registry) getProfile(ctx context.Context, _ mcp.CallToolRequest) (string, error) {
	p, err := r.svc.Profiles.Get(ctx)
	if errors.Is(err, profiles.ErrNotFound) {
		return "❌ No profile found. Use set_user_profile() to create one.", nil
	}
	if err != nil {
		return "", err
	}
	return formatProfile(p), nil
}

func formatProfile(p storage.UserProfile) string {
	var b strings.Builder
	b.WriteString("👤 Your Profile:\n\n")
	if p.HeightM != nil {
		fmt.Fprintf(&b, "  Height: %sm\n", num(*p.HeightM))
	}
	if p.TargetWeightKg != nil {
		fmt.Fprintf(&b, "  Target Weight: %skg\n", num(*p.TargetWeightKg))
	}
	if p.DailyCalorieGoal != nil {
		fmt.Fprintf(&b, "  Daily Calorie Goal: %s kcal\n", num(*p.DailyCalorieGoal))
	}
	if p.ActivityLevel != "" {
		fmt.Fprintf(&b, "  Activity Level: %s\n", p.ActivityLevel)
	}
	if p.Region != "" {
		fmt.Fprintf(&b, "  Region: %s\n", p.Region)
	}
	if p.DietaryPreferences != "" {
		fmt.Fprintf(&b, "  Dietary Preferences: %s\n", p.DietaryPreferences)
	}
	fmt.Fprintf(&b, "\n  Last Updated: %s", p.UpdatedAt.Format("2006-01-02 15:04:05"))
	return b.String()
}

func orNotSet(v *float64, unit string) string {
	if v == nil {
		return "not set"
	}
	return num(*v) + unit
}

func textOrNotSet(s string) string {
	if s == "" {
		return "not set"
	}
	return s
}
