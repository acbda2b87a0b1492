package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fdg312/health-assistant/internal/wellness"
)

// MARK: - Calculators

func (r *Registry) wellnessTools() []tool {
	return []tool{
		{
			def: mcp.NewTool("calculate_bmi",
				mcp.WithDescription("Calculate Body Mass Index (BMI) from weight and height."),
				mcp.WithNumber("weight_kg", mcp.Required(), mcp.Description("Weight in kilograms")),
				mcp.WithNumber("height_m", mcp.Required(), mcp.Description("Height in meters")),
			),
			handle: calculateBMI,
		},
		{
			def: mcp.NewTool("daily_water_intake",
				mcp.WithDescription("Calculate recommended daily water intake from body weight (30-35 ml per kg)."),
				mcp.WithNumber("weight_kg", mcp.Required(), mcp.Description("Weight in kilograms")),
			),
			handle: dailyWater,
		},
		{
			def: mcp.NewTool("steps_to_calories",
				mcp.WithDescription("Estimate calories burned from walking steps."),
				mcp.WithNumber("steps", mcp.Required(), mcp.Description("Number of steps taken")),
				mcp.WithNumber("weight_kg",
					mcp.Description("Body weight in kilograms (default: 70)"),
					mcp.DefaultNumber(wellness.DefaultStepWeightKg),
				),
			),
			handle: stepsToCalories,
		},
		{
			def: mcp.NewTool("heart_rate_zone",
				mcp.WithDescription("Calculate heart rate training zones from age and resting heart rate."),
				mcp.WithNumber("age", mcp.Required(), mcp.Description("Age in years")),
				mcp.WithNumber("resting_hr",
					mcp.Description("Resting heart rate in bpm (default: 60)"),
					mcp.DefaultNumber(wellness.DefaultRestingHR),
				),
			),
			handle: heartRateZones,
		},
	}
}

func calculateBMI(_ context.Context, req mcp.CallToolRequest) (string, error) {
	weight, err := requiredFloat(req, "weight_kg")
	if err != nil {
		return "", err
	}
	height, err := requiredFloat(req, "height_m")
	if err != nil {
		return "", err
	}
	bmi, err := wellness.CalculateBMI(wellness.BMIRequest{WeightKg: weight, HeightM: height})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("BMI: %.1f - Category: %s", bmi.Value, bmi.Category), nil
}

func dailyWater(_ context.Context, req mcp.CallToolRequest) (string, error) {
	weight, err := requiredFloat(req, "weight_kg")
	if err != nil {
		return "", err
	}
	w, err := wellness.DailyWater(weight)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Recommended daily water intake: %.0f-%.0f ml (%.1f-%.1f liters)",
		w.MinML, w.MaxML, w.MinML/1000, w.MaxML/1000), nil
}

func stepsToCalories(_ context.Context, req mcp.CallToolRequest) (string, error) {
	steps, err := requiredInt(req, "steps")
	if err != nil {
		return "", err
	}
	kcal, err := wellness.StepsToCalories(wellness.StepsRequest{
		Steps:    steps,
		WeightKg: req.GetFloat("weight_kg", wellness.DefaultStepWeightKg),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d steps burned approximately %.0f calories", steps, kcal), nil
}

func heartRateZones(_ context.Context, req mcp.CallToolRequest) (string, error) {
	age, err := requiredInt(req, "age")
	if err != nil {
		return "", err
	}
	zones, err := wellness.HeartRate(wellness.HeartRateRequest{
		Age:       age,
		RestingHR: req.GetInt("resting_hr", wellness.DefaultRestingHR),
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Max Heart Rate: %d bpm\n\nTraining Zones:\n", zones.MaxHR)
	for _, z := range zones.Zones {
		fmt.Fprintf(&b, "  %s: %.0f-%.0f bpm\n", z.Name, z.Low, z.High)
	}
	return b.String(), nil
}
