package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fdg312/health-assistant/internal/nutrition"
	"github.com/fdg312/health-assistant/internal/storage"
)

// MARK: - Reference table

func (r *Registry) foodTools() []tool {
	return []tool{
		{
			def: mcp.NewTool("list_foods",
				mcp.WithDescription("List all available foods in the nutrition database (values per 100g)."),
			),
			handle: r.listFoods,
		},
		{
			def: mcp.NewTool("add_food_to_database",
				mcp.WithDescription("Add a new food item to the nutrition database (values per 100g)."),
				mcp.WithString("name", mcp.Required(), mcp.Description("Name of the food")),
				mcp.WithNumber("calories", mcp.Required(), mcp.Description("Calories per 100g")),
				mcp.WithNumber("protein", mcp.Required(), mcp.Description("Protein in grams per 100g")),
				mcp.WithNumber("carbs", mcp.Required(), mcp.Description("Carbohydrates in grams per 100g")),
				mcp.WithNumber("fats", mcp.Required(), mcp.Description("Fats in grams per 100g")),
				mcp.WithNumber("fiber", mcp.Description("Fiber in grams per 100g (optional)"), mcp.DefaultNumber(0)),
			),
			handle: r.addFood,
		},
	}
}

func (r *Registry) listFoods(ctx context.Context, _ mcp.CallToolRequest) (string, error) {
	foods, err := r.svc.Foods.ListFoods(ctx)
	if err != nil {
		return "", err
	}
	if len(foods) == 0 {
		return "No foods found in database.", nil
	}

	var b strings.Builder
	b.WriteString("Available Foods (per 100g):\n\n")
	for _, f := range foods {
		fmt.Fprintf(&b, "• %s: %scal, P:%sg, C:%sg, F:%sg, Fiber:%sg\n",
			title(f.Name), num(f.Calories), num(f.Protein), num(f.Carbs), num(f.Fats), num(f.Fiber))
	}
	return b.String(), nil
}

func (r *Registry) addFood(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	name, err := requiredString(req, "name")
	if err != nil {
		return "", err
	}
	add := nutrition.AddFoodRequest{Name: name, Fiber: req.GetFloat("fiber", 0)}
	for _, field := range []struct {
		key string
		dst *float64
	}{
		{"calories", &add.Calories},
		{"protein", &add.Protein},
		{"carbs", &add.Carbs},
		{"fats", &add.Fats},
	} {
		if *field.dst, err = requiredFloat(req, field.key); err != nil {
			return "", err
		}
	}

	f, err := r.svc.Foods.AddFood(ctx, add)
	if errors.Is(err, storage.ErrConflict) {
		return fmt.Sprintf("⚠️  '%s' already exists in the database.", strings.TrimSpace(name)), nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✓ Added '%s' to food database: %scal, P:%sg, C:%sg, F:%sg, Fiber:%sg (per 100g)",
		f.Name, num(f.Calories), num(f.Protein), num(f.Carbs), num(f.Fats), num(f.Fiber)), nil
}
