package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fdg312/health-assistant/internal/nutrition"
	"github.com/fdg312/health-assistant/internal/pantry"
	"github.com/fdg312/health-assistant/internal/storage"
)

const notInDatabase = "⚠️ '%s' not in food database. Add it first with add_food_to_database()"

// MARK: - Pantry

func (r *Registry) pantryTools() []tool {
	return []tool{
		{
			def: mcp.NewTool("add_to_pantry",
				mcp.WithDescription("Add a food to your available pantry inventory, or update it. The food must exist in the food database."),
				mcp.WithString("food_name", mcp.Required(), mcp.Description("Name of food")),
				mcp.WithNumber("quantity_grams", mcp.Description("Optional quantity available in grams")),
				mcp.WithString("notes", mcp.Description("Optional notes (\"expires 10/25\", \"frozen\")")),
			),
			handle: r.addToPantry,
		},
		{
			def: mcp.NewTool("remove_from_pantry",
				mcp.WithDescription("Remove a food from your pantry."),
				mcp.WithString("food_name", mcp.Required(), mcp.Description("Name of food")),
			),
			handle: r.removeFromPantry,
		},
		{
			def: mcp.NewTool("list_my_pantry",
				mcp.WithDescription("List all foods currently in your pantry with quantities and notes."),
			),
			handle: r.listPantry,
		},
	}
}

func (r *Registry) addToPantry(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	name, err := requiredString(req, "food_name")
	if err != nil {
		return "", err
	}
	qty, err := optionalFloat(req, "quantity_grams")
	if err != nil {
		return "", err
	}

	res, err := r.svc.Pantry.Add(ctx, pantry.AddRequest{
		FoodName:      name,
		QuantityGrams: qty,
		Notes:         req.GetString("notes", ""),
	})
	if errors.Is(err, nutrition.ErrUnknownFood) {
		return fmt.Sprintf(notInDatabase, name), nil
	}
	if err != nil {
		return "", err
	}

	out := fmt.Sprintf("✓ Updated '%s' in pantry", res.Item.FoodName)
	if res.Created {
		out = fmt.Sprintf("✓ Added '%s' to pantry", res.Item.FoodName)
	}
	if res.Item.QuantityGrams != nil {
		out += fmt.Sprintf("\n  Quantity: %sg", num(*res.Item.QuantityGrams))
	}
	if res.Item.Notes != "" {
		out += "\n  Notes: " + res.Item.Notes
	}
	return out, nil
}

func (r *Registry) removeFromPantry(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	name, err := requiredString(req, "food_name")
	if err != nil {
		return "", err
	}
	err = r.svc.Pantry.Remove(ctx, name)
	if errors.Is(err, pantry.ErrNotInPantry) {
		return fmt.Sprintf("⚠️ '%s' was not in your pantry", name), nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✓ Removed '%s' from pantry", name), nil
}

func (r *Registry) listPantry(ctx context.Context, _ mcp.CallToolRequest) (string, error) {
	rows, err := r.svc.Pantry.List(ctx)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "🍽️ Your pantry is empty!\n💡 Add foods with: add_to_pantry()", nil
	}
	return formatPantry(rows), nil
}

func formatPantry(rows []storage.PantryRow) string {
	var b strings.Builder
	b.WriteString("🍽️ Your Pantry Inventory:\n\n")
	for _, row := range rows {
		b.WriteString("• " + title(row.FoodName))
		if row.QuantityGrams != nil {
			fmt.Fprintf(&b, " (%sg available)", num(*row.QuantityGrams))
		}
		f := row.Food
		fmt.Fprintf(&b, "\n  Nutrition (per 100g): %scal, P:%sg, C:%sg, F:%sg",
			num(f.Calories), num(f.Protein), num(f.Carbs), num(f.Fats))
		if row.Notes != "" {
			b.WriteString("\n  📝 " + row.Notes)
		}
		fmt.Fprintf(&b, "\n  Last updated: %s\n\n", row.LastUpdated.Format(storage.DateLayout))
	}
	return b.String()
}
