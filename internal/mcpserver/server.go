// Package mcpserver assembles the MCP server from the tool registry.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/fdg312/health-assistant/internal/tools"
)

const Name = "health-assistant"

// Version is overridden at build time with -ldflags "-X ...mcpserver.Version=...".
var Version = "0.1.0"

// New creates the MCP server with every tool of the registry.
func New(registry *tools.Registry) *server.MCPServer {
	s := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions()),
	)
	s.AddTools(registry.Tools()...)
	return s
}

func instructions() string {
	return `Personal health assistant: a food reference table, journals for meals, sleep, weight and exercise, summaries, a pantry, time-of-day food routines and recommendations.

## Conventions
- Dates are YYYY-MM-DD and default to today. Clock times are HH:MM (24h).
- Meals are logged as "food:grams" items separated by commas, e.g. "chicken breast:150, brown rice:100". Foods must exist in the reference table (see list_foods, add_food_to_database).
- Food recommendations need a daily calorie goal: call set_user_profile(daily_calorie_goal=...) first.
- Time periods: morning 6-10, midday 10-12, afternoon 12-16, evening 16-20, night 20-23, latenight 23-6.

## Typical flow
1. get_user_profile, then set_user_profile if goals are missing.
2. log_meal / log_sleep / log_weight / log_exercise as the user reports them.
3. get_daily_summary or the get_*_summary tools to review.
4. recommend_foods, recommend_from_pantry, recommend_from_routines or recommend_exercise for suggestions; their "Use: log_meal(...)" lines can be logged as is.`
}
