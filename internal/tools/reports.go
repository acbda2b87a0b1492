package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fdg312/health-assistant/internal/reports"
)

// MARK: - Reports

func (r *Registry) reportTools() []tool {
	return []tool{
		{
			def: mcp.NewTool("export_health_report",
				mcp.WithDescription("Export a per-day health report (nutrition, sleep, exercise, weight) "+
					"as CSV or PDF and return where to download it."),
				daysArg("Number of days to include", reports.DefaultDays),
				mcp.WithString("format",
					mcp.Description("Report format"),
					mcp.Enum(reports.FormatCSV, reports.FormatPDF),
					mcp.DefaultString(reports.FormatCSV),
				),
			),
			handle: r.exportReport,
		},
	}
}

func (r *Registry) exportReport(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	days := req.GetInt("days", reports.DefaultDays)
	rep, err := r.svc.Reports.Export(ctx, reports.ExportRequest{
		Days:   days,
		Format: req.GetString("format", reports.FormatCSV),
	})
	if errors.Is(err, reports.ErrNoData) {
		return fmt.Sprintf("No health data found for the last %d days.", days), nil
	}
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("📄 Health report ready (%s, %s → %s, %d days with data, %d bytes)\n  %s",
		rep.Format, rep.From, rep.To, rep.Days, rep.SizeBytes, rep.Location), nil
}
